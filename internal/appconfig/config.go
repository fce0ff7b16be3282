// Package appconfig holds the JSON-backed settings for the command
// line front end: window/video presentation and key bindings. Audio
// and save-state settings from the original configuration layout are
// dropped along with the features they configured.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all front-end configuration.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
	Scale      int  `json:"scale"` // NES resolution multiplier
}

// VideoConfig contains video rendering configuration.
type VideoConfig struct {
	VSync       bool   `json:"vsync"`
	AspectRatio string `json:"aspect_ratio"` // "4:3", "16:9", "original"
	Filter      string `json:"filter"`       // "nearest", "linear"
	Backend     string `json:"backend"`      // "ebitengine", "headless", "terminal"
}

// InputConfig contains keyboard input configuration.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping maps keyboard keys onto the eight NES controller buttons.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig contains logging verbosity options.
type DebugConfig struct {
	ShowFPS       bool   `json:"show_fps"`
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROMs   string `json:"roms"`
	Config string `json:"config"`
	Logs   string `json:"logs"`
}

// New creates a configuration populated with default values.
func New() *Config {
	return &Config{
		Window: WindowConfig{Width: 800, Height: 600, Scale: 2},
		Video: VideoConfig{
			VSync:       true,
			AspectRatio: "4:3",
			Filter:      "nearest",
			Backend:     "ebitengine",
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{Up: "W", Down: "S", Left: "A", Right: "D", A: "J", B: "K", Start: "Return", Select: "Space"},
			Player2Keys: KeyMapping{Up: "Up", Down: "Down", Left: "Left", Right: "Right", A: "N", B: "M", Start: "RShift", Select: "RCtrl"},
		},
		Debug: DebugConfig{LogLevel: "INFO"},
		Paths: PathsConfig{ROMs: "./roms", Config: "./config", Logs: "./logs"},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out the
// defaults if the file doesn't exist yet.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("appconfig: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("appconfig: parse %s: %w", path, err)
	}
	c.validate()
	c.loaded = true
	return nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("appconfig: create dir %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("appconfig: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("appconfig: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = 800, 600
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
}

// GetWindowResolution returns the window resolution given the NES's
// native 256x240 frame scaled by Window.Scale.
func (c *Config) GetWindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// IsLoaded reports whether the configuration was loaded from a file
// (as opposed to just-constructed defaults).
func (c *Config) IsLoaded() bool { return c.loaded }

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() string {
	return "./config/nestedmachine.json"
}
