package appconfig

import (
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("default window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Video.Backend != "ebitengine" {
		t.Fatalf("default backend = %q, want ebitengine", cfg.Video.Backend)
	}
	if cfg.Input.Player1Keys.A == "" || cfg.Input.Player2Keys.A == "" {
		t.Fatal("both players should have default key bindings")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := New()
	cfg.Window.Scale = 3
	cfg.Input.Player1Keys.A = "N"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := New()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Window.Scale != 3 {
		t.Fatalf("scale = %d, want 3", loaded.Window.Scale)
	}
	if loaded.Input.Player1Keys.A != "N" {
		t.Fatalf("player1 A binding = %q, want N", loaded.Input.Player1Keys.A)
	}
	if !loaded.IsLoaded() {
		t.Fatal("IsLoaded should report true after LoadFromFile")
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := New()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("load of missing file should write defaults, got %v", err)
	}
	again := New()
	if err := again.LoadFromFile(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestValidateRepairsBadDimensions(t *testing.T) {
	cfg := New()
	cfg.Window.Width, cfg.Window.Height, cfg.Window.Scale = -1, 0, 0
	cfg.validate()
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 || cfg.Window.Scale != 1 {
		t.Fatalf("validate should repair dimensions, got %+v", cfg.Window)
	}
}

func TestGetWindowResolution(t *testing.T) {
	cfg := New()
	cfg.Window.Scale = 2
	w, h := cfg.GetWindowResolution()
	if w != 512 || h != 480 {
		t.Fatalf("resolution = %dx%d, want 512x480", w, h)
	}
}
