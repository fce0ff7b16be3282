// Package main implements the nestedmachine NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nestedmachine/internal/appconfig"
	"nestedmachine/internal/emulator"
	"nestedmachine/internal/graphics"
	"nestedmachine/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file (optional for GUI mode)")
		configFile = flag.String("config", "", "Path to configuration file")
		debug      = flag.Bool("debug", false, "Enable debug logging")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless mode)")
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}
	if *showVer {
		version.Print()
		os.Exit(0)
	}

	setupGracefulShutdown()

	cfg := appconfig.New()
	configPath := *configFile
	if configPath == "" {
		configPath = appconfig.DefaultConfigPath()
	}
	if err := cfg.LoadFromFile(configPath); err != nil {
		log.Fatalf("nestedmachine: loading config: %v", err)
	}
	if *nogui {
		cfg.Video.Backend = "headless"
	}
	if *debug {
		cfg.Debug.EnableLogging = true
		cfg.Debug.LogLevel = "DEBUG"
	}

	emu := emulator.New()
	if *romFile != "" {
		fmt.Printf("Loading ROM: %s\n", *romFile)
		if err := emu.LoadROM(*romFile); err != nil {
			log.Fatalf("nestedmachine: loading ROM: %v", err)
		}
	}

	if *nogui {
		if *romFile == "" {
			log.Fatal("nestedmachine: -rom is required in headless mode")
		}
		if err := runHeadless(emu, cfg); err != nil {
			log.Fatalf("nestedmachine: headless mode: %v", err)
		}
		return
	}

	if err := runGUI(emu, cfg); err != nil {
		log.Fatalf("nestedmachine: GUI mode: %v", err)
	}
}

// runGUI opens a window via the configured graphics backend and drives
// the emulator one frame per Update() tick.
func runGUI(emu *emulator.Emulator, cfg *appconfig.Config) error {
	backendType := graphics.BackendType(cfg.Video.Backend)
	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("creating graphics backend: %w", err)
	}

	width, height := cfg.GetWindowResolution()
	gcfg := graphics.Config{
		WindowTitle:  "nestedmachine",
		WindowWidth:  width,
		WindowHeight: height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Video.VSync,
		Filter:       cfg.Video.Filter,
		AspectRatio:  cfg.Video.AspectRatio,
		Debug:        cfg.Debug.EnableLogging,
		Player1Buttons: graphics.BuildButtonMap(
			cfg.Input.Player1Keys.Up, cfg.Input.Player1Keys.Down,
			cfg.Input.Player1Keys.Left, cfg.Input.Player1Keys.Right,
			cfg.Input.Player1Keys.A, cfg.Input.Player1Keys.B,
			cfg.Input.Player1Keys.Start, cfg.Input.Player1Keys.Select,
		),
		Player2Buttons: graphics.BuildButtonMap(
			cfg.Input.Player2Keys.Up, cfg.Input.Player2Keys.Down,
			cfg.Input.Player2Keys.Left, cfg.Input.Player2Keys.Right,
			cfg.Input.Player2Keys.A, cfg.Input.Player2Keys.B,
			cfg.Input.Player2Keys.Start, cfg.Input.Player2Keys.Select,
		),
	}
	if err := backend.Initialize(gcfg); err != nil {
		return fmt.Errorf("initializing graphics backend: %w", err)
	}
	defer backend.Cleanup()

	window, err := backend.CreateWindow(gcfg.WindowTitle, width, height)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Cleanup()

	runner := &gameLoop{emu: emu, window: window}
	if setter, ok := window.(interface {
		SetEmulatorUpdateFunc(func() error)
	}); ok {
		setter.SetEmulatorUpdateFunc(runner.tick)
	}

	if runnable, ok := window.(interface{ Run() error }); ok {
		return runnable.Run()
	}

	// Headless/terminal backends have no blocking event loop: drive the
	// tick function directly until the window signals it should close.
	for !window.ShouldClose() {
		if err := runner.tick(); err != nil {
			return err
		}
	}
	return nil
}

// gameLoop tracks controller button state across window events and
// advances the emulator by one frame per tick.
type gameLoop struct {
	emu      *emulator.Emulator
	window   graphics.Window
	buttons  [2][8]bool
	emphasis graphics.ColorEmphasis
}

func (g *gameLoop) tick() error {
	for _, event := range g.window.PollEvents() {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			os.Exit(0)
		case graphics.InputEventTypeButton:
			g.applyButton(event.Port, event.Button, event.Pressed)
		}
	}

	g.emu.SetController(0, g.buttons[0])
	g.emu.SetController(1, g.buttons[1])
	g.emu.RunFrame()

	g.emphasis = graphics.ColorEmphasisFromMask(g.emu.PPURegisters().Mask)
	frame := g.emphasis.Apply(g.emu.RawFramebuffer())
	if err := g.window.RenderFrame(frame); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	g.window.SwapBuffers()
	return nil
}

// buttonSlots maps a graphics.Button onto the B,A,Select,Start,Up,
// Down,Left,Right slot the controller shift register expects.
var buttonSlots = map[graphics.Button]int{
	graphics.ButtonB:      0,
	graphics.ButtonA:      1,
	graphics.ButtonSelect: 2,
	graphics.ButtonStart:  3,
	graphics.ButtonUp:     4,
	graphics.ButtonDown:   5,
	graphics.ButtonLeft:   6,
	graphics.ButtonRight:  7,
}

// applyButton records a button press/release on the given controller
// port (0 or 1), as identified by event.Port on the InputEvent.
func (g *gameLoop) applyButton(port int, button graphics.Button, pressed bool) {
	if port != 0 && port != 1 {
		return
	}
	if slot, ok := buttonSlots[button]; ok {
		g.buttons[port][slot] = pressed
	}
}

// runHeadless runs 120 frames without a window, via the graphics
// package's headless backend, which dumps three PPM screenshots along
// the way for smoke-testing a ROM without a display.
func runHeadless(emu *emulator.Emulator, cfg *appconfig.Config) error {
	backend, err := graphics.CreateBackend(graphics.BackendHeadless)
	if err != nil {
		return fmt.Errorf("creating headless backend: %w", err)
	}
	if err := backend.Initialize(graphics.Config{Debug: true}); err != nil {
		return fmt.Errorf("initializing headless backend: %w", err)
	}
	defer backend.Cleanup()

	window, err := backend.CreateWindow("nestedmachine-headless", 256, 240)
	if err != nil {
		return fmt.Errorf("creating headless window: %w", err)
	}
	defer window.Cleanup()
	if w, ok := window.(*graphics.HeadlessWindow); ok {
		if err := os.MkdirAll(cfg.Paths.Logs, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Paths.Logs, err)
		}
		w.SetOutputPath(cfg.Paths.Logs)
	}

	const targetFrames = 120
	for frame := 0; frame < targetFrames; frame++ {
		emu.RunFrame()
		if err := window.RenderFrame(emu.RawFramebuffer()); err != nil {
			return fmt.Errorf("rendering frame %d: %w", frame, err)
		}
	}
	fmt.Printf("ran %d frames, sample frames written to %s\n", targetFrames, cfg.Paths.Logs)
	return nil
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nInterrupt received, shutting down...")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("nestedmachine - a cycle-accurate NES emulator core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  nestedmachine [options]                    Start GUI mode without a ROM")
	fmt.Println("  nestedmachine -rom <file> [options]        Start with a ROM loaded")
	fmt.Println("  nestedmachine -nogui -rom <file>           Run headless, dumping sample frames")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("CONTROLS (Player 1, default config.json bindings):")
	fmt.Println("  WASD                D-Pad")
	fmt.Println("  J / K               A / B")
	fmt.Println("  Enter / Space       Start / Select")
	fmt.Println()
	fmt.Println("CONTROLS (Player 2, default config.json bindings):")
	fmt.Println("  Arrow Keys          D-Pad")
	fmt.Println("  N / M               A / B")
	fmt.Println("  Right Shift / Ctrl  Start / Select")
	fmt.Println()
	fmt.Println("Rebind either set by editing player1_keys/player2_keys in config.json.")
}
