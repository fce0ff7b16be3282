//go:build !headless
// +build !headless

package graphics

import "testing"

func TestEbitengineBackendInitialize(t *testing.T) {
	backend := NewEbitengineBackend()
	err := backend.Initialize(Config{WindowTitle: "nestedmachine"})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := backend.Initialize(Config{}); err == nil {
		t.Fatal("second Initialize should fail")
	}
}

func TestEbitengineBackendCreateWindowRequiresInitialize(t *testing.T) {
	backend := NewEbitengineBackend()
	if _, err := backend.CreateWindow("x", 256, 240); err == nil {
		t.Fatal("CreateWindow before Initialize should fail")
	}
}

func TestEbitengineBackendCreateWindowRejectsHeadlessConfig(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := backend.CreateWindow("x", 256, 240); err == nil {
		t.Fatal("CreateWindow with Headless config should fail")
	}
}

func TestEbitengineBackendCreateWindowScalesForResolution(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	window, err := backend.CreateWindow("nestedmachine", 1024, 960)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	game := AsEbitengineWindowGame(t, window)
	if game.scale != 4 {
		t.Fatalf("scale = %d, want 4 for a 1024x960 window", game.scale)
	}
}

func TestEbitengineBackendUsesConfiguredButtonMaps(t *testing.T) {
	backend := NewEbitengineBackend()
	p1 := BuildButtonMap("W", "S", "A", "D", "J", "K", "Return", "Space")
	p2 := BuildButtonMap("Up", "Down", "Left", "Right", "N", "M", "RShift", "RCtrl")
	err := backend.Initialize(Config{Player1Buttons: p1, Player2Buttons: p2})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	window, err := backend.CreateWindow("nestedmachine", 256, 240)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	game := AsEbitengineWindowGame(t, window)
	if game.player1Buttons[KeyJ] != ButtonA {
		t.Errorf("player1 J should map to ButtonA")
	}
	if game.player2Buttons[KeyN] != ButtonA {
		t.Errorf("player2 N should map to ButtonA")
	}
}

func TestEbitengineWindowRenderFrameCopiesBuffer(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	window, err := backend.CreateWindow("nestedmachine", 256, 240)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	ew, ok := AsEbitengineWindow(window)
	if !ok {
		t.Fatal("expected *EbitengineWindow")
	}

	var frame [256 * 240]uint32
	frame[0] = 0x00FF8040
	if err := ew.RenderFrame(frame); err != nil {
		t.Fatalf("render frame: %v", err)
	}
	if got := ew.frameBufferForTesting()[0]; got != frame[0] {
		t.Fatalf("frame buffer not copied: got %#08x, want %#08x", got, frame[0])
	}
}

func TestEbitengineWindowSetEmulatorUpdateFunc(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	window, err := backend.CreateWindow("nestedmachine", 256, 240)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	ew, ok := AsEbitengineWindow(window)
	if !ok {
		t.Fatal("expected *EbitengineWindow")
	}

	called := false
	ew.SetEmulatorUpdateFunc(func() error {
		called = true
		return nil
	})
	if err := ew.emulatorUpdateFuncForTesting()(); err != nil {
		t.Fatalf("update func: %v", err)
	}
	if !called {
		t.Fatal("installed update function was not the one returned for testing")
	}
}

func TestEbitengineGameLayoutTracksWindowSize(t *testing.T) {
	game := &EbitengineGame{}
	w, h := game.Layout(512, 480)
	if w != 512 || h != 480 {
		t.Fatalf("Layout returned %dx%d, want 512x480", w, h)
	}
	if game.windowWidth != 512 || game.windowHeight != 480 {
		t.Fatalf("Layout should record window dimensions, got %dx%d", game.windowWidth, game.windowHeight)
	}
}

// AsEbitengineWindowGame is a test-only helper pulling the game out of
// a Window the way production code uses AsEbitengineWindow.
func AsEbitengineWindowGame(t *testing.T, window Window) *EbitengineGame {
	t.Helper()
	ew, ok := AsEbitengineWindow(window)
	if !ok {
		t.Fatal("expected *EbitengineWindow")
	}
	return ew.gameForTesting()
}
