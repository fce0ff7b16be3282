//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend            *EbitengineBackend
	title              string
	width              int
	height             int
	game               *EbitengineGame
	running            bool
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game for the NES emulator
type EbitengineGame struct {
	window       *EbitengineWindow
	frameBuffer  [256 * 240]uint32
	frameImage   *ebiten.Image
	nesWidth     int
	nesHeight    int
	windowWidth  int
	windowHeight int
	scale        int

	player1Buttons map[Key]Button
	player2Buttons map[Key]Button
	keysDown       map[ebiten.Key]bool
}

// ebitenKeys lists every Key this backend can translate to and from an
// ebiten.Key. processInput polls every entry; a key that neither
// player1Buttons nor player2Buttons binds is reported as a plain Key
// event, so the table doubles as the full set of physical keys the
// window listens to.
var ebitenKeys = map[Key]ebiten.Key{
	KeyEscape:        ebiten.KeyEscape,
	KeyEnter:         ebiten.KeyEnter,
	KeySpace:         ebiten.KeySpace,
	KeyUp:            ebiten.KeyArrowUp,
	KeyDown:          ebiten.KeyArrowDown,
	KeyLeft:          ebiten.KeyArrowLeft,
	KeyRight:         ebiten.KeyArrowRight,
	KeyW:             ebiten.KeyW,
	KeyA:             ebiten.KeyA,
	KeyS:             ebiten.KeyS,
	KeyD:             ebiten.KeyD,
	KeyJ:             ebiten.KeyJ,
	KeyK:             ebiten.KeyK,
	KeyN:             ebiten.KeyN,
	KeyM:             ebiten.KeyM,
	KeyLeftShift:     ebiten.KeyShiftLeft,
	KeyRightShift:    ebiten.KeyShiftRight,
	KeyLeftControl:   ebiten.KeyControlLeft,
	KeyRightControl:  ebiten.KeyControlRight,
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("ebitengine backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	scale := 1
	if width >= 512 && height >= 480 {
		scale = 2
	}
	if width >= 1024 && height >= 960 {
		scale = 4
	}

	player1 := b.config.Player1Buttons
	if player1 == nil {
		player1 = BuildButtonMap("Up", "Down", "Left", "Right", "J", "K", "Return", "Space")
	}
	player2 := b.config.Player2Buttons

	game := &EbitengineGame{
		nesWidth:       256,
		nesHeight:      240,
		windowWidth:    width,
		windowHeight:   height,
		scale:          scale,
		frameImage:     ebiten.NewImage(256, 240),
		player1Buttons: player1,
		player2Buttons: player2,
		keysDown:       make(map[ebiten.Key]bool),
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}

	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)

	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return b.config.Headless
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// SwapBuffers is handled automatically by Ebitengine
func (w *EbitengineWindow) SwapBuffers() {}

// PollEvents processes input events and returns them
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame copies the emulator's packed-RGB frame buffer into the
// Ebitengine image drawn each Draw() call.
func (w *EbitengineWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}

	w.game.frameBuffer = frameBuffer

	pix := make([]byte, 0, 256*240*4)
	for _, pixel := range frameBuffer {
		pix = append(pix,
			byte(pixel>>16), byte(pixel>>8), byte(pixel), 0xFF,
		)
	}
	w.game.frameImage.ReplacePixels(pix)
	return nil
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	return ebiten.RunGame(w.game)
}

// SetEmulatorUpdateFunc sets the emulator update function
func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}

	g.processInput()

	if g.window.emulatorUpdateFunc != nil {
		if err := g.window.emulatorUpdateFunc(); err != nil {
			return fmt.Errorf("emulator update: %w", err)
		}
	}

	return nil
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})
	if g.frameImage == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}

	scaleX := float64(g.windowWidth) / float64(g.nesWidth)
	scaleY := float64(g.windowHeight) / float64(g.nesHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX := (float64(g.windowWidth) - float64(g.nesWidth)*scale) / 2
	offsetY := (float64(g.windowHeight) - float64(g.nesHeight)*scale) / 2

	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)

	screen.DrawImage(g.frameImage, op)
}

// Layout implements ebiten.Game.Layout
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// processInput polls every key this backend tracks, emits a quit event
// on Escape, and turns just-pressed/just-released keys into button
// events for whichever controller port(s) the configured key maps
// bind them to.
func (g *EbitengineGame) processInput() {
	if g.window == nil {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.window.events = append(g.window.events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}

	var events []InputEvent
	for key, ebitenKey := range ebitenKeys {
		pressed := ebiten.IsKeyPressed(ebitenKey)
		if pressed == g.keysDown[ebitenKey] {
			continue
		}
		g.keysDown[ebitenKey] = pressed

		if button, ok := g.player1Buttons[key]; ok {
			events = append(events, InputEvent{Type: InputEventTypeButton, Button: button, Port: 0, Pressed: pressed})
		}
		if button, ok := g.player2Buttons[key]; ok {
			events = append(events, InputEvent{Type: InputEventTypeButton, Button: button, Port: 1, Pressed: pressed})
		}
		if _, p1 := g.player1Buttons[key]; !p1 {
			if _, p2 := g.player2Buttons[key]; !p2 {
				events = append(events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: pressed})
			}
		}
	}

	g.window.events = append(g.window.events, events...)
}
