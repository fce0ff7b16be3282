// Package graphics provides the presentation layer around the emulator
// core: a Backend/Window abstraction so the same RawFramebuffer() output
// and two-controller input model can be driven by a real GUI (Ebitengine),
// a headless frame-dumping mode, or a terminal preview, and a small
// keyboard-to-controller mapper driven by the front end's configured
// key bindings instead of a hardcoded layout.
package graphics

// Backend creates and tears down a rendering surface.
type Backend interface {
	// Initialize prepares the backend for window creation.
	Initialize(config Config) error

	// CreateWindow creates a window for rendering (the headless backend's
	// window presents nothing on screen)
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if running in headless mode
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window is a surface the emulator can push one 256x240 NES frame to
// per tick, and poll for controller/quit input in return.
type Window interface {
	// SetTitle sets the window title
	SetTitle(title string)

	// GetSize returns window dimensions
	GetSize() (width, height int)

	// ShouldClose returns true if window should close
	ShouldClose() bool

	// SwapBuffers presents the rendered frame
	SwapBuffers()

	// PollEvents processes input events
	PollEvents() []InputEvent

	// RenderFrame renders one NES frame - the same [256*240]uint32
	// packed-RGB layout emulator.Emulator.RawFramebuffer returns - to
	// the window.
	RenderFrame(frameBuffer [256 * 240]uint32) error

	// Cleanup releases window resources
	Cleanup() error
}

// Config contains configuration for graphics backends
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool

	Filter      string // "nearest", "linear"
	AspectRatio string // "4:3", "16:9", "original"

	Headless bool
	Debug    bool

	// Player1Buttons and Player2Buttons map a physical Key to the NES
	// controller button it drives on that port, built from the front
	// end's configured KeyMapping via BuildButtonMap. A Backend that
	// can observe keyboard state (Ebitengine) consults these instead
	// of a fixed layout, so rebinding a key in config.json actually
	// changes what the window listens for.
	Player1Buttons map[Key]Button
	Player2Buttons map[Key]Button
}

// InputEvent represents an input event from the window
type InputEvent struct {
	Type      InputEventType
	Key       Key
	Button    Button
	Port      int // 0 or 1: which controller port a Button event targets
	Pressed   bool
	Modifiers ModifierKey
}

// InputEventType represents the type of input event
type InputEventType int

const (
	InputEventTypeKey InputEventType = iota
	InputEventTypeButton
	InputEventTypeQuit
)

// Key is the trimmed set of physical keys the configured Player1Keys /
// Player2Keys bindings (appconfig.KeyMapping) can name. Function keys
// and the number row aren't part of any binding this front end exposes,
// so they aren't represented here.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyJ
	KeyK
	KeyN
	KeyM
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
)

// keyNames maps the JSON key names accepted by appconfig.KeyMapping
// onto a Key, the same spelling appconfig.New's defaults use ("W",
// "Return", "RShift", ...).
var keyNames = map[string]Key{
	"Escape":   KeyEscape,
	"Return":   KeyEnter,
	"Enter":    KeyEnter,
	"Space":    KeySpace,
	"Up":       KeyUp,
	"Down":     KeyDown,
	"Left":     KeyLeft,
	"Right":    KeyRight,
	"W":        KeyW,
	"A":        KeyA,
	"S":        KeyS,
	"D":        KeyD,
	"J":        KeyJ,
	"K":        KeyK,
	"N":        KeyN,
	"M":        KeyM,
	"LShift":   KeyLeftShift,
	"RShift":   KeyRightShift,
	"LCtrl":    KeyLeftControl,
	"RCtrl":    KeyRightControl,
}

// KeyByName resolves a config key name (as stored in a KeyMapping
// field) to a Key. It reports false for names this front end doesn't
// bind, rather than guessing.
func KeyByName(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// Button is one of the eight standard NES controller buttons. There is
// only one set: which controller port a press targets travels on
// InputEvent.Port instead of doubling the constant space the way a
// hardcoded "player 2" button set would.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// BuildButtonMap turns one controller's eight configured key names
// into a Key->Button table a Backend can consult directly, so
// rebinding config.json's player1_keys/player2_keys changes what the
// window listens for without touching backend code. Names that don't
// resolve via KeyByName are skipped.
func BuildButtonMap(up, down, left, right, a, b, start, selectKey string) map[Key]Button {
	m := make(map[Key]Button, 8)
	bind := func(name string, button Button) {
		if k, ok := KeyByName(name); ok {
			m[k] = button
		}
	}
	bind(up, ButtonUp)
	bind(down, ButtonDown)
	bind(left, ButtonLeft)
	bind(right, ButtonRight)
	bind(a, ButtonA)
	bind(b, ButtonB)
	bind(start, ButtonStart)
	bind(selectKey, ButtonSelect)
	return m
}

// ModifierKey represents modifier keys
type ModifierKey int

const (
	ModifierNone  ModifierKey = 0
	ModifierShift ModifierKey = 1 << iota
	ModifierCtrl
	ModifierAlt
	ModifierSuper
)

// BackendType represents different graphics backend types
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
	BackendTerminal   BackendType = "terminal"
)

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	case BackendTerminal:
		return NewTerminalBackend(), nil
	default:
		// Unrecognized or BackendEbitengine both fall through to the
		// GUI backend; config validation is appconfig's job, not ours.
		return NewEbitengineBackend(), nil
	}
}

// AsEbitengineWindow tries to cast a Window to EbitengineWindow
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	ebitengineWindow, ok := window.(*EbitengineWindow)
	return ebitengineWindow, ok
}
