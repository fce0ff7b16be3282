//go:build headless
// +build headless

package graphics

import "fmt"

const errEbitengineUnavailable = "ebitengine backend not available in a headless build"

// EbitengineBackend is a placeholder satisfying the Backend interface
// in builds with the headless tag: every call fails rather
// than pulling in a GUI toolkit the build deliberately left out.
type EbitengineBackend struct{}

// EbitengineWindow is the matching placeholder Window.
type EbitengineWindow struct{}

// NewEbitengineBackend returns the headless-build stand-in.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	return fmt.Errorf(errEbitengineUnavailable)
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	return nil, fmt.Errorf(errEbitengineUnavailable)
}

func (b *EbitengineBackend) Cleanup() error { return nil }

func (b *EbitengineBackend) IsHeadless() bool { return true }

func (b *EbitengineBackend) GetName() string { return "Ebitengine-Stub" }

func (w *EbitengineWindow) SetTitle(title string) {}
func (w *EbitengineWindow) GetSize() (width, height int) { return 0, 0 }
func (w *EbitengineWindow) ShouldClose() bool { return true }
func (w *EbitengineWindow) SwapBuffers() {}
func (w *EbitengineWindow) PollEvents() []InputEvent { return nil }
func (w *EbitengineWindow) Cleanup() error { return nil }
func (w *EbitengineWindow) SetEmulatorUpdateFunc(func() error) {}

func (w *EbitengineWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	return fmt.Errorf(errEbitengineUnavailable)
}

func (w *EbitengineWindow) Run() error {
	return fmt.Errorf(errEbitengineUnavailable)
}
