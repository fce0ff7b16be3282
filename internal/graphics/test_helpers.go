//go:build !headless
// +build !headless

package graphics

// frameBufferForTesting exposes the last frame RenderFrame copied in,
// so a test can assert on pixel content without a real ebiten display.
func (w *EbitengineWindow) frameBufferForTesting() [256 * 240]uint32 {
	if w.game == nil {
		return [256 * 240]uint32{}
	}
	return w.game.frameBuffer
}

// gameForTesting exposes the EbitengineGame backing a window, for
// tests that need to drive Update/Draw/Layout directly.
func (w *EbitengineWindow) gameForTesting() *EbitengineGame {
	return w.game
}

// emulatorUpdateFuncForTesting exposes the installed update callback.
func (w *EbitengineWindow) emulatorUpdateFuncForTesting() func() error {
	return w.emulatorUpdateFunc
}
