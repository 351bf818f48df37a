package gfx

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	openglVersionMajor = 4
	openglVersionMinor = 1
)

// Window represents a wrapped glfw window object.
type Window struct {
	Config     *WindowConfig
	GlfwWindow *glfw.Window

	fullscreen bool
	// position and size to return to when leaving fullscreen
	windowed [4]int
}

// WindowConfig contains a new window configuration
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// NewWindow initializes a new window object with glfw.
func NewWindow(cfg *WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, openglVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, openglVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{Config: cfg, GlfwWindow: window}, nil
}

// Fullscreen reports whether the window covers the primary monitor.
func (w *Window) Fullscreen() bool {
	return w.fullscreen
}

// SetFullscreen moves the window onto the primary monitor, or back to where it
// was before.
func (w *Window) SetFullscreen(on bool) {
	if on == w.fullscreen {
		return
	}
	if on {
		x, y := w.GlfwWindow.GetPos()
		width, height := w.GlfwWindow.GetSize()
		w.windowed = [4]int{x, y, width, height}

		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		w.GlfwWindow.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		p := w.windowed
		w.GlfwWindow.SetMonitor(nil, p[0], p[1], p[2], p[3], glfw.DontCare)
	}
	w.fullscreen = on
}
