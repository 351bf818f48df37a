package gfx

import (
	"context"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	ml "github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"

	"github.com/peragwin/linevis/visual"
)

const (
	vertexShaderSource = `
	#version 410
	in vec3 vertPos;
	in vec2 texPos;
	out vec2 fragTexPos;
	void main() {
		fragTexPos = texPos;
		gl_Position = vec4(vertPos, 1.0);
	}`

	fragmentShaderSource = `
	#version 410
	uniform sampler2D tex;
	in vec2 fragTexPos;
	out vec4 frag_color;
	void main() {
		frag_color = texture(tex, fragTexPos);
	}`
)

var (
	square = [6]ml.Vec2{
		{-1, 1},
		{-1, -1},
		{1, -1},

		{-1, 1},
		{1, 1},
		{1, -1},
	}
	uvCord = [6]ml.Vec2{
		{0, 0},
		{0, 1},
		{1, 1},

		{0, 0},
		{1, 0},
		{1, 1},
	}
)

// Config is a configuration for creating a new Display.
type Config struct {
	// Width and Height are the initial window size.
	Width  int
	Height int
	Title  string
	// Canvas is the size of the images that will be displayed. They are
	// stretched over the whole window.
	Canvas      image.Point
	TextureMode int32
}

// Display shows canvases rendered by a visual.Pipeline in an OpenGL window.
// Every method must be called from the thread that created it, which has to be
// locked to the main OS thread.
type Display struct {
	window  *Window
	program *Program
	texture *Texture
	vao     uint32
}

// NewDisplay opens the window and sets up the textured quad the canvas is drawn on.
func NewDisplay(cfg *Config) (*Display, error) {
	window, err := NewWindow(&WindowConfig{
		Width: cfg.Width, Height: cfg.Height, Title: cfg.Title,
	})
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	glog.Infoln("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := NewProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}
	gl.UseProgram(program.ProgramID)

	mode := cfg.TextureMode
	if mode == 0 {
		mode = gl.NEAREST
	}
	texture := NewTexture(cfg.Canvas, mode)
	texLoc, err := program.UniformLocation("tex")
	if err != nil {
		return nil, err
	}
	gl.Uniform1i(texLoc, 0)

	d := &Display{
		window:  window,
		program: program,
		texture: texture,
	}
	if err := d.createQuad(); err != nil {
		return nil, err
	}

	window.GlfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	gl.ClearColor(0, 0, 0, 1)

	return d, nil
}

func (d *Display) createQuad() error {
	verts := make([]float32, 5*len(square))
	for i := range square {
		// xyz coord
		verts[5*i] = square[i][0]
		verts[5*i+1] = square[i][1]
		verts[5*i+2] = 0

		// uv coord
		verts[5*i+3] = uvCord[i][0]
		verts[5*i+4] = uvCord[i][1]
	}

	vattr, err := d.program.AttribLocation("vertPos")
	if err != nil {
		return err
	}
	tattr, err := d.program.AttribLocation("texPos")
	if err != nil {
		return err
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(verts), gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	const stride = 5 * 4
	gl.EnableVertexAttribArray(vattr)
	gl.VertexAttribPointer(vattr, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(tattr)
	gl.VertexAttribPointer(tattr, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
	return nil
}

// frameTarget is where step puts a rendered canvas.
type frameTarget interface {
	update(img *image.RGBA)
	present()
}

// step renders the next frame of p onto t and reports whether it was drawn.
// A skipped frame leaves the screen as it is.
func step(p *visual.Pipeline, t frameTarget) bool {
	img, _, ok := p.Frame()
	if !ok {
		return false
	}
	t.update(img)
	t.present()
	return true
}

func (d *Display) update(img *image.RGBA) {
	d.texture.Update(img)
}

func (d *Display) present() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(d.program.ProgramID)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(square)))
	gl.BindVertexArray(0)
	d.window.GlfwWindow.SwapBuffers()
}

// Run drives the pipeline until the window is closed or ctx is done. Keyboard
// events are delivered to the pipeline from inside the event poll, on the same
// thread that renders, so the render state is never touched concurrently.
func (d *Display) Run(ctx context.Context, p *visual.Pipeline) error {
	d.window.GlfwWindow.SetKeyCallback(
		func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if action != glfw.Press {
				return
			}
			if k, ok := TranslateKey(key); ok {
				p.HandleKey(k)
			}
		})

	next := time.Now()
	for !d.window.GlfwWindow.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if wait := time.Until(next); wait > 0 {
			glfw.WaitEventsTimeout(wait.Seconds())
		} else {
			glfw.PollEvents()
		}
		p.DrainKeys()
		d.window.SetFullscreen(p.State.Fullscreen)

		if time.Now().Before(next) {
			continue
		}

		start := time.Now()
		drew := step(p, d)
		next = time.Now().Add(p.Scheduler.Next(time.Since(start), drew))
	}
	return nil
}

// Terminate destroys the window and ends the glfw session.
func (d *Display) Terminate() {
	d.window.GlfwWindow.Destroy()
	glfw.Terminate()
}

// TranslateKey maps a glfw key to the key the render state understands.
// glfw uses ASCII codes for digits and letters.
func TranslateKey(key glfw.Key) (visual.Key, bool) {
	switch {
	case key == glfw.KeyEscape:
		return visual.KeyEscape, true
	case key >= glfw.Key0 && key <= glfw.Key9,
		key >= glfw.KeyA && key <= glfw.KeyZ:
		return visual.Key(key), true
	}
	return 0, false
}
