package gfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program represents a linked OpenGL program.
type Program struct {
	ProgramID uint32
}

// NewProgram compiles the vertex and fragment shaders and links them.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	if prog == 0 {
		return nil, fmt.Errorf("no programs available")
	}
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))

		return nil, fmt.Errorf("failed to link program: %v", log)
	}

	return &Program{ProgramID: prog}, nil
}

// UniformLocation returns the location of a uniform.
func (p *Program) UniformLocation(name string) (int32, error) {
	loc := gl.GetUniformLocation(p.ProgramID, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("location of uniform '%s' not found", name)
	}
	return loc, nil
}

// AttribLocation returns the location of a vertex attribute.
func (p *Program) AttribLocation(name string) (uint32, error) {
	loc := gl.GetAttribLocation(p.ProgramID, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("location of attribute '%s' not found", name)
	}
	return uint32(loc), nil
}

func compileShader(src string, typ uint32) (uint32, error) {
	shaderID := gl.CreateShader(typ)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shaderID, 1, csources, nil)
	free()
	gl.CompileShader(shaderID)

	var status int32
	gl.GetShaderiv(shaderID, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shaderID, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shaderID, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile %v: %v", src, log)
	}

	return shaderID, nil
}
