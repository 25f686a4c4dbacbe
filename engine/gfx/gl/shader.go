package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

func terminated(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func cstr(s string) *uint8 { return gl.Str(terminated(s)) }

type stage uint32

func (s stage) String() string {
	if s == gl.VERTEX_SHADER {
		return "vertex shader"
	}
	return "fragment shader"
}

// infoLog reads a shader or program log through the matching getter pair.
func infoLog(obj uint32, iv func(uint32, uint32, *int32), get func(uint32, int32, *int32, *uint8)) string {
	var n int32
	iv(obj, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	get(obj, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func compileStage(src string, st stage) (uint32, error) {
	sh := gl.CreateShader(uint32(st))
	csrc, free := gl.Strs(terminated(src))
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok != gl.FALSE {
		return sh, nil
	}
	msg := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
	gl.DeleteShader(sh)
	return 0, fmt.Errorf("%s compile error: %s", st, msg)
}

// linkProgram compiles both stages and links them. Stage objects are always
// released; on error no program is left behind.
func linkProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := compileStage(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileStage(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok != gl.FALSE {
		return prog, nil
	}
	msg := infoLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
	gl.DeleteProgram(prog)
	return 0, fmt.Errorf("program link error: %s", msg)
}
