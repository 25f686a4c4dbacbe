// Package glbackend implements core.Renderer on OpenGL 3.3 core.
package glbackend

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/groveshade/engine/core"
)

type RendererGL struct {
	win core.Window

	vendor, renderer, version string

	// last applied fixed-function state
	depth, blend, cull bool
	bound              uint32

	warned  map[string]bool
	unitBuf []string
}

// NewRendererGL expects the window's GL context to be current and loaded.
func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, warned: make(map[string]bool)}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	r.vendor = gl.GoStr(gl.GetString(gl.VENDOR))
	r.renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	r.version = gl.GoStr(gl.GetString(gl.VERSION))
	if r.version == "" {
		return fmt.Errorf("gl: no current context")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.depth = true

	core.Logger().Info("gl renderer ready", "vendor", r.vendor, "renderer", r.renderer, "version", r.version)
	return nil
}

func (r *RendererGL) GPUVendor() string   { return r.vendor }
func (r *RendererGL) GPURenderer() string { return r.renderer }
func (r *RendererGL) GPUVersion() string  { return r.version }

func (r *RendererGL) Shutdown() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	// depth writes must be on for the depth clear to take
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ---- pipelines ----

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := linkProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Label, err)
	}
	for _, b := range desc.Blocks {
		idx := gl.GetUniformBlockIndex(prog, cstr(b.Name))
		if idx == gl.INVALID_INDEX {
			gl.DeleteProgram(prog)
			return nil, fmt.Errorf("pipeline %q: uniform block %q not found", desc.Label, b.Name)
		}
		var size int32
		gl.GetActiveUniformBlockiv(prog, idx, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
		if b.MinSize > 0 && int(size) > b.MinSize {
			gl.DeleteProgram(prog)
			return nil, fmt.Errorf("pipeline %q: block %q needs %d bytes, buffer layout has %d", desc.Label, b.Name, size, b.MinSize)
		}
		gl.UniformBlockBinding(prog, idx, b.Binding)
	}
	return &pipeline{label: desc.Label, prog: prog, desc: desc, locs: make(map[string]int32)}, nil
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.prog, cstr(name))
	p.locs[name] = loc
	return loc
}

// ---- meshes ----

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 {
		return nil, fmt.Errorf("mesh %q: vertex layout has no stride", desc.Label)
	}
	m := &mesh{label: desc.Label, layout: desc.Layout, usage: gl.STATIC_DRAW}
	if desc.Dynamic {
		m.usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	bufferFloats(gl.ARRAY_BUFFER, desc.Vertices, m.usage)
	m.vertCap = len(desc.Vertices)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	bufferIndices(desc.Indices, m.usage)
	m.indCap = len(desc.Indices)
	m.indexCount = len(desc.Indices)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		typ, norm := uint32(gl.FLOAT), false
		if a.Type == core.AttribUint8Norm {
			typ, norm = gl.UNSIGNED_BYTE, true
		}
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, typ, norm, desc.Layout.Stride, uintptr(a.Offset))
	}

	// the EBO binding is VAO state; unbind the VAO first
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return m, nil
}

func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("gl: foreign mesh %T", cm)
	}
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > m.vertCap {
		bufferFloats(gl.ARRAY_BUFFER, vertices, m.usage)
		m.vertCap = len(vertices)
	} else if len(vertices) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > m.indCap {
		bufferIndices(indices, m.usage)
		m.indCap = len(indices)
	} else if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}
	m.indexCount = len(indices)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func bufferFloats(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func bufferIndices(data []uint32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, usage)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
}

// ---- textures ----

func filterEnum(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapEnum(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("texture %q: unsupported format %d", desc.Label, desc.Format)
	}
	if want := desc.Width * desc.Height * 4; len(desc.Pixels) != want {
		return nil, fmt.Errorf("texture %q: %d bytes of pixels, want %d", desc.Label, len(desc.Pixels), want)
	}
	t := &texture{label: desc.Label, w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterEnum(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterEnum(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapEnum(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapEnum(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// ---- uniform buffers ----

func (r *RendererGL) CreateUniformBuffer(desc core.UniformBufferDesc) (core.UniformBuffer, error) {
	if desc.Size <= 0 {
		return nil, fmt.Errorf("uniform buffer %q: size %d", desc.Label, desc.Size)
	}
	if len(desc.Data) > desc.Size {
		return nil, fmt.Errorf("uniform buffer %q: %d bytes of data exceed size %d", desc.Label, len(desc.Data), desc.Size)
	}
	b := &uniformBuffer{label: desc.Label, size: desc.Size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferData(gl.UNIFORM_BUFFER, desc.Size, nil, gl.DYNAMIC_DRAW)
	if len(desc.Data) > 0 {
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(desc.Data), gl.Ptr(desc.Data))
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return b, nil
}

func (r *RendererGL) WriteUniformBuffer(cb core.UniformBuffer, data []byte) error {
	b, ok := cb.(*uniformBuffer)
	if !ok {
		return fmt.Errorf("gl: foreign uniform buffer %T", cb)
	}
	if len(data) > b.size {
		return fmt.Errorf("uniform buffer %q: write of %d bytes exceeds size %d", b.label, len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

// ---- lifetime ----

func (r *RendererGL) Destroy(res core.Resource) {
	switch v := res.(type) {
	case *pipeline:
		if r.bound == v.prog {
			gl.UseProgram(0)
			r.bound = 0
		}
		gl.DeleteProgram(v.prog)
		v.prog = 0
	case *mesh:
		gl.DeleteBuffers(1, &v.vbo)
		gl.DeleteBuffers(1, &v.ebo)
		gl.DeleteVertexArrays(1, &v.vao)
		v.vao, v.vbo, v.ebo = 0, 0, 0
	case *texture:
		gl.DeleteTextures(1, &v.id)
		v.id = 0
	case *uniformBuffer:
		gl.DeleteBuffers(1, &v.id)
		v.id = 0
	case nil:
	default:
		core.Logger().Warn("gl: destroy of foreign resource", "type", fmt.Sprintf("%T", res))
	}
}

// ---- draw ----

func setCap(enabled *bool, want bool, c uint32) {
	if *enabled == want {
		return
	}
	if want {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
	*enabled = want
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok || p.prog == 0 {
		r.warnOnce("pipe", "gl: draw without a live pipeline")
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m.vao == 0 {
		r.warnOnce("mesh", "gl: draw without a live mesh")
		return
	}

	setCap(&r.depth, p.desc.DepthTest, gl.DEPTH_TEST)
	setCap(&r.blend, p.desc.Blend, gl.BLEND)
	setCap(&r.cull, p.desc.CullBack, gl.CULL_FACE)
	// blended 2D overlays must not occlude each other
	gl.DepthMask(!p.desc.Blend)

	if r.bound != p.prog {
		gl.UseProgram(p.prog)
		r.bound = p.prog
	}

	for name, v := range cmd.Uniforms {
		r.setUniform(p, name, v)
	}

	// sampler units in a stable order
	r.unitBuf = r.unitBuf[:0]
	for name := range cmd.Samplers {
		r.unitBuf = append(r.unitBuf, name)
	}
	sort.Strings(r.unitBuf)
	for unit, name := range r.unitBuf {
		t, ok := cmd.Samplers[name].(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		if loc := p.location(name); loc >= 0 {
			gl.Uniform1i(loc, int32(unit))
		}
	}

	for binding, buf := range cmd.Buffers {
		if b, ok := buf.(*uniformBuffer); ok {
			gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, b.id)
		}
	}

	count := cmd.IndexCount
	if count <= 0 || count > m.indexCount {
		count = m.indexCount
	}
	if count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)
}

func (r *RendererGL) setUniform(p *pipeline, name string, v any) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	switch x := v.(type) {
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &x[0])
	case float32:
		gl.Uniform1f(loc, x)
	case float64:
		gl.Uniform1f(loc, float32(x))
	case int32:
		gl.Uniform1i(loc, x)
	case int:
		gl.Uniform1i(loc, int32(x))
	case [2]float32:
		gl.Uniform2f(loc, x[0], x[1])
	case [3]float32:
		gl.Uniform3f(loc, x[0], x[1], x[2])
	case [4]float32:
		gl.Uniform4f(loc, x[0], x[1], x[2], x[3])
	default:
		r.warnOnce("uniform:"+name, "gl: unsupported uniform type", "name", name, "type", fmt.Sprintf("%T", v))
	}
}

func (r *RendererGL) warnOnce(key, msg string, args ...any) {
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	core.Logger().Warn(msg, args...)
}
