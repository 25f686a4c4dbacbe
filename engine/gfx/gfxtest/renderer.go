// Package gfxtest provides an in-memory core.Renderer for tests that exercise
// GPU-facing code without a GL context.
package gfxtest

import (
	"errors"
	"fmt"

	"github.com/hubastard/groveshade/engine/core"
)

type Pipeline struct {
	core.PipelineBase
	Desc core.PipelineDesc
	ID   int
}

func (p *Pipeline) Label() string { return p.Desc.Label }

type Mesh struct {
	core.MeshBase
	Desc     core.MeshDesc
	Vertices []float32
	Indices  []uint32
	ID       int
}

func (m *Mesh) Label() string   { return m.Desc.Label }
func (m *Mesh) IndexCount() int { return len(m.Indices) }

type Texture struct {
	core.TextureBase
	Desc core.TextureDesc
	ID   int
}

func (t *Texture) Label() string    { return t.Desc.Label }
func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }

type UniformBuffer struct {
	core.UniformBufferBase
	Desc   core.UniformBufferDesc
	Data   []byte
	Writes int
	ID     int
}

func (b *UniformBuffer) Label() string { return b.Desc.Label }
func (b *UniformBuffer) Size() int     { return b.Desc.Size }

// Renderer records every call. Set FailPipelines to make CreatePipeline fail.
type Renderer struct {
	Pipelines      []*Pipeline
	Meshes         []*Mesh
	Textures       []*Texture
	UniformBuffers []*UniformBuffer
	Destroyed      []core.Resource
	Draws          []core.DrawCmd
	Clears         int
	Width, Height  int

	FailPipelines bool
	nextID        int
}

var (
	_ core.Renderer      = (*Renderer)(nil)
	_ core.Pipeline      = (*Pipeline)(nil)
	_ core.Mesh          = (*Mesh)(nil)
	_ core.Texture       = (*Texture)(nil)
	_ core.UniformBuffer = (*UniformBuffer)(nil)
)

var ErrPipeline = errors.New("gfxtest: pipeline creation failed")

func New() *Renderer { return &Renderer{} }

func (r *Renderer) id() int { r.nextID++; return r.nextID }

func (r *Renderer) Init() error              { return nil }
func (r *Renderer) Resize(w, h int)          { r.Width, r.Height = w, h }
func (r *Renderer) Clear(_, _, _, _ float32) { r.Clears++ }
func (r *Renderer) Shutdown()                {}
func (r *Renderer) GPUVendor() string        { return "gfxtest" }
func (r *Renderer) GPURenderer() string      { return "in-memory" }
func (r *Renderer) GPUVersion() string       { return "0" }

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if r.FailPipelines {
		return nil, ErrPipeline
	}
	p := &Pipeline{Desc: desc, ID: r.id()}
	r.Pipelines = append(r.Pipelines, p)
	return p, nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &Mesh{
		Desc:     desc,
		Vertices: append([]float32(nil), desc.Vertices...),
		Indices:  append([]uint32(nil), desc.Indices...),
		ID:       r.id(),
	}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Renderer) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	fm, ok := m.(*Mesh)
	if !ok {
		return fmt.Errorf("gfxtest: foreign mesh %T", m)
	}
	fm.Vertices = append(fm.Vertices[:0], vertices...)
	fm.Indices = append(fm.Indices[:0], indices...)
	return nil
}

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	t := &Texture{Desc: desc, ID: r.id()}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Renderer) CreateUniformBuffer(desc core.UniformBufferDesc) (core.UniformBuffer, error) {
	b := &UniformBuffer{Desc: desc, Data: make([]byte, desc.Size), ID: r.id()}
	copy(b.Data, desc.Data)
	r.UniformBuffers = append(r.UniformBuffers, b)
	return b, nil
}

func (r *Renderer) WriteUniformBuffer(ub core.UniformBuffer, data []byte) error {
	b, ok := ub.(*UniformBuffer)
	if !ok {
		return fmt.Errorf("gfxtest: foreign uniform buffer %T", ub)
	}
	if len(data) > b.Desc.Size {
		return fmt.Errorf("gfxtest: write %d bytes into %d byte buffer", len(data), b.Desc.Size)
	}
	copy(b.Data, data)
	b.Writes++
	return nil
}

func (r *Renderer) Destroy(res core.Resource) { r.Destroyed = append(r.Destroyed, res) }

func (r *Renderer) Draw(cmd core.DrawCmd) {
	// copy maps: callers reuse them between draws
	c := cmd
	c.Uniforms = make(map[string]any, len(cmd.Uniforms))
	for k, v := range cmd.Uniforms {
		c.Uniforms[k] = v
	}
	c.Samplers = make(map[string]core.Texture, len(cmd.Samplers))
	for k, v := range cmd.Samplers {
		c.Samplers[k] = v
	}
	c.Buffers = make(map[uint32]core.UniformBuffer, len(cmd.Buffers))
	for k, v := range cmd.Buffers {
		c.Buffers[k] = v
	}
	r.Draws = append(r.Draws, c)
}
