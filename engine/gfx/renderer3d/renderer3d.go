// Package renderer3d draws shape meshes with material pipelines.
package renderer3d

import (
	"fmt"
	"sort"

	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/shapes"
)

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls     int
	Triangles     int
	Meshes        int // uploaded meshes alive
	PipelineBinds int
}

type submission struct {
	kind  material.Kind
	mesh  core.Mesh
	model scene.Mat4
	buf   core.UniformBuffer
	seq   int
}

type Renderer3D struct {
	r       core.Renderer
	plugins map[material.Kind]*material.Plugin
	meshes  map[*shapes.Buffers]core.Mesh
	nextID  int

	view, proj scene.Mat4
	queue      []submission
	inScene    bool

	uniforms map[string]any
	buffers  map[uint32]core.UniformBuffer
	stats    Statistics
}

func New(r core.Renderer, plugins ...*material.Plugin) *Renderer3D {
	r3 := &Renderer3D{
		r:        r,
		plugins:  make(map[material.Kind]*material.Plugin, len(plugins)),
		meshes:   make(map[*shapes.Buffers]core.Mesh),
		uniforms: make(map[string]any, 3),
		buffers:  make(map[uint32]core.UniformBuffer, 1),
	}
	for _, p := range plugins {
		r3.plugins[p.Kind()] = p
	}
	return r3
}

func (r3 *Renderer3D) Plugin(k material.Kind) *material.Plugin { return r3.plugins[k] }

// Plugins returns the registered plugins ordered by kind.
func (r3 *Renderer3D) Plugins() []*material.Plugin {
	out := make([]*material.Plugin, 0, len(r3.plugins))
	for _, p := range r3.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind() < out[j].Kind() })
	return out
}

func (r3 *Renderer3D) Stats() Statistics { return r3.stats }

// Upload returns the GPU mesh for b, creating it on first use.
func (r3 *Renderer3D) Upload(b *shapes.Buffers) (core.Mesh, error) {
	if m, ok := r3.meshes[b]; ok {
		return m, nil
	}
	desc := b.MeshDesc()
	r3.nextID++
	desc.Label = fmt.Sprintf("mesh%d", r3.nextID)
	m, err := r3.r.CreateMesh(desc)
	if err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	r3.meshes[b] = m
	r3.stats.Meshes = len(r3.meshes)
	return m, nil
}

// Forget destroys the GPU mesh uploaded for b, if any.
func (r3 *Renderer3D) Forget(b *shapes.Buffers) {
	if m, ok := r3.meshes[b]; ok {
		r3.r.Destroy(m)
		delete(r3.meshes, b)
		r3.stats.Meshes = len(r3.meshes)
	}
}

func (r3 *Renderer3D) BeginScene(view, proj scene.Mat4) {
	r3.view, r3.proj = view, proj
	r3.queue = r3.queue[:0]
	r3.inScene = true
	r3.stats = Statistics{Meshes: len(r3.meshes)}
}

// Submit queues mesh for drawing with m. The material's uniform buffer is
// brought up to date immediately.
func (r3 *Renderer3D) Submit(mesh *shapes.Buffers, model scene.Mat4, m material.Material) error {
	if !r3.inScene {
		return fmt.Errorf("submit outside BeginScene/EndScene")
	}
	p, ok := r3.plugins[m.Kind()]
	if !ok {
		return fmt.Errorf("no plugin for %s material", m.Kind())
	}
	if p.Pipeline() == nil {
		return fmt.Errorf("%s pipeline not built", m.Kind())
	}
	gm, err := r3.Upload(mesh)
	if err != nil {
		return err
	}
	buf, err := p.Prepare(r3.r, m)
	if err != nil {
		return err
	}
	r3.queue = append(r3.queue, submission{kind: m.Kind(), mesh: gm, model: model, buf: buf, seq: len(r3.queue)})
	return nil
}

// EndScene draws the queue grouped by material kind.
func (r3 *Renderer3D) EndScene() {
	r3.inScene = false
	sort.Slice(r3.queue, func(i, j int) bool {
		a, b := r3.queue[i], r3.queue[j]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.seq < b.seq
	})

	var bound material.Kind
	for _, s := range r3.queue {
		p := r3.plugins[s.kind]
		if s.kind != bound {
			bound = s.kind
			r3.stats.PipelineBinds++
		}
		r3.uniforms["uModel"] = s.model
		r3.uniforms["uView"] = r3.view
		r3.uniforms["uProj"] = r3.proj
		clear(r3.buffers)
		r3.buffers[p.Layout().Binding] = s.buf

		r3.r.Draw(core.DrawCmd{
			Pipe:     p.Pipeline(),
			Mesh:     s.mesh,
			Uniforms: r3.uniforms,
			Buffers:  r3.buffers,
		})
		r3.stats.DrawCalls++
		r3.stats.Triangles += s.mesh.IndexCount() / 3
	}
	r3.queue = r3.queue[:0]
}

// Release destroys every uploaded mesh. Plugins are owned by the caller.
func (r3 *Renderer3D) Release() {
	for b := range r3.meshes {
		r3.Forget(b)
	}
}
