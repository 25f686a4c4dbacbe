package glbackend

import "github.com/hubastard/groveshade/engine/core"

type pipeline struct {
	core.PipelineBase
	label string
	prog  uint32
	desc  core.PipelineDesc
	locs  map[string]int32
}

func (p *pipeline) Label() string { return p.label }

type mesh struct {
	core.MeshBase
	label         string
	vao, vbo, ebo uint32
	layout        core.VertexLayout
	usage         uint32
	indexCount    int
	vertCap       int // floats allocated in vbo
	indCap        int // indices allocated in ebo
}

func (m *mesh) Label() string   { return m.label }
func (m *mesh) IndexCount() int { return m.indexCount }

type texture struct {
	core.TextureBase
	label string
	id    uint32
	w, h  int
}

func (t *texture) Label() string    { return t.label }
func (t *texture) Size() (int, int) { return t.w, t.h }

type uniformBuffer struct {
	core.UniformBufferBase
	label string
	id    uint32
	size  int
}

func (b *uniformBuffer) Label() string { return b.label }
func (b *uniformBuffer) Size() int     { return b.size }

var (
	_ core.Pipeline      = (*pipeline)(nil)
	_ core.Mesh          = (*mesh)(nil)
	_ core.Texture       = (*texture)(nil)
	_ core.UniformBuffer = (*uniformBuffer)(nil)
)
