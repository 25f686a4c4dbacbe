package material

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/hubastard/groveshade/engine/core"
)

// ShaderSource resolves shader file names (e.g. "solid.vert") to GLSL source.
type ShaderSource interface {
	LoadShader(name string) (string, error)
}

// Plugin owns the pipeline for one material kind and the uniform buffers of
// every material instance drawn with it.
type Plugin struct {
	kind   Kind
	layout Layout
	shader string

	pipe     core.Pipeline
	prepared map[Material]*prepared
}

type prepared struct {
	buf  core.UniformBuffer
	last []byte
}

func NewPlugin(kind Kind, layout Layout, shader string) *Plugin {
	return &Plugin{
		kind:     kind,
		layout:   layout,
		shader:   shader,
		prepared: make(map[Material]*prepared),
	}
}

func SolidPlugin() *Plugin    { return NewPlugin(KindSolid, SolidLayout, "solid") }
func GradientPlugin() *Plugin { return NewPlugin(KindGradient, GradientLayout, "gradient") }

func (p *Plugin) Kind() Kind              { return p.kind }
func (p *Plugin) Layout() Layout          { return p.layout }
func (p *Plugin) Pipeline() core.Pipeline { return p.pipe }
func (p *Plugin) Prepared() int           { return len(p.prepared) }
func (p *Plugin) ShaderFiles() [2]string  { return [2]string{p.shader + ".vert", p.shader + ".frag"} }

// Uses reports whether the named shader file feeds this plugin's pipeline.
func (p *Plugin) Uses(file string) bool {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	files := p.ShaderFiles()
	return base == files[0] || base == files[1]
}

// Build loads the shaders and creates the pipeline.
func (p *Plugin) Build(r core.Renderer, src ShaderSource) error {
	pipe, err := p.compile(r, src)
	if err != nil {
		return err
	}
	p.pipe = pipe
	core.Logger().Debug("material pipeline built", "kind", p.kind, "block", p.layout.Block, "size", p.layout.Size)
	return nil
}

// Reload rebuilds the pipeline from current shader sources. On failure the
// previous pipeline stays active.
func (p *Plugin) Reload(r core.Renderer, src ShaderSource) error {
	pipe, err := p.compile(r, src)
	if err != nil {
		return err
	}
	if p.pipe != nil {
		r.Destroy(p.pipe)
	}
	p.pipe = pipe
	core.Logger().Info("material pipeline reloaded", "kind", p.kind)
	return nil
}

func (p *Plugin) compile(r core.Renderer, src ShaderSource) (core.Pipeline, error) {
	files := p.ShaderFiles()
	vs, err := src.LoadShader(files[0])
	if err != nil {
		return nil, err
	}
	fs, err := src.LoadShader(files[1])
	if err != nil {
		return nil, err
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		Label:          string(p.kind),
		VertexSource:   vs,
		FragmentSource: fs,
		DepthTest:      true,
		CullBack:       true,
		Blocks:         []core.UniformBlockDesc{p.layout.blockDesc()},
	})
	if err != nil {
		return nil, fmt.Errorf("%s material pipeline: %w", p.kind, err)
	}
	return pipe, nil
}

// Prepare returns the uniform buffer for m, creating it on first use and
// re-uploading only when the encoded parameters changed.
func (p *Plugin) Prepare(r core.Renderer, m Material) (core.UniformBuffer, error) {
	if m.Kind() != p.kind {
		return nil, fmt.Errorf("prepare %s material with %s plugin", m.Kind(), p.kind)
	}
	data := m.AppendStd140(nil)
	if len(data) != p.layout.Size {
		return nil, fmt.Errorf("%s material encodes %d bytes, layout expects %d", p.kind, len(data), p.layout.Size)
	}

	pr, ok := p.prepared[m]
	if !ok {
		buf, err := r.CreateUniformBuffer(core.UniformBufferDesc{
			Label: p.layout.Block,
			Size:  p.layout.Size,
			Data:  data,
		})
		if err != nil {
			return nil, fmt.Errorf("%s uniform buffer: %w", p.kind, err)
		}
		p.prepared[m] = &prepared{buf: buf, last: data}
		return buf, nil
	}

	if !bytes.Equal(pr.last, data) {
		if err := r.WriteUniformBuffer(pr.buf, data); err != nil {
			return nil, fmt.Errorf("%s uniform buffer: %w", p.kind, err)
		}
		pr.last = data
	}
	return pr.buf, nil
}

// Forget releases the uniform buffer held for m.
func (p *Plugin) Forget(r core.Renderer, m Material) {
	if pr, ok := p.prepared[m]; ok {
		r.Destroy(pr.buf)
		delete(p.prepared, m)
	}
}

// Release frees every GPU resource owned by the plugin.
func (p *Plugin) Release(r core.Renderer) {
	for m := range p.prepared {
		p.Forget(r, m)
	}
	if p.pipe != nil {
		r.Destroy(p.pipe)
		p.pipe = nil
	}
}
