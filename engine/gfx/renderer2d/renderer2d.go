// Package renderer2d batches screen-space quads for the overlay passes.
package renderer2d

import (
	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
)

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }
func (s Statistics) TotalIndexCount() int  { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	r     core.Renderer
	pipe  core.Pipeline
	white core.Texture
	mesh  core.Mesh

	batch    quadBatch
	samplers map[string]core.Texture
	uniforms map[string]any

	vp    [16]float32
	stats Statistics
}

func pipelineDesc(vertSrc, fragSrc string) core.PipelineDesc {
	return core.PipelineDesc{
		Label:          "renderer2d",
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	}
}

// New compiles the quad pipeline and allocates a dynamic mesh for maxQuads.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	rd := &Renderer2D{
		r:        r,
		samplers: make(map[string]core.Texture, maxTexSlots),
		uniforms: make(map[string]any, 1),
	}

	var err error
	if rd.pipe, err = r.CreatePipeline(pipelineDesc(vertSrc, fragSrc)); err != nil {
		return nil, err
	}
	rd.white, err = r.CreateTexture(core.TextureDesc{
		Label:     "white",
		Width:     1,
		Height:    1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		rd.Release()
		return nil, err
	}
	// sized for the biggest batch so updates never reallocate
	rd.mesh, err = r.CreateMesh(core.MeshDesc{
		Label:    "renderer2d.batch",
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		rd.Release()
		return nil, err
	}

	rd.batch = newQuadBatch(maxQuads, rd.white)
	return rd, nil
}

// Reload swaps in a pipeline built from new sources. The old one stays on error.
func (rd *Renderer2D) Reload(vertSrc, fragSrc string) error {
	pipe, err := rd.r.CreatePipeline(pipelineDesc(vertSrc, fragSrc))
	if err != nil {
		return err
	}
	rd.r.Destroy(rd.pipe)
	rd.pipe = pipe
	return nil
}

// Release destroys whatever GPU resources were created.
func (rd *Renderer2D) Release() {
	for _, res := range []core.Resource{rd.mesh, rd.white, rd.pipe} {
		if res != nil {
			rd.r.Destroy(res)
		}
	}
	rd.mesh, rd.white, rd.pipe = nil, nil, nil
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.batch.reset()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid quad centered on (x,y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.push(x, y, w, h, rotationRad, color, rd.white, [4]float32{0, 0, 1, 1})
}

// DrawRect draws an axis-aligned solid rectangle from its top-left corner.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	if w <= 0 || h <= 0 || color[3] <= 0 {
		return
	}
	rd.DrawQuad(x+w*0.5, y+h*0.5, w, h, color, 0)
}

// DrawSubTexQuad draws a quad centered on (x,y) sampling sub.
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.push(x, y, w, h, rotationRad, tint, sub.Texture, [4]float32{sub.U0, sub.V0, sub.U1, sub.V1})
}

func (rd *Renderer2D) push(x, y, w, h, rot float32, tint colors.Color, tex core.Texture, uv [4]float32) {
	if tex == nil {
		tex = rd.white
	}
	if rd.batch.full() {
		rd.flush()
	}
	slot := rd.batch.slot(tex)
	if slot < 0 {
		rd.flush()
		slot = rd.batch.slot(tex)
	}
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.batch.used)
	rd.batch.quad(x, y, w, h, rot, tint, slot, uv)
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.batch.empty() {
		return
	}
	defer rd.batch.reset()

	b := &rd.batch
	if err := rd.r.UpdateMesh(rd.mesh, b.verts, b.inds); err != nil {
		core.Logger().Error("renderer2d: batch upload failed", "quads", b.quads, "err", err)
		return
	}
	b.bindings(rd.samplers)
	rd.uniforms["uVP"] = rd.vp

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		IndexCount: len(b.inds),
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
	})
	rd.stats.DrawCalls++
}
