package renderer2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/gfx/gfxtest"
)

func newTest(t *testing.T, maxQuads int) (*Renderer2D, *gfxtest.Renderer) {
	t.Helper()
	r := gfxtest.New()
	rd, err := New(r, "vs", "fs", maxQuads)
	require.NoError(t, err)
	return rd, r
}

func TestNewAllocatesBatch(t *testing.T) {
	_, r := newTest(t, 8)
	require.Len(t, r.Meshes, 1)
	m := r.Meshes[0]
	assert.True(t, m.Desc.Dynamic)
	assert.Len(t, m.Vertices, 8*vertsPerQuad*vStride)
	assert.Len(t, m.Indices, 8*indsPerQuad)
	assert.True(t, r.Pipelines[0].Desc.Blend)
	assert.False(t, r.Pipelines[0].Desc.DepthTest)
}

func TestDrawRectBatchesIntoOneDraw(t *testing.T) {
	rd, r := newTest(t, 100)
	vp := [16]float32{1}
	rd.BeginScene(vp)
	rd.DrawRect(10, 20, 30, 40, colors.Red)
	rd.DrawRect(0, 0, 5, 5, colors.Blue)
	// empty and fully transparent rects are skipped
	rd.DrawRect(0, 0, 0, 5, colors.Blue)
	rd.DrawRect(0, 0, 5, 5, colors.Blue.WithAlpha(0))
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	d := r.Draws[0]
	assert.Equal(t, 12, d.IndexCount)
	assert.Equal(t, vp, d.Uniforms["uVP"])
	assert.Len(t, d.Samplers, 1)

	st := rd.Stats()
	assert.Equal(t, Statistics{DrawCalls: 1, QuadCount: 2, TextureCount: 1}, st)
	assert.Equal(t, 8, st.TotalVertexCount())
	assert.Equal(t, 12, st.TotalIndexCount())

	// top-left corner of the first rect
	v := r.Meshes[0].Vertices
	assert.Equal(t, float32(10), v[0])
	assert.Equal(t, float32(20), v[1])
	// bottom-right corner
	assert.Equal(t, float32(40), v[3*vStride])
	assert.Equal(t, float32(60), v[3*vStride+1])
}

func TestFlushWhenFull(t *testing.T) {
	rd, r := newTest(t, 2)
	rd.BeginScene([16]float32{})
	for i := 0; i < 5; i++ {
		rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	}
	rd.EndScene()
	assert.Len(t, r.Draws, 3)
	assert.Equal(t, 5, rd.Stats().QuadCount)
}

func TestFlushWhenTextureSlotsRunOut(t *testing.T) {
	rd, r := newTest(t, 100)
	rd.BeginScene([16]float32{})
	for i := 0; i < maxTexSlots; i++ {
		tex, err := r.CreateTexture(core.TextureDesc{Width: 1, Height: 1})
		require.NoError(t, err)
		rd.DrawSubTexQuad(0, 0, 1, 1, FromPixels(tex, 0, 0, 1, 1, 1, 1), colors.White, 0)
	}
	rd.EndScene()

	// white occupies slot 0, so the 16th texture forces a flush
	require.Len(t, r.Draws, 2)
	assert.Len(t, r.Draws[0].Samplers, maxTexSlots)
	assert.Len(t, r.Draws[1].Samplers, 2)
	assert.Equal(t, maxTexSlots, rd.Stats().TextureCount)
}

func TestSubTextureUVs(t *testing.T) {
	sub := FromPixels(nil, 16, 32, 16, 32, 64, 128)
	assert.Equal(t, SubTexture2D{U0: 0.25, V0: 0.25, U1: 0.5, V1: 0.5}, sub)
}

func TestReloadKeepsOldPipelineOnError(t *testing.T) {
	rd, r := newTest(t, 1)
	old := rd.pipe
	r.FailPipelines = true
	assert.Error(t, rd.Reload("a", "b"))
	assert.Same(t, old, rd.pipe)

	r.FailPipelines = false
	require.NoError(t, rd.Reload("a", "b"))
	assert.NotSame(t, old, rd.pipe)
	assert.Contains(t, r.Destroyed, core.Resource(old))
}
