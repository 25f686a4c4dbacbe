package material

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestSolidStd140(t *testing.T) {
	m := &Solid{Color: [4]float32{0.1, 0.2, 0.3, 0.4}, Scale: 2, Offset: -1.5}
	b := Encode(m)
	require.Len(t, b, SolidLayout.Size)

	for i, want := range m.Color {
		assert.Equal(t, want, f32At(b, i*4))
	}
	assert.Equal(t, float32(2), f32At(b, 16))
	assert.Equal(t, float32(-1.5), f32At(b, 20))
	assert.Equal(t, make([]byte, 8), b[24:])
}

func TestGradientStd140(t *testing.T) {
	m := NewGradient(colors.Red, colors.Blue)
	m.Start, m.End = 0.25, 0.75
	b := Encode(m)
	require.Len(t, b, GradientLayout.Size)

	assert.Equal(t, float32(1), f32At(b, 0))
	assert.Equal(t, float32(0), f32At(b, 4))
	assert.Equal(t, float32(1), f32At(b, 16+8))
	assert.Equal(t, float32(0.25), f32At(b, 32))
	assert.Equal(t, float32(0.75), f32At(b, 36))
}

func TestAppendStd140KeepsPrefix(t *testing.T) {
	prefix := []byte{1, 2, 3}
	b := NewSolid(colors.White).AppendStd140(prefix)
	assert.Equal(t, prefix, b[:3])
	assert.Len(t, b, 3+SolidLayout.Size)
}

func TestDefaults(t *testing.T) {
	s := NewSolid(colors.Green)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, s.Color)
	assert.Equal(t, float32(1), s.Scale)
	assert.Zero(t, s.Offset)

	g := NewGradient(colors.Red, colors.Blue)
	assert.Zero(t, g.Start)
	assert.Equal(t, float32(1), g.End)
}

func TestClamp(t *testing.T) {
	s := &Solid{Color: [4]float32{-1, 2, 0.5, 1}, Scale: 9, Offset: -7}
	s.Clamp()
	assert.Equal(t, [4]float32{0, 1, 0.5, 1}, s.Color)
	assert.Equal(t, float32(SolidScaleMax), s.Scale)
	assert.Equal(t, float32(SolidOffsetMin), s.Offset)

	g := &Gradient{Start: -0.5, End: 3}
	g.Clamp()
	assert.Zero(t, g.Start)
	assert.Equal(t, float32(1), g.End)
}

type shaders map[string]string

func (s shaders) LoadShader(name string) (string, error) {
	src, ok := s[name]
	if !ok {
		return "", fmt.Errorf("load shader %q: not found", name)
	}
	return src, nil
}

var solidSources = shaders{"solid.vert": "vs", "solid.frag": "fs"}

func TestPluginBuild(t *testing.T) {
	r := gfxtest.New()
	p := SolidPlugin()
	require.NoError(t, p.Build(r, solidSources))

	require.Len(t, r.Pipelines, 1)
	desc := r.Pipelines[0].Desc
	assert.Equal(t, "vs", desc.VertexSource)
	assert.Equal(t, "fs", desc.FragmentSource)
	assert.True(t, desc.DepthTest)
	require.Len(t, desc.Blocks, 1)
	assert.Equal(t, "SolidMaterial", desc.Blocks[0].Name)
	assert.Equal(t, 32, desc.Blocks[0].MinSize)
	assert.Same(t, r.Pipelines[0], p.Pipeline())

	err := GradientPlugin().Build(r, solidSources)
	assert.ErrorContains(t, err, "gradient.vert")
}

func TestPluginReload(t *testing.T) {
	r := gfxtest.New()
	p := SolidPlugin()
	require.NoError(t, p.Build(r, solidSources))
	first := p.Pipeline()

	r.FailPipelines = true
	assert.ErrorIs(t, p.Reload(r, solidSources), gfxtest.ErrPipeline)
	assert.Same(t, first, p.Pipeline())
	assert.Empty(t, r.Destroyed)

	r.FailPipelines = false
	require.NoError(t, p.Reload(r, solidSources))
	assert.NotSame(t, first, p.Pipeline())
	assert.Equal(t, []any{first}, []any{r.Destroyed[0]})
}

func TestPluginPrepare(t *testing.T) {
	r := gfxtest.New()
	p := SolidPlugin()
	m := NewSolid(colors.White)

	buf, err := p.Prepare(r, m)
	require.NoError(t, err)
	require.Len(t, r.UniformBuffers, 1)
	ub := r.UniformBuffers[0]
	assert.Same(t, ub, buf)
	assert.Equal(t, Encode(m), ub.Data)

	// unchanged parameters do not re-upload
	_, err = p.Prepare(r, m)
	require.NoError(t, err)
	assert.Zero(t, ub.Writes)

	m.Scale = 3
	_, err = p.Prepare(r, m)
	require.NoError(t, err)
	assert.Equal(t, 1, ub.Writes)
	assert.Equal(t, float32(3), f32At(ub.Data, 16))

	other := NewSolid(colors.Red)
	_, err = p.Prepare(r, other)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Prepared())

	_, err = p.Prepare(r, NewGradient(colors.Red, colors.Blue))
	assert.Error(t, err)

	p.Forget(r, m)
	assert.Equal(t, 1, p.Prepared())
	p.Release(r)
	assert.Zero(t, p.Prepared())
	assert.Len(t, r.Destroyed, 2)
}

func TestPluginUses(t *testing.T) {
	p := GradientPlugin()
	assert.True(t, p.Uses("assets/shaders/gradient.frag"))
	assert.True(t, p.Uses(`assets\shaders\gradient.vert`))
	assert.False(t, p.Uses("assets/shaders/solid.frag"))
	assert.Equal(t, [2]string{"gradient.vert", "gradient.frag"}, p.ShaderFiles())
}
