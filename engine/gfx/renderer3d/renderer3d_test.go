package renderer3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/gfx/gfxtest"
	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/shapes"
)

type sources map[string]string

func (s sources) LoadShader(name string) (string, error) { return s[name], nil }

var src = sources{
	"solid.vert": "sv", "solid.frag": "sf",
	"gradient.vert": "gv", "gradient.frag": "gf",
}

func setup(t *testing.T) (*gfxtest.Renderer, *Renderer3D) {
	t.Helper()
	r := gfxtest.New()
	solid, gradient := material.SolidPlugin(), material.GradientPlugin()
	require.NoError(t, solid.Build(r, src))
	require.NoError(t, gradient.Build(r, src))
	return r, New(r, solid, gradient)
}

func cube(t *testing.T) *shapes.Buffers {
	t.Helper()
	b, err := shapes.Cube{Size: 1}.Build()
	require.NoError(t, err)
	return b
}

func TestSubmitDrawsWithCameraAndMaterial(t *testing.T) {
	r, r3 := setup(t)
	mesh := cube(t)
	m := material.NewSolid(colors.Red)
	view := scene.Translate(0, 0, -5)
	proj := scene.Perspective(1, 1.5, 0.1, 100)
	model := scene.At(1, 2, 3).Matrix()

	r3.BeginScene(view, proj)
	require.NoError(t, r3.Submit(mesh, model, m))
	r3.EndScene()

	require.Len(t, r.Draws, 1)
	d := r.Draws[0]
	assert.Same(t, r3.Plugin(material.KindSolid).Pipeline(), d.Pipe)
	assert.Equal(t, model, d.Uniforms["uModel"])
	assert.Equal(t, view, d.Uniforms["uView"])
	assert.Equal(t, proj, d.Uniforms["uProj"])
	require.Contains(t, d.Buffers, uint32(0))
	assert.Equal(t, material.Encode(m), d.Buffers[0].(*gfxtest.UniformBuffer).Data)

	s := r3.Stats()
	assert.Equal(t, 1, s.DrawCalls)
	assert.Equal(t, mesh.TriangleCount(), s.Triangles)
	assert.Equal(t, 1, s.Meshes)
}

func TestSharedMeshUploadsOnce(t *testing.T) {
	r, r3 := setup(t)
	sphere, err := shapes.DefaultUVSphere().Build()
	require.NoError(t, err)

	r3.BeginScene(scene.Identity(), scene.Identity())
	for _, c := range []colors.Color{colors.Red, colors.Green, colors.Blue} {
		require.NoError(t, r3.Submit(sphere, scene.Identity(), material.NewSolid(c)))
	}
	r3.EndScene()

	assert.Len(t, r.Meshes, 1)
	assert.Len(t, r.Draws, 3)
	assert.Len(t, r.UniformBuffers, 3)
	assert.Equal(t, shapes.VertexLayout, r.Meshes[0].Desc.Layout)
}

func TestDrawsGroupedByKind(t *testing.T) {
	r, r3 := setup(t)
	mesh := cube(t)
	r3.BeginScene(scene.Identity(), scene.Identity())
	require.NoError(t, r3.Submit(mesh, scene.Identity(), material.NewSolid(colors.White)))
	require.NoError(t, r3.Submit(mesh, scene.Identity(), material.NewGradient(colors.Red, colors.Blue)))
	require.NoError(t, r3.Submit(mesh, scene.Identity(), material.NewSolid(colors.Black)))
	r3.EndScene()

	require.Len(t, r.Draws, 3)
	gradient := r3.Plugin(material.KindGradient).Pipeline()
	solid := r3.Plugin(material.KindSolid).Pipeline()
	assert.Same(t, gradient, r.Draws[0].Pipe)
	assert.Same(t, solid, r.Draws[1].Pipe)
	assert.Same(t, solid, r.Draws[2].Pipe)
	assert.Equal(t, 2, r3.Stats().PipelineBinds)
}

func TestSubmitErrors(t *testing.T) {
	r := gfxtest.New()
	r3 := New(r, material.SolidPlugin())
	mesh := cube(t)

	assert.Error(t, r3.Submit(mesh, scene.Identity(), material.NewSolid(colors.White)))

	r3.BeginScene(scene.Identity(), scene.Identity())
	assert.ErrorContains(t, r3.Submit(mesh, scene.Identity(), material.NewSolid(colors.White)), "not built")
	assert.ErrorContains(t, r3.Submit(mesh, scene.Identity(), material.NewGradient(colors.Red, colors.Blue)), "no plugin")
	r3.EndScene()
	assert.Empty(t, r.Draws)
}

func TestForgetAndRelease(t *testing.T) {
	r, r3 := setup(t)
	a, b := cube(t), cube(t)
	_, err := r3.Upload(a)
	require.NoError(t, err)
	_, err = r3.Upload(b)
	require.NoError(t, err)
	assert.Equal(t, 2, r3.Stats().Meshes)

	r3.Forget(a)
	r3.Forget(a)
	assert.Len(t, r.Destroyed, 1)
	assert.Equal(t, 1, r3.Stats().Meshes)

	r3.Release()
	assert.Len(t, r.Destroyed, 2)
	assert.Zero(t, r3.Stats().Meshes)

	assert.Equal(t, []material.Kind{material.KindGradient, material.KindSolid},
		[]material.Kind{r3.Plugins()[0].Kind(), r3.Plugins()[1].Kind()})
}
