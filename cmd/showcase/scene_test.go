package main

import (
	"testing"

	"github.com/mlange-42/arche/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/shapes"
	"github.com/hubastard/groveshade/engine/world"
)

func TestSpawnScene(t *testing.T) {
	w := world.New()
	cyl, err := spawnScene(w, DefaultConfig().Cylinder)
	require.NoError(t, err)
	assert.Equal(t, 8, w.Count())
	assert.Equal(t, cylinderLabel, w.Name(cyl))

	spheres := map[*shapes.Buffers]int{}
	solids := 0
	var listed []string
	w.EachSolid(func(e ecs.Entity, l *world.Label, tr *scene.Transform, m *world.Mesh, _ *world.SolidMaterial) {
		solids++
		if w.Listed(e) {
			listed = append(listed, l.Name)
		}
		if l.Name == "RED sphere" || l.Name == "GREEN sphere" || l.Name == "BLUE sphere" {
			spheres[m.Buffers]++
			assert.Equal(t, float32(1), tr.Translation[1])
		}
	})
	assert.Equal(t, 6, solids)
	// the ground is drawn but kept out of the inspector
	assert.NotContains(t, listed, "Ground")
	assert.Len(t, listed, 5)
	assert.True(t, w.Listed(cyl))
	// the three spheres share one mesh
	assert.Len(t, spheres, 1)

	var cylMesh *shapes.Buffers
	w.EachGradient(func(e ecs.Entity, _ *world.Label, _ *scene.Transform, m *world.Mesh, _ *world.GradientMaterial) {
		if e == cyl {
			cylMesh = m.Buffers
		}
	})
	require.NotNil(t, cylMesh)
	assert.Equal(t, DefaultConfig().Cylinder.VertexCount(), cylMesh.VertexCount())
}

func TestSpawnSceneRejectsBadCylinder(t *testing.T) {
	w := world.New()
	_, err := spawnScene(w, shapes.Cylinder{Radius: 1, Height: 1, Resolution: 0, Subdivisions: 1})
	assert.ErrorIs(t, err, shapes.ErrInvalidParameter)
	assert.Zero(t, w.Count())
}
