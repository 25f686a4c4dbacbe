package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/mlange-42/arche/ecs"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/shapes"
	"github.com/hubastard/groveshade/engine/world"
)

const cylinderLabel = "Gradient cylinder"

var (
	cameraEye   = scene.Vec3{3, 3.5, 10}
	cameraFocus = scene.Vec3{0, 0, 0}
)

// spawnScene fills w with the demo scene and returns the cylinder entity.
func spawnScene(w *world.World, cyl shapes.Cylinder) (ecs.Entity, error) {
	build := func(name string, s shapes.Shape) (*shapes.Buffers, error) {
		b, err := s.Build()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		return b, nil
	}

	ground, err := build("ground", shapes.Plane{Size: 20})
	if err != nil {
		return ecs.Entity{}, err
	}
	cube, err := build("cube", shapes.Cube{Size: 1})
	if err != nil {
		return ecs.Entity{}, err
	}
	plane, err := build("plane", shapes.Plane{Size: 2.5})
	if err != nil {
		return ecs.Entity{}, err
	}
	sphere, err := build("sphere", shapes.DefaultUVSphere())
	if err != nil {
		return ecs.Entity{}, err
	}
	cylinder, err := build("cylinder", cyl)
	if err != nil {
		return ecs.Entity{}, err
	}

	upright := scene.At(0, 2, -5).Rotated(math32.Pi/2, 0, 0)

	floor := w.SpawnSolid("Ground", ground, scene.At(0, 0, 0), material.NewSolid(colors.RGB(0.3, 0.5, 0.3)))
	w.Unlist(floor)
	w.SpawnSolid("WHITE cube", cube, scene.At(0, 1, 3), material.NewSolid(colors.White))
	w.SpawnSolid("WHITE plane", plane, upright, material.NewSolid(colors.White))
	w.SpawnSolid("RED sphere", sphere, scene.At(-2.25, 1, 0), material.NewSolid(colors.Red))
	w.SpawnSolid("GREEN sphere", sphere, scene.At(0, 1, 0), material.NewSolid(colors.Green))
	w.SpawnSolid("BLUE sphere", sphere, scene.At(2.25, 1, 0), material.NewSolid(colors.Blue))

	gradientPlane := upright
	gradientPlane.Translation[0] = 3
	w.SpawnGradient("Gradient plane", plane, gradientPlane, material.NewGradient(colors.Red, colors.Blue))
	e := w.SpawnGradient(cylinderLabel, cylinder,
		scene.At(6, 2, -5).Rotated(0, math32.Pi/2, math32.Pi/2),
		material.NewGradient(colors.Red, colors.Blue))
	return e, nil
}
