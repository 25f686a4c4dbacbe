// Package world holds the showcase scene as arche entities.
package world

import (
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"

	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/shapes"
)

// Label names an entity in the inspector.
type Label struct{ Name string }

// Mesh points at CPU-side geometry; the 3D renderer caches its upload.
type Mesh struct{ Buffers *shapes.Buffers }

type SolidMaterial struct{ *material.Solid }

type GradientMaterial struct{ *material.Gradient }

// Unlisted marks scenery the inspector does not show.
type Unlisted struct{}

type World struct {
	ecs ecs.World

	solids     generic.Map4[Label, scene.Transform, Mesh, SolidMaterial]
	gradients  generic.Map4[Label, scene.Transform, Mesh, GradientMaterial]
	meshes     generic.Map[Mesh]
	labels     generic.Map[Label]
	unlisted   generic.Map1[Unlisted]
	unlistedID ecs.ID

	solidQ    *generic.Filter4[Label, scene.Transform, Mesh, SolidMaterial]
	gradientQ *generic.Filter4[Label, scene.Transform, Mesh, GradientMaterial]
	labelQ    *generic.Filter1[Label]
}

func New() *World {
	w := &World{ecs: ecs.NewWorld()}
	w.solids = generic.NewMap4[Label, scene.Transform, Mesh, SolidMaterial](&w.ecs)
	w.gradients = generic.NewMap4[Label, scene.Transform, Mesh, GradientMaterial](&w.ecs)
	w.meshes = generic.NewMap[Mesh](&w.ecs)
	w.labels = generic.NewMap[Label](&w.ecs)
	w.unlisted = generic.NewMap1[Unlisted](&w.ecs)
	w.unlistedID = ecs.ComponentID[Unlisted](&w.ecs)
	w.solidQ = generic.NewFilter4[Label, scene.Transform, Mesh, SolidMaterial]()
	w.gradientQ = generic.NewFilter4[Label, scene.Transform, Mesh, GradientMaterial]()
	w.labelQ = generic.NewFilter1[Label]()
	return w
}

func (w *World) SpawnSolid(name string, mesh *shapes.Buffers, t scene.Transform, m *material.Solid) ecs.Entity {
	return w.solids.NewWith(&Label{name}, &t, &Mesh{mesh}, &SolidMaterial{m})
}

func (w *World) SpawnGradient(name string, mesh *shapes.Buffers, t scene.Transform, m *material.Gradient) ecs.Entity {
	return w.gradients.NewWith(&Label{name}, &t, &Mesh{mesh}, &GradientMaterial{m})
}

func (w *World) EachSolid(fn func(e ecs.Entity, l *Label, t *scene.Transform, m *Mesh, mat *SolidMaterial)) {
	q := w.solidQ.Query(&w.ecs)
	for q.Next() {
		l, t, m, mat := q.Get()
		fn(q.Entity(), l, t, m, mat)
	}
}

func (w *World) EachGradient(fn func(e ecs.Entity, l *Label, t *scene.Transform, m *Mesh, mat *GradientMaterial)) {
	q := w.gradientQ.Query(&w.ecs)
	for q.Next() {
		l, t, m, mat := q.Get()
		fn(q.Entity(), l, t, m, mat)
	}
}

// Find returns the first entity labelled name.
func (w *World) Find(name string) (ecs.Entity, bool) {
	q := w.labelQ.Query(&w.ecs)
	for q.Next() {
		if q.Get().Name == name {
			e := q.Entity()
			q.Close()
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// SetMesh swaps e's geometry and returns the previous buffers.
func (w *World) SetMesh(e ecs.Entity, b *shapes.Buffers) (*shapes.Buffers, bool) {
	if !w.ecs.Alive(e) || !w.meshes.Has(e) {
		return nil, false
	}
	m := w.meshes.Get(e)
	old := m.Buffers
	m.Buffers = b
	return old, true
}

// MeshOf returns e's geometry, or nil.
func (w *World) MeshOf(e ecs.Entity) *shapes.Buffers {
	if !w.ecs.Alive(e) || !w.meshes.Has(e) {
		return nil
	}
	return w.meshes.Get(e).Buffers
}

func (w *World) Name(e ecs.Entity) string {
	if !w.ecs.Alive(e) || !w.labels.Has(e) {
		return ""
	}
	return w.labels.Get(e).Name
}

// Unlist hides e from the inspector. It must not be called during a query.
func (w *World) Unlist(e ecs.Entity) {
	if w.ecs.Alive(e) && !w.ecs.Has(e, w.unlistedID) {
		w.unlisted.Add(e)
	}
}

// Listed reports whether e is a live entity the inspector shows.
func (w *World) Listed(e ecs.Entity) bool {
	return w.ecs.Alive(e) && !w.ecs.Has(e, w.unlistedID)
}

func (w *World) Despawn(e ecs.Entity) {
	if w.ecs.Alive(e) {
		w.ecs.RemoveEntity(e)
	}
}

// Count returns the number of live entities.
func (w *World) Count() int {
	q := w.labelQ.Query(&w.ecs)
	n := q.Count()
	q.Close()
	return n
}
