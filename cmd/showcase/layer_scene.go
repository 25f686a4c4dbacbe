package main

import (
	"github.com/mlange-42/arche/ecs"

	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/profiler"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/world"
)

// SceneLayer draws the world through the pan-orbit camera.
type SceneLayer struct {
	s      *Showcase
	cam    *scene.PerspectiveCamera
	orbit  *scene.PanOrbit
	failed map[ecs.Entity]bool
}

func NewSceneLayer(s *Showcase) *SceneLayer {
	return &SceneLayer{s: s, failed: make(map[ecs.Entity]bool)}
}

func (l *SceneLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewPerspective(cameraEye, cameraFocus, w, h)
	l.orbit = scene.NewPanOrbit(cameraEye, cameraFocus)
	l.orbit.Apply(l.cam)
}

func (l *SceneLayer) OnDetach(e *core.Engine) {}

func (l *SceneLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *SceneLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("SceneLayer.OnRender")
	defer end()

	// input deltas are per frame, so the camera moves here rather than in OnUpdate
	if !l.s.inspector.WantsMouse() && l.orbit.Update(e.Input) {
		l.orbit.Apply(l.cam)
	}

	r3d := l.s.r3d
	r3d.BeginScene(l.cam.View(), l.cam.Proj())
	l.s.world.EachSolid(func(en ecs.Entity, lb *world.Label, t *scene.Transform, m *world.Mesh, mat *world.SolidMaterial) {
		l.report(en, lb.Name, r3d.Submit(m.Buffers, t.Matrix(), mat.Solid))
	})
	l.s.world.EachGradient(func(en ecs.Entity, lb *world.Label, t *scene.Transform, m *world.Mesh, mat *world.GradientMaterial) {
		l.report(en, lb.Name, r3d.Submit(m.Buffers, t.Matrix(), mat.Gradient))
	})
	r3d.EndScene()
}

// report logs a failing entity once, and again after it recovers.
func (l *SceneLayer) report(en ecs.Entity, name string, err error) {
	switch {
	case err != nil && !l.failed[en]:
		l.failed[en] = true
		core.Logger().Warn("skip entity", "name", name, "err", err)
	case err == nil && l.failed[en]:
		delete(l.failed, en)
	}
}

func (l *SceneLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}
