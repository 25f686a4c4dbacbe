package main

import (
	"github.com/mlange-42/arche/ecs"

	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/profiler"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/ui"
	"github.com/hubastard/groveshade/engine/world"
)

const inspectorWidth = 340

// InspectorLayer is the left side panel editing materials and the cylinder.
type InspectorLayer struct {
	s       *Showcase
	cam     *scene.OrthoCamera2D
	ctx     *ui.Context
	visible bool
}

func NewInspectorLayer(s *Showcase) *InspectorLayer {
	return &InspectorLayer{s: s, visible: true}
}

// WantsMouse reports whether the panel took the cursor last frame.
func (l *InspectorLayer) WantsMouse() bool { return l.visible && l.ctx != nil && l.ctx.WantsMouse() }

func (l *InspectorLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.ctx = ui.NewContext(l.s.font, l.s.r2d, e.Input)
}

func (l *InspectorLayer) OnDetach(e *core.Engine) {}

func (l *InspectorLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *InspectorLayer) OnRender(e *core.Engine, alpha float64) {
	if !l.visible {
		return
	}
	end := profiler.Start("InspectorLayer.OnRender")
	defer end()

	l.s.r2d.BeginScene(l.cam.VP())
	l.ctx.BeginFrame([4]float32{0, 0, l.cam.Width(), l.cam.Height()})
	l.panel().Draw(l.ctx)
	l.ctx.EndFrame()
	l.s.r2d.EndScene()
}

func (l *InspectorLayer) panel() *ui.UIView {
	th := l.ctx.Theme
	items := []ui.Element{
		ui.Label("Inspector").Color(th.Accent),
		ui.Separator(),
		ui.Label("Custom Materials").Color(th.TextDim),
	}
	l.s.world.EachSolid(func(en ecs.Entity, lb *world.Label, _ *scene.Transform, _ *world.Mesh, m *world.SolidMaterial) {
		if !l.s.world.Listed(en) {
			return
		}
		items = append(items, ui.Collapsing(lb.Name,
			ui.ColorEdit("Color", &m.Color),
			ui.Slider("Scale", &m.Scale, material.SolidScaleMin, material.SolidScaleMax).LabelWidth(64),
			ui.Slider("Offset", &m.Offset, material.SolidOffsetMin, material.SolidOffsetMax).LabelWidth(64),
		).ID(en))
	})

	items = append(items, ui.Separator(), ui.Label("Gradient Materials").Color(th.TextDim))
	l.s.world.EachGradient(func(en ecs.Entity, lb *world.Label, _ *scene.Transform, _ *world.Mesh, m *world.GradientMaterial) {
		if !l.s.world.Listed(en) {
			return
		}
		items = append(items, ui.Collapsing(lb.Name,
			ui.ColorEdit("Color A", &m.ColorA),
			ui.ColorEdit("Color B", &m.ColorB),
			ui.Slider("Start", &m.Start, 0, 1).LabelWidth(64),
			ui.Slider("End", &m.End, 0, 1).LabelWidth(64),
		).ID(en))
	})

	items = append(items, ui.Separator(), l.cylinderSection())

	return ui.View(items...).
		FlowDirection(ui.LayoutVertical).
		AlignCross(ui.AlignStretch).
		Gap(6).
		Padding(12).
		WidthFixed(inspectorWidth).
		HeightExpand().
		BgColor(l.ctx.Theme.Panel)
}

func (l *InspectorLayer) cylinderSection() ui.Element {
	p := &l.s.cylParams
	rebuild := func(float32) { l.s.rebuildCylinder() }
	body := []ui.Element{
		ui.Slider("Radius", &p.Radius, 0, 5).LabelWidth(110).OnChange(rebuild),
		ui.Slider("Height", &p.Height, 0, 5).LabelWidth(110).OnChange(rebuild),
		ui.SliderUint("Resolution", &p.Resolution, 0, 64).LabelWidth(110).OnChange(rebuild),
		ui.SliderUint("Subdivisions", &p.Subdivisions, 0, 16).LabelWidth(110).OnChange(rebuild),
	}
	if l.s.cylErr != "" {
		body = append(body, ui.Label(l.s.cylErr).Color(l.ctx.Theme.Error).MaxWidth(inspectorWidth-48))
	}
	return ui.Collapsing("Cylinder", body...).DefaultOpen(true)
}

func (l *InspectorLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyF1 {
			l.visible = !l.visible
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}
