package main

import (
	"os"
	"path/filepath"

	"github.com/hubastard/groveshade/engine/colors"
	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/profiler"
	"github.com/hubastard/groveshade/engine/scene"
	"github.com/hubastard/groveshade/engine/scratch"
	"github.com/hubastard/groveshade/engine/ui"
)

// DebugLayer is the top-right stats overlay.
type DebugLayer struct {
	s     *Showcase
	cam   *scene.OrthoCamera2D
	ctx   *ui.Context
	lines *scratch.Arena
}

func NewDebugLayer(s *Showcase) *DebugLayer { return &DebugLayer{s: s, lines: scratch.New(4096)} }

func (l *DebugLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.ctx = ui.NewContext(l.s.font, l.s.r2d, e.Input)
}

func (l *DebugLayer) OnDetach(e *core.Engine) {}

func (l *DebugLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *DebugLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("DebugLayer.OnRender")
	defer end()

	l.lines.Reset()
	l.s.r2d.BeginScene(l.cam.VP())
	l.ctx.BeginFrame([4]float32{0, 0, l.cam.Width(), l.cam.Height()})
	ui.View(l.panel(e)).
		Padding(16).
		WidthExpand().
		AlignMain(ui.AlignEnd).
		Draw(l.ctx)
	l.ctx.EndFrame()
	l.s.r2d.EndScene()
}

func (l *DebugLayer) panel(e *core.Engine) *ui.UIView {
	heading := func(s string) ui.Element { return ui.Label(s).Padding4(0, 8, 0, 0).Color(colors.Yellow) }
	line := func(format string, args ...any) ui.Element { return ui.Label(l.lines.Sprintf("  "+format, args...)) }

	avg := l.s.frames.Average()
	s2 := l.s.stats2D
	s3 := l.s.r3d.Stats()
	mem := profiler.ReadMemory()

	return ui.View(
		ui.Label(l.lines.Sprintf("Frame: %d", e.Frame())).Color(colors.Yellow),
		line("%.3f ms (%.1f FPS)", float64(avg.Microseconds())/1000, l.s.frames.FPS()),
		line("max %v", l.s.frames.Max()),
		heading("2D Renderer"),
		line("Draw Calls: %d", s2.DrawCalls),
		line("Quads: %d", s2.QuadCount),
		line("Vertices: %d", s2.TotalVertexCount()),
		line("Textures: %d", s2.TextureCount),
		heading("3D Renderer"),
		line("Draw Calls: %d", s3.DrawCalls),
		line("Triangles: %d", s3.Triangles),
		line("Meshes: %d", s3.Meshes),
		heading("Memory"),
		line("Usage: %.3f MB", float64(mem.Alloc)/(1<<20)),
		line("Allocs: %d", mem.Mallocs),
		line("GC: %d", mem.NumGC),
		line("Goroutines: %d", mem.Goroutines),
		heading("CPU"),
		line("Count: %d", mem.CPUs),
		heading("GPU"),
		line("Vendor: %s", e.Renderer.GPUVendor()),
		line("Renderer: %s", e.Renderer.GPURenderer()),
		line("Version: %s", e.Renderer.GPUVersion()),
	).
		FlowDirection(ui.LayoutVertical).
		Gap(2).
		Padding(16).
		BgColor(colors.Black.WithAlpha(0.5))
}

func (l *DebugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && v.Mods&core.ModCtrl != 0 {
			logProfile()
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}

// logProfile logs the scope summary and writes a speedscope capture.
func logProfile() {
	log := core.Logger()
	for _, st := range profiler.Summary() {
		log.Info("profile scope", "name", st.Name, "calls", st.Calls, "mean", st.Mean(), "max", st.Max, "total", st.Total)
	}
	path := filepath.Join(os.TempDir(), "groveshade.speedscope.json")
	if err := profiler.WriteSpeedscope(path); err != nil {
		log.Warn("speedscope dump", "err", err)
		return
	}
	log.Info("speedscope dump", "path", path)
}
