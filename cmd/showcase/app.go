package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlange-42/arche/ecs"

	"github.com/hubastard/groveshade/engine/assets"
	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/gfx/renderer2d"
	"github.com/hubastard/groveshade/engine/gfx/renderer3d"
	"github.com/hubastard/groveshade/engine/material"
	"github.com/hubastard/groveshade/engine/profiler"
	"github.com/hubastard/groveshade/engine/shapes"
	"github.com/hubastard/groveshade/engine/text"
	"github.com/hubastard/groveshade/engine/world"
)

// Showcase owns the resources the layers share.
type Showcase struct {
	cfg     Config
	loader  *assets.Loader
	watcher *assets.Watcher

	r2d     *renderer2d.Renderer2D
	r3d     *renderer3d.Renderer3D
	font    *text.Font
	stats2D renderer2d.Statistics

	world     *world.World
	cylinder  ecs.Entity
	cylParams shapes.Cylinder
	cylErr    string

	frames    *profiler.FrameTimer
	lastFrame time.Time
	inspector *InspectorLayer
}

func NewShowcase(cfg Config) *Showcase {
	return &Showcase{
		cfg:       cfg,
		loader:    assets.NewLoader(cfg.Assets.Root),
		cylParams: cfg.Cylinder,
		frames:    profiler.NewFrameTimer(120),
	}
}

func (s *Showcase) OnStart(e *core.Engine) error {
	profiler.Init(1 << 14)

	vs, fs, err := s.load2DShaders()
	if err != nil {
		return err
	}
	s.r2d, err = renderer2d.New(e.Renderer, vs, fs, 10000)
	if err != nil {
		return err
	}
	s.font, err = text.Default(e.Renderer, 16)
	if err != nil {
		return err
	}

	solid, gradient := material.SolidPlugin(), material.GradientPlugin()
	for _, p := range []*material.Plugin{solid, gradient} {
		if err := p.Build(e.Renderer, s.loader); err != nil {
			return err
		}
	}
	s.r3d = renderer3d.New(e.Renderer, solid, gradient)

	s.world = world.New()
	s.cylinder, err = spawnScene(s.world, s.cylParams)
	if err != nil {
		return err
	}

	if s.cfg.Assets.HotReload {
		if s.watcher, err = s.loader.Watch(); err != nil {
			core.Logger().Warn("shader hot reload disabled", "err", err)
		}
	}

	s.inspector = NewInspectorLayer(s)
	e.PushLayer(NewSceneLayer(s))
	e.PushLayer(s.inspector)
	e.PushLayer(NewDebugLayer(s))
	return nil
}

func (s *Showcase) OnUpdate(e *core.Engine, dt float64) {}

func (s *Showcase) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !s.lastFrame.IsZero() {
		s.frames.Add(now.Sub(s.lastFrame))
	}
	s.lastFrame = now
	// last pass of the previous frame
	s.stats2D = s.r2d.Stats()

	if s.watcher != nil {
		s.reload(e.Renderer, s.watcher.Drain())
	}
}

func (s *Showcase) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyEscape {
		e.Window.RequestClose()
	}
}

func (s *Showcase) OnShutdown(e *core.Engine) {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			core.Logger().Warn("close shader watcher", "err", err)
		}
	}
	for _, p := range s.r3d.Plugins() {
		p.Release(e.Renderer)
	}
	s.r3d.Release()
	s.r2d.Release()
	e.Renderer.Destroy(s.font.Texture)
}

func (s *Showcase) load2DShaders() (string, string, error) {
	vs, err := s.loader.LoadShader("renderer2d.vert")
	if err != nil {
		return "", "", err
	}
	fs, err := s.loader.LoadShader("renderer2d.frag")
	if err != nil {
		return "", "", err
	}
	return vs, fs, nil
}

// reload rebuilds the pipelines fed by the changed shader files. Failures
// are logged and the running pipeline stays in place.
func (s *Showcase) reload(r core.Renderer, changed []string) {
	r2dDirty := false
	for _, name := range changed {
		if strings.HasPrefix(name, "renderer2d.") {
			r2dDirty = true
		}
		for _, p := range s.r3d.Plugins() {
			if !p.Uses(name) {
				continue
			}
			if err := p.Reload(r, s.loader); err != nil {
				core.Logger().Warn("shader reload failed", "file", name, "err", err)
			}
		}
	}
	if !r2dDirty {
		return
	}
	vs, fs, err := s.load2DShaders()
	if err == nil {
		err = s.r2d.Reload(vs, fs)
	}
	if err != nil {
		core.Logger().Warn("shader reload failed", "file", "renderer2d", "err", err)
		return
	}
	core.Logger().Info("2D pipeline reloaded")
}

// rebuildCylinder regenerates the cylinder mesh from the inspector
// parameters. Invalid parameters keep the current mesh.
func (s *Showcase) rebuildCylinder() {
	b, err := s.cylParams.Build()
	if err != nil {
		s.cylErr = err.Error()
		return
	}
	s.cylErr = ""
	if old, ok := s.world.SetMesh(s.cylinder, b); ok {
		s.r3d.Forget(old)
	}
	core.Logger().Debug("cylinder rebuilt",
		"vertices", b.VertexCount(), "triangles", b.TriangleCount(),
		"params", fmt.Sprintf("%+v", s.cylParams))
}
