package core

import (
	"fmt"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	// window owns the context, so it goes last
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := newEngine(win, rend, cfg)
	win.SetEventCallback(func(ev Event) {
		eng.dispatch(app, ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	if err := app.OnStart(eng); err != nil {
		for eng.Layers.Len() > 0 {
			eng.PopLayer()
		}
		return fmt.Errorf("start: %w", err)
	}
	Logger().Info("engine started", "title", cfg.Title, "width", w, "height", h, "layers", eng.Layers.Len())

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	// Fixed-timestep with interpolation
	tick := time.Second / time.Duration(tickRate)
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			eng.update(app, tick.Seconds())
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		eng.render(app, alpha)

		win.SwapBuffers()
		eng.Input.EndFrame()
		eng.frame++
	}

	app.OnShutdown(eng)
	for eng.Layers.Len() > 0 {
		eng.PopLayer()
	}
	Logger().Info("engine exit", "frames", eng.frame, "uptime", eng.Uptime())
	return nil
}

func newEngine(win Window, rend Renderer, cfg Config) *Engine {
	return &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		Layers:   &LayerStack{},
		Config:   cfg,
		start:    time.Now(),
	}
}

func (e *Engine) dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	if _, ok := ev.(EventCloseRequested); ok {
		e.Window.RequestClose()
	}
	if e.Layers.Dispatch(e, ev) {
		return
	}
	app.OnEvent(e, ev)
}

func (e *Engine) update(app App, dt float64) {
	app.OnUpdate(e, dt)
	e.Layers.ForEach(func(l Layer) { l.OnUpdate(e, dt) })
}

func (e *Engine) render(app App, alpha float64) {
	app.OnRender(e, alpha)
	e.Layers.ForEach(func(l Layer) { l.OnRender(e, alpha) })
}
