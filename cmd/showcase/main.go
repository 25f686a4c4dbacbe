// Command showcase renders a small scene shaded by editable solid and
// gradient materials, with an inspector panel and a debug overlay.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hubastard/groveshade/engine/core"
	glbackend "github.com/hubastard/groveshade/engine/gfx/gl"
	"github.com/hubastard/groveshade/engine/platform"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: core.ParseLevel(cfg.Log.Level)}))
	core.SetLogger(logger)

	newWindow := func(c core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(c, nil)
	}
	newRenderer := func(win core.Window, c core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, c)
	}

	if err := core.Run(NewShowcase(cfg), cfg.Window, newWindow, newRenderer); err != nil {
		logger.Error("showcase", "err", err)
		os.Exit(1)
	}
}
