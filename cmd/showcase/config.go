package main

import (
	"fmt"

	"github.com/hubastard/groveshade/engine/core"
	"github.com/hubastard/groveshade/engine/shapes"
)

// Config is the showcase's config.toml.
type Config struct {
	Window   core.Config     `toml:"window"`
	Assets   AssetsConfig    `toml:"assets"`
	Log      LogConfig       `toml:"log"`
	Cylinder shapes.Cylinder `toml:"cylinder"`
}

type AssetsConfig struct {
	Root      string `toml:"root"`
	HotReload bool   `toml:"hot_reload"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

func DefaultConfig() Config {
	win := core.DefaultConfig()
	win.Title = "groveshade"
	cyl := shapes.DefaultCylinder()
	cyl.Radius = 1
	cyl.Height = 2.5
	return Config{
		Window:   win,
		Assets:   AssetsConfig{Root: "assets", HotReload: true},
		Log:      LogConfig{Level: "info"},
		Cylinder: cyl,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; a cylinder that cannot be built is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := core.LoadTOML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Cylinder.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: cylinder: %w", path, err)
	}
	if cfg.Window.Width < 1 || cfg.Window.Height < 1 {
		return cfg, fmt.Errorf("config %q: window size %dx%d", path, cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}
