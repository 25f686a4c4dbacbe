package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/groveshade/engine/shapes"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, float32(1), cfg.Cylinder.Radius)
	assert.Equal(t, float32(2.5), cfg.Cylinder.Height)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
[window]
title = "demo"
width = 800

[log]
level = "debug"

[cylinder]
resolution = 32
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint32(32), cfg.Cylinder.Resolution)
	assert.Equal(t, float32(1), cfg.Cylinder.Radius)
	assert.True(t, cfg.Assets.HotReload)
}

func TestLoadConfigRejectsBadCylinder(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[cylinder]\nradius = 0.0\n"))
	assert.ErrorIs(t, err, shapes.ErrInvalidParameter)
	assert.ErrorContains(t, err, "radius")
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[window\n"))
	assert.Error(t, err)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
