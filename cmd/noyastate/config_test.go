package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "noyastate.yaml", `
canvas: {width: 1000, height: 800}
insets: {left: 200}
logLevel: debug
watch:
  debounce: 250ms
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 1000, cfg.Canvas.Width, 1e-9)
	assert.InDelta(t, 200, cfg.Insets.Left, 1e-9)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)

	ctx, err := cfg.RenderContext()
	require.NoError(t, err)
	assert.NotNil(t, ctx.FontManager)
	assert.InDelta(t, 800, ctx.CanvasSize.Height, 1e-9)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero canvas", "canvas: {width: 0, height: 800}"},
		{"negative inset", "insets: {top: -1}"},
		{"insets cover canvas", "canvas: {width: 100, height: 100}\ninsets: {left: 60, right: 60}"},
		{"unknown log level", "logLevel: loud"},
		{"missing font file", "fonts: {Inter: /nonexistent/Inter.ttf}"},
		{"debounce too long", "watch: {debounce: 1m}"},
		{"not yaml", "canvas: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.yaml", tt.yaml)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderContextBadFont(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Fonts = map[string]string{"Broken": writeFile(t, dir, "broken.ttf", "not a font")}
	require.NoError(t, cfg.Validate())
	_, err := cfg.RenderContext()
	assert.Error(t, err)
}
