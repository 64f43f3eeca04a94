package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/noya-app/noyastate"
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/paragraph"
)

// Config is the CLI configuration file.
//
//	canvas:
//	  width: 1280
//	  height: 800
//	insets: {left: 240, right: 260}
//	fonts:
//	  Inter: ./fonts/Inter-Regular.ttf
//	logLevel: debug
//	watch:
//	  debounce: 200ms
type Config struct {
	Canvas   geometry.Size     `yaml:"canvas"`
	Insets   geometry.Insets   `yaml:"insets"`
	Fonts    map[string]string `yaml:"fonts" validate:"dive,keys,required,endkeys,required,file"`
	LogLevel string            `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	Watch    WatchConfig       `yaml:"watch"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0,lte=10s"`
}

// canvasRules validates geometry types, which carry no validate tags.
type canvasRules struct {
	Width  float64 `validate:"gt=0,lte=100000"`
	Height float64 `validate:"gt=0,lte=100000"`
	Insets float64 `validate:"gte=0"`
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Canvas:   geometry.Size{Width: 1280, Height: 800},
		LogLevel: "warn",
		Watch:    WatchConfig{Debounce: 100 * time.Millisecond},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and that font files exist.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return err
	}
	insets := min(c.Insets.Top, c.Insets.Left, c.Insets.Bottom, c.Insets.Right)
	if err := configValidate.Struct(canvasRules{Width: c.Canvas.Width, Height: c.Canvas.Height, Insets: insets}); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if c.Insets.Left+c.Insets.Right >= c.Canvas.Width || c.Insets.Top+c.Insets.Bottom >= c.Canvas.Height {
		return errors.New("canvas: insets cover the whole canvas")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return l
}

// RenderContext builds what the reducers need from the config, with the
// bundled fonts plus the configured ones.
func (c Config) RenderContext() (noyastate.RenderContext, error) {
	fm := paragraph.NewFontManager()
	for family, path := range c.Fonts {
		data, err := os.ReadFile(path)
		if err != nil {
			return noyastate.RenderContext{}, fmt.Errorf("font %q: %w", family, err)
		}
		if err := fm.Register(family, data); err != nil {
			return noyastate.RenderContext{}, fmt.Errorf("font %q: %w", family, err)
		}
	}
	return noyastate.RenderContext{CanvasSize: c.Canvas, CanvasInsets: c.Insets, FontManager: fm}, nil
}
