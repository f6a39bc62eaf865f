// Package config loads the optional gauge.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/gauge/pkg/animation"
	gaugeerrors "github.com/go-drift/gauge/pkg/errors"
	"github.com/go-drift/gauge/pkg/gauge"
	"github.com/go-drift/gauge/pkg/graphics"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "gauge.yaml"

// Config represents the optional gauge.yaml configuration.
type Config struct {
	Gauge     GaugeConfig     `yaml:"gauge"`
	Style     StyleConfig     `yaml:"style"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Animation AnimationConfig `yaml:"animation"`
	Output    OutputConfig    `yaml:"output"`
}

// GaugeConfig contains the initial widget state.
type GaugeConfig struct {
	Value    *int     `yaml:"value,omitempty"`
	Animate  bool     `yaml:"animate,omitempty"`
	Hidden   bool     `yaml:"hidden,omitempty"`
	Rotation *float64 `yaml:"rotation,omitempty"`
	Label    bool     `yaml:"label,omitempty"`
}

// StyleConfig contains colors as "#RRGGBB" or "#RRGGBBAA" and the stroke
// width.
type StyleConfig struct {
	Color       string  `yaml:"color,omitempty"`
	Track       string  `yaml:"track,omitempty"`
	Label       string  `yaml:"label,omitempty"`
	StrokeWidth float64 `yaml:"stroke_width,omitempty"`
}

// ViewportConfig contains the simulated viewport size.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// AnimationConfig contains the animate command settings.
type AnimationConfig struct {
	Frames   int    `yaml:"frames,omitempty"`
	Interval string `yaml:"interval,omitempty"`
}

// OutputConfig contains output locations.
type OutputConfig struct {
	File string `yaml:"file,omitempty"`
	Dir  string `yaml:"dir,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path     string
	Settings gauge.Settings
	Viewport graphics.Size
	Frames   int
	Interval time.Duration
	OutFile  string
	OutDir   string
}

// Defaults used when the configuration leaves a value unset.
const (
	DefaultViewportWidth  = 1000
	DefaultViewportHeight = 800
	DefaultFrames         = 60
	DefaultOutFile        = "gauge.png"
	DefaultOutDir         = "frames"
)

// LoadOptional reads gauge.yaml from dir if present. A missing file yields an
// empty Config.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads the configuration file at path. Unlike LoadOptional, a missing
// file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, configError("config.Load", fmt.Errorf("failed to read %s: %w", path, err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to parse %s: %w", path, err))
	}
	return &cfg, nil
}

// Resolve applies defaults to cfg and validates it.
func Resolve(cfg *Config) (*Resolved, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	settings := gauge.DefaultSettings()

	if cfg.Gauge.Value != nil {
		settings.Value = gauge.Clamp(*cfg.Gauge.Value)
	}
	if cfg.Gauge.Rotation != nil {
		settings.Rotation = *cfg.Gauge.Rotation
	}
	settings.Animate = cfg.Gauge.Animate
	settings.Hidden = cfg.Gauge.Hidden
	settings.ShowLabel = cfg.Gauge.Label

	for _, c := range []struct {
		name  string
		value string
		dst   *graphics.Color
	}{
		{"style.color", cfg.Style.Color, &settings.Color},
		{"style.track", cfg.Style.Track, &settings.TrackColor},
		{"style.label", cfg.Style.Label, &settings.LabelColor},
	} {
		if strings.TrimSpace(c.value) == "" {
			continue
		}
		parsed, err := graphics.ParseHex(strings.TrimSpace(c.value))
		if err != nil {
			return nil, configError("config.Resolve", fmt.Errorf("%s: %w", c.name, err))
		}
		*c.dst = parsed
	}

	switch {
	case cfg.Style.StrokeWidth < 0:
		return nil, configError("config.Resolve", fmt.Errorf("style.stroke_width must not be negative, got %v", cfg.Style.StrokeWidth))
	case cfg.Style.StrokeWidth > 0:
		settings.StrokeWidth = cfg.Style.StrokeWidth
	}

	viewport := graphics.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	if viewport.Width < 0 || viewport.Height < 0 {
		return nil, configError("config.Resolve", fmt.Errorf("viewport size must not be negative, got %vx%v", viewport.Width, viewport.Height))
	}
	if viewport.Width == 0 {
		viewport.Width = DefaultViewportWidth
	}
	if viewport.Height == 0 {
		viewport.Height = DefaultViewportHeight
	}

	frames := cfg.Animation.Frames
	if frames < 0 {
		return nil, configError("config.Resolve", fmt.Errorf("animation.frames must not be negative, got %d", frames))
	}
	if frames == 0 {
		frames = DefaultFrames
	}

	interval := animation.DefaultFrameInterval
	if s := strings.TrimSpace(cfg.Animation.Interval); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, configError("config.Resolve", fmt.Errorf("animation.interval: %w", err))
		}
		if d <= 0 {
			return nil, configError("config.Resolve", fmt.Errorf("animation.interval must be positive, got %s", d))
		}
		interval = d
	}

	outFile := strings.TrimSpace(cfg.Output.File)
	if outFile == "" {
		outFile = DefaultOutFile
	}
	outDir := strings.TrimSpace(cfg.Output.Dir)
	if outDir == "" {
		outDir = DefaultOutDir
	}

	return &Resolved{
		Settings: settings,
		Viewport: viewport,
		Frames:   frames,
		Interval: interval,
		OutFile:  outFile,
		OutDir:   outDir,
	}, nil
}

// LoadAndResolve loads path, or gauge.yaml in dir when path is empty, and
// resolves it.
func LoadAndResolve(path, dir string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		path = filepath.Join(dir, FileName)
		cfg, err = LoadOptional(dir)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, configError("config.Load", fmt.Errorf("config file %s not found", path))
		}
		return nil, err
	}
	res, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}

func configError(op string, err error) *gaugeerrors.GaugeError {
	return &gaugeerrors.GaugeError{Op: op, Kind: gaugeerrors.KindConfig, Err: err}
}
