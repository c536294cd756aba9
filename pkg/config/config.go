// Package config loads forcegraph settings.
//
// Settings are layered: [Default] values, then a TOML or YAML file chosen
// by [Load], then command-line flags applied by the CLI. [Config.Validate]
// checks field ranges with struct tags and the cross-field rules by hand.
//
// A minimal TOML file:
//
//	[physics]
//	repulsion = 12000
//
//	[view]
//	max_zoom = 8
//	resize_debounce = "250ms"
package config

import (
	"time"

	"github.com/matzehuels/forcegraph/pkg/engine"
	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/physics"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// Config is the full settings tree.
type Config struct {
	Physics PhysicsConfig `toml:"physics" yaml:"physics"`
	View    ViewConfig    `toml:"view" yaml:"view"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
}

// PhysicsConfig holds the force constants.
type PhysicsConfig struct {
	Repulsion      float64 `toml:"repulsion" yaml:"repulsion" validate:"gte=0"`
	SpringConstant float64 `toml:"spring_constant" yaml:"spring_constant" validate:"gte=0"`
	SpringLength   float64 `toml:"spring_length" yaml:"spring_length" validate:"gt=0"`
	Damping        float64 `toml:"damping" yaml:"damping" validate:"gt=0,lt=1"`
	MinDistance    float64 `toml:"min_distance" yaml:"min_distance" validate:"gt=0"`
	Gravity        float64 `toml:"gravity" yaml:"gravity" validate:"gte=0"`
}

// ViewConfig holds interaction and drawing sizes.
type ViewConfig struct {
	MinZoom          float64  `toml:"min_zoom" yaml:"min_zoom" validate:"gt=0"`
	MaxZoom          float64  `toml:"max_zoom" yaml:"max_zoom" validate:"gt=0"`
	WheelSensitivity float64  `toml:"wheel_sensitivity" yaml:"wheel_sensitivity" validate:"gt=0"`
	ClickTolerance   float64  `toml:"click_tolerance" yaml:"click_tolerance" validate:"gte=0"`
	RecenterOnResize bool     `toml:"recenter_on_resize" yaml:"recenter_on_resize"`
	ResizeDebounce   Duration `toml:"resize_debounce" yaml:"resize_debounce"`
	NodeSize         float64  `toml:"node_size" yaml:"node_size" validate:"gt=0"`
	EdgeSpacing      float64  `toml:"edge_spacing" yaml:"edge_spacing" validate:"gte=0"`
}

// RenderConfig holds headless rendering settings.
type RenderConfig struct {
	Steps      int      `toml:"steps" yaml:"steps" validate:"gte=0,lte=100000"`
	Width      float64  `toml:"width" yaml:"width" validate:"gt=0"`
	Height     float64  `toml:"height" yaml:"height" validate:"gt=0"`
	Zoom       float64  `toml:"zoom" yaml:"zoom" validate:"gt=0"`
	Formats    []string `toml:"formats" yaml:"formats" validate:"dive,oneof=svg png pdf json dot graphviz"`
	Background string   `toml:"background" yaml:"background" validate:"omitempty,hexcolor"`
	PixelScale float64  `toml:"pixel_scale" yaml:"pixel_scale" validate:"gt=0,lte=8"`
	FitContent bool     `toml:"fit_content" yaml:"fit_content"`
	Output     string   `toml:"output" yaml:"output"`
}

// EngineConfig holds the frame loop settings.
type EngineConfig struct {
	FPS           int     `toml:"fps" yaml:"fps" validate:"gt=0,lte=240"`
	Seed          int64   `toml:"seed" yaml:"seed"`
	ScatterRadius float64 `toml:"scatter_radius" yaml:"scatter_radius" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() Config {
	ed := engine.DefaultConfig()
	p := ed.Physics
	v := ed.Interact
	return Config{
		Physics: PhysicsConfig{
			Repulsion:      p.Repulsion,
			SpringConstant: p.SpringConstant,
			SpringLength:   p.SpringLength,
			Damping:        p.Damping,
			MinDistance:    p.MinDistance,
			Gravity:        p.Gravity,
		},
		View: ViewConfig{
			MinZoom:          v.MinZoom,
			MaxZoom:          v.MaxZoom,
			WheelSensitivity: v.WheelSensitivity,
			ClickTolerance:   v.ClickTolerance,
			RecenterOnResize: v.RecenterOnResize,
			ResizeDebounce:   Duration{v.ResizeDebounce},
			NodeSize:         ed.NodeSize,
			EdgeSpacing:      ed.EdgeSpacing,
		},
		Render: RenderConfig{
			Steps:      pipeline.DefaultSteps,
			Width:      pipeline.DefaultWidth,
			Height:     pipeline.DefaultHeight,
			Zoom:       pipeline.DefaultZoom,
			Formats:    []string{pipeline.FormatSVG},
			PixelScale: 1,
		},
		Engine: EngineConfig{
			FPS:           ed.FPS,
			Seed:          ed.Seed,
			ScatterRadius: ed.ScatterRadius,
		},
	}
}

// PhysicsParams converts the physics section.
func (c Config) PhysicsParams() physics.Params {
	p := c.Physics
	return physics.Params{
		Repulsion:      p.Repulsion,
		SpringConstant: p.SpringConstant,
		SpringLength:   p.SpringLength,
		Damping:        p.Damping,
		MinDistance:    p.MinDistance,
		Gravity:        p.Gravity,
	}
}

// EngineSettings returns the engine configuration for an interactive
// surface of the given size.
func (c Config) EngineSettings(width, height float64) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Physics = c.PhysicsParams()
	cfg.Interact = interact.Config{
		MinZoom:          c.View.MinZoom,
		MaxZoom:          c.View.MaxZoom,
		WheelSensitivity: c.View.WheelSensitivity,
		ClickTolerance:   c.View.ClickTolerance,
		NodeSize:         c.View.NodeSize,
		RecenterOnResize: c.View.RecenterOnResize,
		ResizeDebounce:   c.View.ResizeDebounce.Duration,
	}
	cfg.NodeSize = c.View.NodeSize
	cfg.EdgeSpacing = c.View.EdgeSpacing
	cfg.ScatterRadius = c.Engine.ScatterRadius
	cfg.Seed = c.Engine.Seed
	cfg.FPS = c.Engine.FPS
	cfg.Width, cfg.Height = width, height
	return cfg
}

// PipelineOptions returns headless run options. Callers fill in Input and
// any flag overrides.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Steps:         c.Render.Steps,
		Seed:          c.Engine.Seed,
		Width:         c.Render.Width,
		Height:        c.Render.Height,
		NodeSize:      c.View.NodeSize,
		ScatterRadius: c.Engine.ScatterRadius,
		Physics:       c.PhysicsParams(),
		Zoom:          c.Render.Zoom,
		Formats:       append([]string(nil), c.Render.Formats...),
		FitContent:    c.Render.FitContent,
		PixelScale:    c.Render.PixelScale,
		Background:    c.Render.Background,
	}
}

// Duration is a time.Duration written as a string such as "150ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
