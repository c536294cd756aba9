// Package pipeline runs the headless load → layout → render path shared by
// the CLI commands.
//
// # Stages
//
//  1. Load: read a graph file (JSON, TOML, YAML or DOT), or the demo dataset
//     when no input is given
//  2. Layout: run a force simulation for a fixed number of steps and apply
//     the requested view (zoom, centering, highlight)
//  3. Render: write the final frame in each requested format
//
// Layouts are deterministic for a given graph and option set, so a
// [Runner] with a cache skips the simulation on repeated runs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "graph.toml",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/engine"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/physics"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSteps is enough for the demo graph to settle under the default
	// damping.
	DefaultSteps = 300

	// MaxSteps bounds a single headless run.
	MaxSteps = 100_000

	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultSeed   = int64(1)
	DefaultZoom   = 1.0
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraphviz}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	if format == FormatGraphviz {
		return ".graphviz.svg"
	}
	return "." + format
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Load options. An empty Input loads the demo dataset.
	Input       string `json:"input,omitempty"`
	InputFormat string `json:"input_format,omitempty"`

	// Layout options
	Steps         int            `json:"steps,omitempty"`
	Seed          int64          `json:"seed,omitempty"`
	Width         float64        `json:"width,omitempty"`
	Height        float64        `json:"height,omitempty"`
	NodeSize      float64        `json:"node_size,omitempty"`
	ScatterRadius float64        `json:"scatter_radius,omitempty"`
	Physics       physics.Params `json:"physics"`

	// View options
	Zoom      float64 `json:"zoom,omitempty"`
	Highlight *int64  `json:"highlight,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	FitContent bool     `json:"fit_content,omitempty"`
	Labels     bool     `json:"labels,omitempty"` // fitted labels in DOT output
	PixelScale float64  `json:"pixel_scale,omitempty"`
	Background string   `json:"background,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Nodes []graph.Node
	Edges []graph.Edge
	// GraphHash is the content hash of the loaded graph.
	GraphHash string
	Frame     *scene.Frame
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Skipped    int
	Steps      int
	Energy     float64
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks every format. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSteps checks that steps is within [0, MaxSteps].
func ValidateSteps(steps int) error {
	if steps < 0 || steps > MaxSteps {
		return errors.New(errors.ErrCodeInvalidInput, "steps must be between 0 and %d, got %d", MaxSteps, steps)
	}
	return nil
}

// ValidateSize checks that a surface size is positive and finite.
func ValidateSize(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "size must be positive, got %vx%v", width, height)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the whole option
// set. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input path.
func (o *Options) ValidateForLoad() error {
	o.setLogger()
	if o.Input == "" {
		return nil
	}
	return errors.ValidatePath(o.Input)
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Physics == (physics.Params{}) {
		o.Physics = physics.DefaultParams()
	}
	o.setLogger()
}

// ValidateForLayout applies layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateSteps(o.Steps); err != nil {
		return err
	}
	if err := ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	d := engine.DefaultConfig().Interact
	return errors.ValidateZoom(o.Zoom, d.MinZoom, d.MaxZoom)
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.PixelScale == 0 {
		o.PixelScale = 1
	}
	o.setLogger()
}

// ValidateForRender applies render defaults and validates the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// EngineConfig returns the engine settings for the layout stage.
func (o *Options) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Physics = o.Physics
	cfg.Seed = o.Seed
	cfg.Width, cfg.Height = o.Width, o.Height
	if o.NodeSize > 0 {
		cfg.NodeSize = o.NodeSize
	}
	if o.ScatterRadius > 0 {
		cfg.ScatterRadius = o.ScatterRadius
	}
	// headless runs have no viewport changes to debounce
	cfg.Interact.ResizeDebounce = 0
	return cfg
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.EngineConfig()
	return cache.LayoutKeyOpts{
		Steps:          o.Steps,
		Seed:           o.Seed,
		Width:          o.Width,
		Height:         o.Height,
		NodeSize:       cfg.NodeSize,
		ScatterRadius:  cfg.ScatterRadius,
		Repulsion:      o.Physics.Repulsion,
		SpringConstant: o.Physics.SpringConstant,
		SpringLength:   o.Physics.SpringLength,
		Damping:        o.Physics.Damping,
		MinDistance:    o.Physics.MinDistance,
		Gravity:        o.Physics.Gravity,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Zoom:       o.Zoom,
		Highlight:  o.Highlight,
		FitContent: o.FitContent,
		Labels:     o.Labels,
		PixelScale: o.PixelScale,
		Background: o.Background,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
