package engine

import (
	"time"

	"github.com/matzehuels/forcegraph/pkg/interact"
	"github.com/matzehuels/forcegraph/pkg/physics"
	"github.com/matzehuels/forcegraph/pkg/route"
	"github.com/matzehuels/forcegraph/pkg/shape"
)

// DefaultFPS is the frame rate of Run.
const DefaultFPS = 60

// Config bundles the engine's tunables.
type Config struct {
	Physics  physics.Params
	Interact interact.Config

	NodeSize      float64
	EdgeSpacing   float64
	ScatterRadius float64
	Seed          int64

	Width, Height float64
	FPS           int
}

// DefaultConfig returns the standard engine settings for an 800x600
// surface.
func DefaultConfig() Config {
	return Config{
		Physics:       physics.DefaultParams(),
		Interact:      interact.DefaultConfig(),
		NodeSize:      shape.DefaultSize,
		EdgeSpacing:   route.DefaultSpacing,
		ScatterRadius: physics.DefaultScatterRadius,
		Seed:          1,
		Width:         800,
		Height:        600,
		FPS:           DefaultFPS,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if !(c.NodeSize > 0) {
		c.NodeSize = d.NodeSize
	}
	if !(c.EdgeSpacing > 0) {
		c.EdgeSpacing = d.EdgeSpacing
	}
	if !(c.ScatterRadius > 0) {
		c.ScatterRadius = d.ScatterRadius
	}
	if !(c.Width > 0) || !(c.Height > 0) {
		c.Width, c.Height = d.Width, d.Height
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	c.Interact.NodeSize = c.NodeSize
	return c
}

func (c Config) frameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
