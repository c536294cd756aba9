package sink

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

// fitView returns an identity-zoom transform and canvas size that frame
// every node body with pad pixels to spare. An empty frame keeps its own
// size and view.
func fitView(f *scene.Frame, pad float64) (geom.Transform, float64, float64) {
	b, ok := f.Bounds()
	if !ok {
		return f.View, f.Width, f.Height
	}
	b = b.Pad(pad)
	w, h := math.Ceil(b.Width()), math.Ceil(b.Height())
	return geom.Transform{Zoom: 1, Pan: geom.Vec{}.Sub(b.Min)}, w, h
}
