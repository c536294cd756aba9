package physics

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/forcegraph/pkg/geom"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// DefaultScatterRadius is the spacing unit of the initial spiral.
const DefaultScatterRadius = 40.0

// Scatter gives every unplaced node (free and exactly at the origin) a
// starting position on a phyllotaxis spiral around center, jittered with
// seeded simplex noise. The same seed always yields the same layout.
// It returns the number of nodes placed.
func Scatter(nodes []*graph.Node, center geom.Vec, radius float64, seed int64) int {
	if !(radius > 0) {
		radius = DefaultScatterRadius
	}
	noise := opensimplex.New(seed)

	placed := 0
	for i, n := range nodes {
		if n.Pinned() || n.X != 0 || n.Y != 0 {
			continue
		}
		r := radius * math.Sqrt(0.5+float64(i))
		theta := float64(i) * goldenAngle
		jx := noise.Eval2(float64(i)*0.37, 0.5) * radius / 4
		jy := noise.Eval2(0.5, float64(i)*0.37) * radius / 4
		n.X = center.X + r*math.Cos(theta) + jx
		n.Y = center.Y + r*math.Sin(theta) + jy
		n.VX, n.VY = 0, 0
		placed++
	}
	return placed
}
