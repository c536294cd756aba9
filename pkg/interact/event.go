package interact

import "github.com/matzehuels/forcegraph/pkg/geom"

// Event is a device event in surface-local screen coordinates.
type Event interface {
	event()
}

type (
	PointerDown struct{ Pos geom.Vec }
	PointerMove struct{ Pos geom.Vec }
	PointerUp   struct{ Pos geom.Vec }
	Wheel       struct {
		Pos   geom.Vec
		Delta float64
	}
	Key    struct{ Key string }
	Resize struct{ Width, Height float64 }
)

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (Wheel) event()       {}
func (Key) event()         {}
func (Resize) event()      {}

// Handle dispatches a pointer, wheel or key event. Resize events are
// returned unhandled so the owner can debounce them; the result reports
// whether ev was consumed.
func (c *Controller) Handle(ev Event) bool {
	switch e := ev.(type) {
	case PointerDown:
		c.PointerDown(e.Pos)
	case PointerMove:
		c.PointerMove(e.Pos)
	case PointerUp:
		c.PointerUp(e.Pos)
	case Wheel:
		c.Wheel(e.Pos, e.Delta)
	case Key:
		return c.Key(e.Key)
	default:
		return false
	}
	return true
}
