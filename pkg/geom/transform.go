package geom

// Transform maps simulation space to screen space: screen = sim*Zoom + Pan.
// The zero value is not usable; start from [Identity].
type Transform struct {
	Zoom float64
	Pan  Vec
}

// Identity is the transform with zoom 1 and no pan.
var Identity = Transform{Zoom: 1}

// ToSim converts a screen point to simulation space.
func (t Transform) ToSim(p Vec) Vec {
	return p.Sub(t.Pan).Div(t.zoom())
}

// ToScreen converts a simulation point to screen space.
func (t Transform) ToScreen(p Vec) Vec {
	return p.Scale(t.zoom()).Add(t.Pan)
}

// DeltaToSim converts a screen-space displacement to simulation space.
// Pan does not apply to displacements.
func (t Transform) DeltaToSim(d Vec) Vec {
	return d.Div(t.zoom())
}

// ZoomAt returns the transform with the given zoom that keeps the screen
// point anchor fixed over the same simulation point.
func (t Transform) ZoomAt(anchor Vec, zoom float64) Transform {
	sim := t.ToSim(anchor)
	next := Transform{Zoom: zoom, Pan: anchor.Sub(sim.Scale(zoom))}
	if !next.Pan.Finite() {
		next.Pan = t.Pan
	}
	return next
}

// CenterOn returns the pan that puts the center of b at the center of a
// viewport of the given size, at the transform's zoom. Non-finite results
// collapse to zero pan.
func (t Transform) CenterOn(b Bounds, width, height float64) Transform {
	viewport := Vec{width / 2, height / 2}
	pan := viewport.Sub(b.Center().Scale(t.zoom()))
	if !pan.Finite() {
		pan = Vec{}
	}
	return Transform{Zoom: t.Zoom, Pan: pan}
}

func (t Transform) zoom() float64 {
	if t.Zoom == 0 || !Finite(t.Zoom) {
		return 1
	}
	return t.Zoom
}
