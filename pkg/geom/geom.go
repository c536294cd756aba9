// Package geom holds the small amount of 2D geometry shared by the layout,
// routing and interaction packages.
//
// Two coordinate spaces exist: screen space (surface-local pixels, as
// delivered by pointer events) and simulation space (where the physics
// integrator moves nodes). [Transform] is the only place that converts
// between them.
package geom

import "math"

// Vec is a 2D point or displacement.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) Mid(o Vec) Vec       { return Vec{(v.X + o.X) / 2, (v.Y + o.Y) / 2} }
func (v Vec) Finite() bool        { return Finite(v.X) && Finite(v.Y) }
func (v Vec) IsZero() bool        { return v.X == 0 && v.Y == 0 }
func (v Vec) Div(k float64) Vec   { return Vec{v.X / k, v.Y / k} }
func (v Vec) Eq(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Unit returns v scaled to length 1 and false when v has no direction.
func (v Vec) Unit() (Vec, bool) {
	l := v.Len()
	if l == 0 || !Finite(l) {
		return Vec{}, false
	}
	return v.Div(l), true
}

// Normal returns the left-hand unit normal (-y, x) of v.
func (v Vec) Normal() (Vec, bool) {
	u, ok := v.Unit()
	if !ok {
		return Vec{}, false
	}
	return Vec{-u.Y, u.X}, true
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// OrZero returns f when finite and 0 otherwise.
func OrZero(f float64) float64 {
	if Finite(f) {
		return f
	}
	return 0
}

// Clamp limits f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec
}

// BoundsOf returns the bounding box of the finite points in pts.
// The second result is false when there are none.
func BoundsOf(pts []Vec) (Bounds, bool) {
	var b Bounds
	found := false
	for _, p := range pts {
		if !p.Finite() {
			continue
		}
		if !found {
			b = Bounds{Min: p, Max: p}
			found = true
			continue
		}
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b, found
}

func (b Bounds) Center() Vec     { return b.Min.Mid(b.Max) }
func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Pad grows the box by d on every side.
func (b Bounds) Pad(d float64) Bounds {
	return Bounds{Min: b.Min.Sub(Vec{d, d}), Max: b.Max.Add(Vec{d, d})}
}
