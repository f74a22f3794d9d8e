package bars

import (
	"math"
)

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func (p Point) Add(o Point) Point {
	return Point{
		X: p.X + o.X,
		Y: p.Y + o.Y,
	}
}

// Rect is the box of a bar in drawing area coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// sanitize replaces coordinates a scale could not compute with zero.
func (r Rect) sanitize() Rect {
	r.X = finite(r.X)
	r.Y = finite(r.Y)
	r.Width = finite(r.Width)
	r.Height = finite(r.Height)
	return r
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
