package bars

import (
	"io"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Chart places a bar layer inside a padded surface with its axes.
type Chart struct {
	Title  string
	Width  float64
	Height float64

	Padding

	Layer   *Bars
	Backend Backend

	XLabel string
	YLabel string
	NoAxis bool
}

func (c Chart) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Chart) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

func (c Chart) Area() Area {
	return Area{
		Width:  c.DrawingWidth(),
		Height: c.DrawingHeight(),
	}
}

// Render computes the scales of the layer for the drawing area, lays out
// its marks and writes the result with the backend of the chart.
func (c Chart) Render(w io.Writer) error {
	if c.Layer == nil {
		return ErrNoData
	}
	sc, err := c.Layer.Scales(c.Area())
	if err != nil {
		return err
	}
	scene, err := c.Layer.Draw()
	if err != nil {
		return err
	}
	return c.backend().Render(w, c.frame(sc), scene)
}

// Refresh writes the last drawn scene of the layer, keeping its
// interaction state.
func (c Chart) Refresh(w io.Writer) error {
	if c.Layer == nil {
		return ErrNoData
	}
	sc := Scales{}
	if c.Layer.scales != nil {
		sc = *c.Layer.scales
	}
	return c.backend().Render(w, c.frame(sc), c.Layer.Scene())
}

func (c Chart) backend() Backend {
	if c.Backend == nil {
		return SVGBackend{}
	}
	return c.Backend
}

func (c Chart) frame(sc Scales) Frame {
	f := Frame{
		Title:   c.Title,
		Width:   c.Width,
		Height:  c.Height,
		Padding: c.Padding,
	}
	if c.NoAxis {
		return f
	}
	format := c.Layer.Config().Format
	if sc.X != nil {
		if a := MakeAxis(sc.X, OrientBottom, format); a != nil {
			f.Bottom = withLabel(a, c.XLabel)
		}
	}
	if sc.Y != nil {
		if a := MakeAxis(sc.Y, OrientLeft, format); a != nil {
			f.Left = withLabel(a, c.YLabel)
		}
	}
	return f
}

func withLabel(a Axis, label string) Axis {
	switch a := a.(type) {
	case NumberAxis:
		a.Label = label
		return a
	case CategoryAxis:
		a.Label = label
		return a
	default:
		return a
	}
}
