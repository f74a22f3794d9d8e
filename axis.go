package bars

import (
	"fmt"

	svg "github.com/ajstarks/svgo/float"
)

const FontSize = 12.0

const DefaultTicks = 10

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

type Axis interface {
	Render(canvas *svg.SVG, length, size, left, top float64)
}

// MakeAxis picks the axis matching the kind of s. It returns nil for
// scalers that are neither banded nor continuous.
func MakeAxis(s Scaler, orient Orientation, format Formatter) Axis {
	switch s := s.(type) {
	case Banded:
		return CategoryAxis{
			Orientation:    orient,
			Scaler:         s,
			WithInnerTicks: true,
		}
	case Continuous:
		a := NumberAxis{
			Orientation:    orient,
			Ticks:          DefaultTicks,
			Scaler:         s,
			WithInnerTicks: true,
			WithLabelTicks: true,
			WithOuterTicks: true,
		}
		if format != nil {
			a.Format = func(f float64) string {
				return format(f, 2)
			}
		}
		return a
	default:
		return nil
	}
}

type NumberAxis struct {
	Label string
	Orientation
	Ticks          int
	Scaler         Continuous
	Domain         []float64
	Format         func(float64) string
	WithInnerTicks bool
	WithLabelTicks bool
	WithOuterTicks bool
}

func (a NumberAxis) Render(canvas *svg.SVG, length, size, left, top float64) {
	canvas.Group(`class="axis"`, translate(left, top))
	defer canvas.Gend()

	domainLine(canvas, a.Orientation, length)
	axisLabel(canvas, a.Orientation, a.Label, length)

	var (
		data   = a.Domain
		format = a.Format
	)
	if len(data) == 0 {
		data = a.Scaler.Ticks(a.Ticks)
	}
	if format == nil {
		format = func(f float64) string {
			return fmt.Sprintf("%.2f", f)
		}
	}
	for _, f := range data {
		canvas.Group(tickTranslate(a.Orientation, a.Scaler.Scale(f)))
		if a.WithInnerTicks {
			lineTick(canvas, a.Orientation, 0, FontSize*0.8, `stroke="black"`)
		}
		if a.WithLabelTicks {
			tickText(canvas, a.Orientation, format(f), 0)
		}
		if a.WithOuterTicks {
			lineTick(canvas, a.Orientation, 0, -size, `stroke="black"`, `stroke-opacity="0.05"`)
		}
		canvas.Gend()
	}
}

type CategoryAxis struct {
	Label  string
	Scaler Banded
	Orientation
	Domain         []string
	WithInnerTicks bool
	WithOuterTicks bool
}

func (a CategoryAxis) Render(canvas *svg.SVG, length, size, left, top float64) {
	canvas.Group(`class="axis"`, translate(left, top))
	defer canvas.Gend()

	domainLine(canvas, a.Orientation, length)
	axisLabel(canvas, a.Orientation, a.Label, length)

	var (
		align = a.Scaler.Bandwidth() / 2
		data  = a.Domain
	)
	if len(data) == 0 {
		data = a.Scaler.Values()
	}
	for _, s := range data {
		canvas.Group(tickTranslate(a.Orientation, a.Scaler.Scale(s)))
		if a.WithInnerTicks {
			lineTick(canvas, a.Orientation, align, FontSize*0.8, `stroke="black"`)
		}
		if a.WithOuterTicks {
			lineTick(canvas, a.Orientation, align, -size, `stroke="black"`, `stroke-dasharray="5"`)
		}
		tickText(canvas, a.Orientation, s, align)
		canvas.Gend()
	}
}

func translate(x, y float64) string {
	return fmt.Sprintf(`transform="translate(%.2f,%.2f)"`, finite(x), finite(y))
}

func tickTranslate(orient Orientation, pos float64) string {
	if orient.Vertical() {
		return translate(0, pos)
	}
	return translate(pos, 0)
}

func domainLine(canvas *svg.SVG, orient Orientation, length float64) {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	canvas.Line(0, 0, x, y, `stroke="black"`, `stroke-width="1"`)
}

func axisLabel(canvas *svg.SVG, orient Orientation, label string, length float64) {
	if label == "" {
		return
	}
	var (
		offset = FontSize * 3
		attrs  = []string{
			fmt.Sprintf(`font-size="%.0f"`, FontSize),
			`text-anchor="middle"`,
			`class="axis-label"`,
		}
	)
	if orient.Reverse() {
		offset = -offset
	}
	if !orient.Vertical() {
		canvas.Text(length/2, offset, label, attrs...)
		return
	}
	attrs = append(attrs, `transform="rotate(-90)"`)
	canvas.Text(-length/2, -offset-FontSize, label, attrs...)
}

func lineTick(canvas *svg.SVG, orient Orientation, offset, size float64, attrs ...string) {
	var (
		x1, y1 = offset, 0.0
		x2, y2 = offset, size
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		x1, y1 = 0, offset
		x2, y2 = -size, offset
	case orient.Vertical() && orient.Reverse():
		x1, y1 = 0, offset
		x2, y2 = size, offset
	case !orient.Vertical() && orient.Reverse():
		y2 = -y2
	default:
	}
	canvas.Line(x1, y1, x2, y2, attrs...)
}

func tickText(canvas *svg.SVG, orient Orientation, str string, offset float64) {
	var (
		base   = "hanging"
		anchor = "middle"
		x, y   = offset, FontSize * 1.2
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		base = "middle"
		anchor = "end"
		x, y = -y, x
	case orient.Vertical() && orient.Reverse():
		base = "middle"
		anchor = "start"
		x, y = y, x
	case !orient.Vertical() && orient.Reverse():
		base = "auto"
		y = -y
	default:
	}
	canvas.Text(x, y, str,
		fmt.Sprintf(`font-size="%.0f"`, FontSize),
		fmt.Sprintf(`text-anchor="%s"`, anchor),
		fmt.Sprintf(`dominant-baseline="%s"`, base),
	)
}
