package bars

import (
	"fmt"
	"math"
)

// thresholds and offsets of the value labels, in pixels.
const (
	shortBar = 50.0

	plainAbove      = 30.0
	plainInside     = 20.0
	plainCoefAbove  = 10.0
	plainCoefInside = 40.0
	plainAside      = 30.0

	groupLabelX    = 30.0
	groupLabelY    = 20.0
	groupCoefY     = 40.0
	groupAsideX    = 46.0
	groupAsideY    = 15.0
	groupAsideCoef = 30.0

	stackLabelX     = 50.0
	stackLabelY     = 20.0
	stackCoefY      = 40.0
	stackInsideX    = 60.0
	stackInsideY    = 30.0
	stackInsideCoef = 50.0
)

const idPrefix = "bars-"

type painter struct {
	cfg    Config
	data   Dataset
	scales Scales
	tip    func(Datum) string
	quant  *Classifier
	scene  Scene
}

// Paint computes the marks and labels of a chart from its prepared data
// and scales.
func Paint(cfg Config, ds Dataset, sc Scales) Scene {
	p := painter{
		cfg:    cfg,
		data:   ds,
		scales: sc,
		tip:    cfg.Tip,
	}
	p.scene.Mode = cfg.Mode()
	if cfg.Format == nil {
		p.cfg.Format = func(f float64, prec int) string {
			return fmt.Sprintf("%.*f", prec, f)
		}
	}
	if cfg.Quantiles != nil {
		p.quant = &Classifier{
			Table:          ds.Quantiles,
			Extent:         ds.Extent,
			QuantileConfig: *cfg.Quantiles,
		}
	}
	if sc.Color == nil {
		p.scales.Color = selectColors(cfg)
	}
	if sc.X == nil || sc.Y == nil {
		return p.scene
	}
	switch cfg.Mode() {
	case ModePlain:
		if p.tip == nil {
			p.tip = p.plainTip
		}
		p.paintPlain()
	case ModeGroupByX, ModeGroupByY:
		if p.tip == nil {
			p.tip = p.groupTip
		}
		p.paintGroups()
	case ModeStackByX, ModeStackByY:
		if p.tip == nil {
			p.tip = p.stackTip
		}
		p.paintStacks()
	}
	return p.scene
}

func (p *painter) add(m Mark) {
	m.Index = len(p.scene.Marks)
	m.Class = ClassBar
	m.Rect = m.Rect.sanitize()
	m.Tip = p.tip(m.Datum)
	p.scene.Marks = append(p.scene.Marks, m)
}

func (p *painter) label(class string, pos, shift Point, text string) {
	if p.cfg.HideLabels || text == "" {
		return
	}
	p.scene.Labels = append(p.scene.Labels, Label{
		Class: class,
		Pos:   Point{X: finite(pos.X), Y: finite(pos.Y)},
		Shift: Point{X: finite(shift.X), Y: finite(shift.Y)},
		Text:  text,
	})
}

func (p *painter) coefficient(r Record, col string, pos, shift Point) {
	v, ok := r.Number(col)
	if !ok {
		return
	}
	p.label(ClassCoefficient, pos, shift, fmt.Sprintf("(%.1f)", v))
}

func (p *painter) markID(i int, r Record, suffix string) string {
	id := fmt.Sprintf("%s%d", idPrefix, i)
	if p.cfg.ID != "" && r.Has(p.cfg.ID) {
		id = idPrefix + r.Text(p.cfg.ID)
	}
	if suffix != "" {
		id += "-" + suffix
	}
	return id
}

func (p *painter) fills(r Record, key string) (string, string) {
	if p.quant == nil {
		return p.scales.Color.Color(key), ""
	}
	v, ok := r.Number(p.cfg.Fill)
	if !ok {
		return NoDataColor, ""
	}
	fill := NoDataColor
	if cls, ok := p.quant.Classify(v, Default); ok {
		fill = cls.Color
	}
	var hover string
	if len(p.cfg.Quantiles.ColorsOnHover) > 0 {
		if cls, ok := p.quant.Classify(v, Hover); ok {
			hover = cls.Color
		}
	}
	return fill, hover
}

func (p *painter) paintPlain() {
	var (
		sx = p.scales.X
		sy = p.scales.Y
	)
	for i, r := range p.data.Records {
		var (
			xv       = r[p.cfg.X]
			yv       = r[p.cfg.Y]
			xf, xnum = toFloat(xv)
			yf, ynum = toFloat(yv)
			rect     Rect
		)
		rect.X = sx.Scale(xv)
		if !isBanded(sx) && xnum && xf > 0 {
			rect.X = sx.Scale(0)
		}
		rect.Y = sy.Scale(yv)
		if !isBanded(sy) && ynum && yf < 0 {
			rect.Y = sy.Scale(0)
		}
		rect.Width = extentOf(sx, xv)
		rect.Height = extentOf(sy, yv)

		fill, hover := p.fills(r, r.Text(p.cfg.Fill))
		d := Datum{
			Record: r,
			Axis:   toText(xv),
			Value:  yf,
		}
		if !ynum {
			d.Axis, d.Value = toText(yv), xf
		}
		p.add(Mark{
			ID:        p.markID(i, r, ""),
			Rect:      rect,
			Fill:      fill,
			HoverFill: hover,
			Datum:     d,
		})
		p.plainLabels(r, rect)
	}
}

func (p *painter) plainLabels(r Record, rect Rect) {
	var (
		sx       = p.scales.X
		sy       = p.scales.Y
		xv       = r[p.cfg.X]
		yv       = r[p.cfg.Y]
		xf, xnum = toFloat(xv)
		yf, ynum = toFloat(yv)
		height   = extentOf(sy, yv)
		base     = sy.Scale(yv)
		shift    = Point{X: rect.Width / 2}
		text     string
	)
	if !isBanded(sy) && ynum && yf < 0 {
		base = sy.Scale(0)
	}
	x := sx.Scale(xv)
	if !isBanded(sx) && xnum && xf > 0 {
		x = sx.Scale(0)
	}
	switch {
	case ynum:
		text = p.cfg.Format(yf, 1)
	case xnum:
		shift.X = rect.Width + plainAside
		text = p.cfg.Format(xf, 1)
	default:
		shift.X = rect.Width + plainAside
		text = toText(xv)
	}
	value, coef := base+plainInside, base+plainCoefInside
	if height < shortBar {
		value, coef = base-plainAbove, base-plainCoefAbove
	}
	p.label(ClassLabel, Point{X: x, Y: value}, shift, text)
	p.coefficient(r, p.cfg.Coefficient, Point{X: x, Y: coef}, shift)
}

func (p *painter) paintGroups() {
	var (
		sx   = p.scales.X
		sy   = p.scales.Y
		sg   = p.scales.Group
		bw   float64
		horz = p.cfg.Mode() == ModeGroupByY
	)
	if sg == nil {
		return
	}
	bw, _ = bandwidth(sg)
	for i, r := range p.data.Records {
		axis := r[p.cfg.X]
		if horz {
			axis = r[p.cfg.Y]
		}
		for j, key := range p.cfg.GroupBy {
			var (
				v, _ = r.Number(key)
				rect Rect
				pos  Point
				coef Point
			)
			if horz {
				rect.Y = sy.Scale(axis) + sg.Scale(key)
				rect.X = sx.Scale(0)
				if v < 0 {
					rect.X = sx.Scale(v)
				}
				rect.Width = math.Abs(sx.Scale(v) - sx.Scale(0))
				rect.Height = bw

				pos.X = sx.Scale(v) + groupAsideX
				pos.Y = sy.Scale(axis) + groupAsideY + bw*float64(j)
				coef.X = pos.X
				coef.Y = sy.Scale(axis) + groupAsideCoef + bw*float64(j)
			} else {
				rect.X = sx.Scale(axis) + sg.Scale(key)
				rect.Y = sy.Scale(0)
				if v > 0 {
					rect.Y = sy.Scale(v)
				}
				rect.Width = bw
				rect.Height = math.Abs(sy.Scale(v) - sy.Scale(0))

				pos.X = sx.Scale(axis) + groupLabelX + bw*float64(j)
				pos.Y, coef.Y = sy.Scale(v)+groupLabelY, sy.Scale(v)+groupCoefY
				if rect.Height < shortBar {
					pos.Y, coef.Y = sy.Scale(v)-groupLabelY, sy.Scale(v)
				}
				coef.X = pos.X
			}
			p.add(Mark{
				ID:   p.markID(i, r, key),
				Rect: rect,
				Fill: p.scales.Color.Color(key),
				Datum: Datum{
					Record: r,
					Key:    key,
					Axis:   toText(axis),
					Value:  v,
				},
			})
			if v != 0 {
				p.label(ClassLabel, pos, Point{}, p.cfg.Format(v, 1))
			}
			p.coefficient(r, key+p.cfg.Coefficient, coef, Point{})
		}
	}
}

func (p *painter) paintStacks() {
	var (
		sx   = p.scales.X
		sy   = p.scales.Y
		horz = p.cfg.Mode() == ModeStackByY
	)
	for _, s := range p.data.Series {
		fill := p.scales.Color.Color(s.Key)
		for _, y := range s.Layers {
			var (
				rect Rect
				pos  Point
				coef Point
				axis any
			)
			if horz {
				axis = y.Record[p.cfg.Y]
				rect.X = sx.Scale(y.Lower)
				rect.Y = sy.Scale(axis)
				rect.Width = sx.Scale(y.Upper) - sx.Scale(y.Lower)
				rect.Height, _ = bandwidth(sy)

				pos = Point{X: sx.Scale(y.Upper) - stackInsideX, Y: sy.Scale(axis) + stackInsideY}
				coef = Point{X: pos.X, Y: sy.Scale(axis) + stackInsideCoef}
			} else {
				axis = y.Record[p.cfg.X]
				rect.X = sx.Scale(axis)
				rect.Y = sy.Scale(y.Upper)
				rect.Width, _ = bandwidth(sx)
				rect.Height = sy.Scale(y.Lower) - sy.Scale(y.Upper)

				pos = Point{X: sx.Scale(axis) + stackLabelX, Y: sy.Scale(y.Upper) + stackLabelY}
				coef = Point{X: pos.X, Y: sy.Scale(y.Upper) + stackCoefY}
			}
			p.add(Mark{
				ID:   p.markID(y.Index, y.Record, s.Key),
				Rect: rect,
				Fill: fill,
				Datum: Datum{
					Record: y.Record,
					Key:    s.Key,
					Axis:   toText(axis),
					Value:  y.Value(),
					Lower:  y.Lower,
					Upper:  y.Upper,
				},
			})
			if v := y.Value(); v != 0 {
				p.label(ClassLabel, pos, Point{}, p.cfg.Format(v, 1))
			}
			p.coefficient(y.Record, s.Key+p.cfg.Coefficient, coef, Point{})
		}
	}
}

// extentOf is the size of the bar drawn for v along the axis of s.
func extentOf(s Scaler, v any) float64 {
	if bw, ok := bandwidth(s); ok {
		return bw
	}
	return math.Abs(s.Scale(v) - s.Scale(0))
}
