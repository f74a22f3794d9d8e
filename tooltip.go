package bars

import (
	"html"
	"strings"
)

func (p *painter) plainTip(d Datum) string {
	var str strings.Builder
	for _, sc := range []struct {
		col   string
		scale Scaler
	}{
		{col: p.cfg.X, scale: p.scales.X},
		{col: p.cfg.Y, scale: p.scales.Y},
	} {
		v, ok := d.Record[sc.col]
		if !ok || v == nil || v == "" {
			continue
		}
		text := toText(v)
		if f, ok := toFloat(v); ok && !isBanded(sc.scale) {
			text = p.cfg.Format(f, 1)
		}
		str.WriteString("<span>")
		str.WriteString(html.EscapeString(text))
		str.WriteString("</span></br>")
	}
	return str.String()
}

func (p *painter) groupTip(d Datum) string {
	var str strings.Builder
	str.WriteString(html.EscapeString(d.Key))
	str.WriteString("<br>")
	if d.Axis != d.Key {
		str.WriteString(html.EscapeString(d.Axis))
		str.WriteString("<br>")
	}
	str.WriteString(p.cfg.Format(d.Value, 1))
	return str.String()
}

func (p *painter) stackTip(d Datum) string {
	var str strings.Builder
	str.WriteString(html.EscapeString(d.Key))
	str.WriteString("<br>")
	str.WriteString(html.EscapeString(d.Axis))
	str.WriteString("<br>")
	str.WriteString(p.cfg.Format(d.Value, 1))
	return str.String()
}

// Tooltip is the floating box showing the content of the hovered mark.
type Tooltip interface {
	Show(content string, m Mark)
	Hide()
}

// Popup keeps the state of a tooltip in memory.
type Popup struct {
	Content string
	Mark    string
	visible bool
}

func (p *Popup) Show(content string, m Mark) {
	p.Content = content
	p.Mark = m.ID
	p.visible = true
}

func (p *Popup) Hide() {
	p.visible = false
}

func (p *Popup) Visible() bool {
	return p.visible
}
