package bars

import (
	"fmt"
	"strings"
)

type Style struct {
	Bar struct {
		Opacity     float64
		Stroke      string
		StrokeWidth float64
	}
	Text struct {
		Size     float64
		Color    string
		Families []string
	}
	Popup struct {
		Fill   string
		Stroke string
	}
}

func DefaultStyle() Style {
	var s Style
	s.Bar.Opacity = barOpacity
	s.Text.Size = FontSize
	s.Text.Color = "#333"
	s.Text.Families = []string{"sans-serif"}
	s.Popup.Fill = "white"
	s.Popup.Stroke = "#333"
	return s
}

func (s Style) css() string {
	var str strings.Builder
	str.WriteString("\n    rect.bar { cursor: pointer; }")
	fmt.Fprintf(&str, "\n    text { font-family: %s; }", strings.Join(s.Text.Families, ", "))
	fmt.Fprintf(&str, "\n    .%s, .%s { font-size: %.0fpx; fill: %s; text-anchor: middle; pointer-events: none; }", ClassLabel, ClassCoefficient, s.Text.Size, s.Text.Color)
	fmt.Fprintf(&str, "\n    .%s { font-size: %.0fpx; }", ClassCoefficient, s.Text.Size*0.9)
	str.WriteString(popupCSS)
	return str.String()
}

func (s Style) barAttrs() []string {
	var attrs []string
	if s.Bar.Opacity > 0 {
		attrs = append(attrs, fmt.Sprintf(`opacity="%.2f"`, s.Bar.Opacity))
	}
	if s.Bar.Stroke != "" {
		attrs = append(attrs, attr("stroke", s.Bar.Stroke))
		attrs = append(attrs, fmt.Sprintf(`stroke-width="%.1f"`, s.Bar.StrokeWidth))
	}
	return attrs
}
