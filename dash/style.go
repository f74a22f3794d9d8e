package dash

import (
	"github.com/midbel/bars"
)

type Style struct {
	Opacity     float64  `toml:"opacity" yaml:"opacity"`
	Stroke      string   `toml:"stroke" yaml:"stroke"`
	StrokeWidth float64  `toml:"stroke_width" yaml:"stroke_width"`
	FontSize    float64  `toml:"font_size" yaml:"font_size"`
	FontColor   string   `toml:"font_color" yaml:"font_color"`
	Fonts       []string `toml:"fonts" yaml:"fonts"`
	PopupFill   string   `toml:"popup_fill" yaml:"popup_fill"`
	PopupStroke string   `toml:"popup_stroke" yaml:"popup_stroke"`
}

// merge overrides the values of g set in s.
func (s Style) merge(g bars.Style) bars.Style {
	if s.Opacity > 0 {
		g.Bar.Opacity = s.Opacity
	}
	if s.Stroke != "" {
		g.Bar.Stroke = s.Stroke
		g.Bar.StrokeWidth = s.StrokeWidth
		if g.Bar.StrokeWidth <= 0 {
			g.Bar.StrokeWidth = 1
		}
	}
	if s.FontSize > 0 {
		g.Text.Size = s.FontSize
	}
	if s.FontColor != "" {
		g.Text.Color = s.FontColor
	}
	if len(s.Fonts) > 0 {
		g.Text.Families = append([]string{}, s.Fonts...)
	}
	if s.PopupFill != "" {
		g.Popup.Fill = s.PopupFill
	}
	if s.PopupStroke != "" {
		g.Popup.Stroke = s.PopupStroke
	}
	return g
}
