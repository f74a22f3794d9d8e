package dash

import (
	"github.com/midbel/bars"
)

// Domain describes one axis of a chart file.
type Domain struct {
	Label   string  `toml:"label" yaml:"label"`
	Scale   string  `toml:"scale" yaml:"scale"`
	MinZero bool    `toml:"min_zero" yaml:"min_zero"`
	Domains []any   `toml:"domains" yaml:"domains"`
	Padding float64 `toml:"padding" yaml:"padding"`
	Hide    bool    `toml:"hide" yaml:"hide"`
}

func (d Domain) axisConfig(option string) (bars.AxisConfig, error) {
	cfg := bars.AxisConfig{
		Scale:   bars.ScaleType(d.Scale),
		MinZero: d.MinZero,
		Domains: d.Domains,
		Padding: d.Padding,
	}
	switch cfg.Scale {
	case bars.ScaleAuto, bars.ScaleLinear, bars.ScaleBand, bars.ScaleLog:
	default:
		return cfg, bars.ConfigError{Option: option + ".scale", Reason: "unknown scale type " + d.Scale}
	}
	if d.Padding < 0 || d.Padding >= 1 {
		return cfg, bars.ConfigError{Option: option + ".padding", Reason: "must be in [0, 1)"}
	}
	return cfg, nil
}

type QuantileSpec struct {
	Buckets         int       `toml:"buckets" yaml:"buckets"`
	IgnoreZeros     bool      `toml:"ignore_zeros" yaml:"ignore_zeros"`
	Predefined      []float64 `toml:"predefined" yaml:"predefined"`
	Colors          []string  `toml:"colors" yaml:"colors"`
	ColorsOnHover   []string  `toml:"colors_on_hover" yaml:"colors_on_hover"`
	OutOfRangeColor string    `toml:"out_of_range_color" yaml:"out_of_range_color"`
	Min             *float64  `toml:"min" yaml:"min"`
	Max             *float64  `toml:"max" yaml:"max"`
}

func (q QuantileSpec) quantileConfig() bars.QuantileConfig {
	return bars.QuantileConfig{
		Buckets:         q.Buckets,
		IgnoreZeros:     q.IgnoreZeros,
		Predefined:      q.Predefined,
		Colors:          q.Colors,
		ColorsOnHover:   q.ColorsOnHover,
		OutOfRangeColor: q.OutOfRangeColor,
		Min:             q.Min,
		Max:             q.Max,
	}
}
