package bars

import (
	"golang.org/x/text/language"
)

type Mode int

const (
	ModeNone Mode = iota
	ModePlain
	ModeGroupByX
	ModeGroupByY
	ModeStackByX
	ModeStackByY
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeGroupByX:
		return "group-by-x"
	case ModeGroupByY:
		return "group-by-y"
	case ModeStackByX:
		return "stack-by-x"
	case ModeStackByY:
		return "stack-by-y"
	default:
		return "none"
	}
}

func (m Mode) Grouped() bool {
	return m == ModeGroupByX || m == ModeGroupByY
}

func (m Mode) Stacked() bool {
	return m == ModeStackByX || m == ModeStackByY
}

type ScaleType string

const (
	ScaleAuto   ScaleType = ""
	ScaleLinear ScaleType = "linear"
	ScaleBand   ScaleType = "band"
	ScaleLog    ScaleType = "log"
)

func (s ScaleType) valid() bool {
	switch s {
	case ScaleAuto, ScaleLinear, ScaleBand, ScaleLog:
		return true
	default:
		return false
	}
}

// AxisConfig describes the scale built for one axis. Padding only applies
// to band scales, zero selects DefaultBandPadding.
type AxisConfig struct {
	Scale   ScaleType
	MinZero bool
	Domains []any
	Padding float64
}

type QuantileConfig struct {
	Buckets         int
	IgnoreZeros     bool
	Predefined      []float64
	Colors          []string
	ColorsOnHover   []string
	OutOfRangeColor string
	Min             *float64
	Max             *float64
}

// Count gives the number of color classes the boundary table will define.
func (q QuantileConfig) Count() int {
	switch {
	case len(q.Predefined) > 1:
		return len(q.Predefined) - 1
	case q.Buckets > 0:
		return q.Buckets
	default:
		return DefaultBuckets
	}
}

type Handler func(Datum, int)

type Handlers struct {
	OnMouseOver Handler
	OnMouseOut  Handler
	OnClick     Handler
}

// Config is the finalized description of a chart. It is produced by a
// Builder and never modified afterwards.
type Config struct {
	X    string
	Y    string
	Fill string
	ID   string

	GroupBy []string
	StackBy []string
	SortBy  []string

	XAxis AxisConfig
	YAxis AxisConfig

	Colors     []string
	ColorScale ColorScale
	Quantiles  *QuantileConfig

	Filter func(Record) bool
	Tip    func(Datum) string
	Format Formatter
	Handlers

	Coefficient string
	HideLabels  bool

	mode Mode
}

func (c Config) Mode() Mode {
	return c.mode
}

const (
	DefaultBuckets     = 5
	DefaultCoefficient = "coefficient"
	DefaultBandPadding = 0.1
)

type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) X(col string) *Builder {
	b.cfg.X = col
	return b
}

func (b *Builder) Y(col string) *Builder {
	b.cfg.Y = col
	return b
}

func (b *Builder) Fill(col string) *Builder {
	b.cfg.Fill = col
	return b
}

func (b *Builder) ID(col string) *Builder {
	b.cfg.ID = col
	return b
}

func (b *Builder) GroupBy(cols ...string) *Builder {
	b.cfg.GroupBy = append(b.cfg.GroupBy[:0], cols...)
	return b
}

func (b *Builder) StackBy(cols ...string) *Builder {
	b.cfg.StackBy = append(b.cfg.StackBy[:0], cols...)
	return b
}

// SortBy sets the sort keys. Only the first one is used.
func (b *Builder) SortBy(cols ...string) *Builder {
	b.cfg.SortBy = append(b.cfg.SortBy[:0], cols...)
	return b
}

func (b *Builder) XAxis(axis AxisConfig) *Builder {
	b.cfg.XAxis = axis
	return b
}

func (b *Builder) YAxis(axis AxisConfig) *Builder {
	b.cfg.YAxis = axis
	return b
}

func (b *Builder) Colors(colors ...string) *Builder {
	b.cfg.Colors = append(b.cfg.Colors[:0], colors...)
	return b
}

func (b *Builder) ColorScale(scale ColorScale) *Builder {
	b.cfg.ColorScale = scale
	return b
}

func (b *Builder) Quantiles(q QuantileConfig) *Builder {
	b.cfg.Quantiles = &q
	return b
}

func (b *Builder) Filter(fn func(Record) bool) *Builder {
	b.cfg.Filter = fn
	return b
}

func (b *Builder) Tip(fn func(Datum) string) *Builder {
	b.cfg.Tip = fn
	return b
}

func (b *Builder) Format(fn Formatter) *Builder {
	b.cfg.Format = fn
	return b
}

func (b *Builder) OnMouseOver(fn Handler) *Builder {
	b.cfg.OnMouseOver = fn
	return b
}

func (b *Builder) OnMouseOut(fn Handler) *Builder {
	b.cfg.OnMouseOut = fn
	return b
}

func (b *Builder) OnClick(fn Handler) *Builder {
	b.cfg.OnClick = fn
	return b
}

func (b *Builder) Coefficient(col string) *Builder {
	b.cfg.Coefficient = col
	return b
}

func (b *Builder) HideLabels(hide bool) *Builder {
	b.cfg.HideLabels = hide
	return b
}

// Build validates the accumulated options and decides the chart mode.
func (b *Builder) Build() (Config, error) {
	cfg := b.cfg
	cfg.GroupBy = cloneSlice(cfg.GroupBy)
	cfg.StackBy = cloneSlice(cfg.StackBy)
	cfg.SortBy = cloneSlice(cfg.SortBy)
	cfg.Colors = cloneSlice(cfg.Colors)

	mode, err := selectMode(cfg)
	if err != nil {
		return cfg, err
	}
	cfg.mode = mode

	if !cfg.XAxis.Scale.valid() {
		return cfg, ConfigError{Option: "x_axis.scale", Reason: "unknown scale type " + string(cfg.XAxis.Scale)}
	}
	if !cfg.YAxis.Scale.valid() {
		return cfg, ConfigError{Option: "y_axis.scale", Reason: "unknown scale type " + string(cfg.YAxis.Scale)}
	}
	switch mode {
	case ModeGroupByX, ModeStackByX:
		if cfg.XAxis.Scale == ScaleAuto {
			cfg.XAxis.Scale = ScaleBand
		}
	case ModeGroupByY, ModeStackByY:
		if cfg.YAxis.Scale == ScaleAuto {
			cfg.YAxis.Scale = ScaleBand
		}
	}
	if cfg.Quantiles != nil {
		q, err := checkQuantiles(*cfg.Quantiles)
		if err != nil {
			return cfg, err
		}
		cfg.Quantiles = &q
	}
	if cfg.Coefficient == "" {
		cfg.Coefficient = DefaultCoefficient
	}
	if cfg.Format == nil {
		cfg.Format = LocaleFormat(language.English)
	}
	return cfg, nil
}

func selectMode(cfg Config) (Mode, error) {
	var (
		group = len(cfg.GroupBy) > 0
		stack = len(cfg.StackBy) > 0
	)
	if group && stack {
		return ModeNone, ErrConflictingModes
	}
	if (group || stack) && cfg.X != "" && cfg.Y != "" {
		return ModeNone, ErrAmbiguousAxis
	}
	switch {
	case group && cfg.X != "":
		return ModeGroupByX, nil
	case group && cfg.Y != "":
		return ModeGroupByY, nil
	case stack && cfg.X != "":
		return ModeStackByX, nil
	case stack && cfg.Y != "":
		return ModeStackByY, nil
	case !group && !stack && cfg.X != "" && cfg.Y != "":
		return ModePlain, nil
	default:
		return ModeNone, nil
	}
}

func checkQuantiles(q QuantileConfig) (QuantileConfig, error) {
	if q.Buckets < 0 {
		return q, ConfigError{Option: "quantiles.buckets", Reason: "must not be negative"}
	}
	q.Predefined = cloneSlice(q.Predefined)
	q.Colors = cloneSlice(q.Colors)
	q.ColorsOnHover = cloneSlice(q.ColorsOnHover)
	if len(q.Colors) == 0 {
		q.Colors = SequentialPalette(q.Count())
	}
	if n := q.Count(); len(q.Colors) < n {
		return q, ConfigError{Option: "quantiles.colors", Reason: "not enough colors for buckets"}
	}
	if len(q.ColorsOnHover) > 0 && len(q.ColorsOnHover) != len(q.Colors) {
		return q, ConfigError{Option: "quantiles.colors_on_hover", Reason: "must have as many colors as quantiles.colors"}
	}
	if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
		return q, ConfigError{Option: "quantiles.min", Reason: "greater than max"}
	}
	return q, nil
}

func cloneSlice[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	x := make([]T, len(list))
	copy(x, list)
	return x
}
