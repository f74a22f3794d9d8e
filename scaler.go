package bars

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/midbel/slices"
)

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

func (r Range) ordered() (float64, float64, bool) {
	if r.T < r.F {
		return r.T, r.F, true
	}
	return r.F, r.T, false
}

// Scaler maps a domain value to a position in its output range.
type Scaler interface {
	Scale(any) float64
	Min() float64
	Max() float64
}

// Banded is implemented by scalers that split their range into discrete
// bands.
type Banded interface {
	Scaler
	Bandwidth() float64
	Values() []string
}

// Continuous is implemented by scalers over a numeric domain.
type Continuous interface {
	Scaler
	Domain() (float64, float64)
	Ticks(int) []float64
}

func bandwidth(s Scaler) (float64, bool) {
	b, ok := s.(Banded)
	if !ok {
		return 0, false
	}
	return b.Bandwidth(), true
}

func isBanded(s Scaler) bool {
	_, ok := s.(Banded)
	return ok
}

type linearScaler struct {
	Range
	lin scale.Linear
}

func LinearScaler(min, max float64, rg Range) Scaler {
	return linearScaler{
		Range: rg,
		lin:   scale.Linear{Min: min, Max: max},
	}
}

func (s linearScaler) Scale(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return math.NaN()
	}
	return s.F + s.lin.Map(f)*s.Len()
}

func (s linearScaler) Domain() (float64, float64) {
	return s.lin.Min, s.lin.Max
}

func (s linearScaler) Ticks(n int) []float64 {
	major, _ := s.lin.Ticks(scale.TickOptions{Max: n})
	return major
}

type logScaler struct {
	Range
	lg scale.Log
}

func LogScaler(min, max float64, rg Range) (Scaler, error) {
	lg, err := scale.NewLog(min, max, 10)
	if err != nil {
		return nil, err
	}
	return logScaler{
		Range: rg,
		lg:    lg,
	}, nil
}

func (s logScaler) Scale(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return math.NaN()
	}
	return s.F + s.lg.Map(f)*s.Len()
}

func (s logScaler) Domain() (float64, float64) {
	return s.lg.Min, s.lg.Max
}

func (s logScaler) Ticks(n int) []float64 {
	major, _ := s.lg.Ticks(scale.TickOptions{Max: n})
	return major
}

type bandScaler struct {
	Range
	Strings []string
	Padding float64

	index map[string]int
}

// BandScaler splits rg in one band per value, with padding expressed as a
// fraction of the step between two bands.
func BandScaler(values []string, padding float64, rg Range) Scaler {
	s := bandScaler{
		Range:   rg,
		Padding: padding,
		index:   make(map[string]int),
	}
	for _, v := range values {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.Strings)
		s.Strings = append(s.Strings, v)
	}
	return s
}

func (s bandScaler) Scale(v any) float64 {
	i, ok := s.index[toText(v)]
	if !ok {
		return s.F
	}
	start, step := s.layout()
	if _, _, reverse := s.ordered(); reverse {
		i = len(s.Strings) - 1 - i
	}
	return start + step*float64(i)
}

func (s bandScaler) Bandwidth() float64 {
	_, step := s.layout()
	return step * (1 - s.Padding)
}

func (s bandScaler) Space() float64 {
	_, step := s.layout()
	return step
}

func (s bandScaler) Values() []string {
	return s.Strings
}

func (s bandScaler) layout() (float64, float64) {
	var (
		lo, hi, _ = s.ordered()
		n         = float64(len(s.Strings))
		step      = (hi - lo) / math.Max(1, n+s.Padding)
		start     = lo + (hi-lo-step*(n-s.Padding))*0.5
	)
	return start, step
}

type Role int

const (
	RoleNone Role = iota
	RoleGroupParent
	RoleGroupChildren
	RoleGroupData
	RoleStackParent
	RoleStackData
)

// ScaleConfig is the request sent to a ScaleFactory for one scale.
type ScaleConfig struct {
	Columns []string
	Type    ScaleType
	Role    Role
	Range   Range
	MinZero bool
	Domains []any
	Padding float64
}

type ScaleFactory interface {
	Generate(Dataset, ScaleConfig) (Scaler, error)
}

type ScaleFactoryFunc func(Dataset, ScaleConfig) (Scaler, error)

func (f ScaleFactoryFunc) Generate(ds Dataset, cfg ScaleConfig) (Scaler, error) {
	return f(ds, cfg)
}

var DefaultFactory ScaleFactory = ScaleFactoryFunc(GenerateScale)

// GenerateScale builds a band, linear or log scale for the columns of cfg.
// Without a type, children scales are banded, data scales are linear and
// the others are linear only when every value is numeric.
func GenerateScale(ds Dataset, cfg ScaleConfig) (Scaler, error) {
	typ := cfg.Type
	if typ == ScaleAuto {
		typ = guessType(ds, cfg)
	}
	switch typ {
	case ScaleBand:
		pad := cfg.Padding
		if pad == 0 {
			pad = DefaultBandPadding
		}
		return BandScaler(categories(ds, cfg), pad, cfg.Range), nil
	case ScaleLinear:
		lo, hi := extent(ds, cfg)
		return LinearScaler(lo, hi, cfg.Range), nil
	case ScaleLog:
		lo, hi := extent(ds, cfg)
		s, err := LogScaler(lo, hi, cfg.Range)
		if err != nil {
			return nil, fmt.Errorf("log scale: %w", err)
		}
		return s, nil
	default:
		return nil, ConfigError{Option: "scale", Reason: "unknown scale type " + string(typ)}
	}
}

func guessType(ds Dataset, cfg ScaleConfig) ScaleType {
	switch cfg.Role {
	case RoleGroupChildren:
		return ScaleBand
	case RoleGroupData, RoleStackData:
		return ScaleLinear
	}
	values := cfg.Domains
	if len(values) == 0 {
		for _, r := range ds.Records {
			for _, c := range cfg.Columns {
				values = append(values, r[c])
			}
		}
	}
	if len(values) == 0 {
		return ScaleLinear
	}
	if !slices.Every(values, isNumeric) {
		return ScaleBand
	}
	return ScaleLinear
}

func categories(ds Dataset, cfg ScaleConfig) []string {
	var list []string
	switch {
	case len(cfg.Domains) > 0:
		for _, v := range cfg.Domains {
			list = append(list, toText(v))
		}
	case cfg.Role == RoleGroupChildren:
		list = append(list, cfg.Columns...)
	default:
		for _, r := range ds.Records {
			for _, c := range cfg.Columns {
				list = append(list, r.Text(c))
			}
		}
	}
	return list
}

func extent(ds Dataset, cfg ScaleConfig) (float64, float64) {
	var values []float64
	if len(cfg.Domains) > 0 {
		for _, v := range cfg.Domains {
			if f, ok := toFloat(v); ok {
				values = append(values, f)
			}
		}
		if len(values) > 0 {
			lo, hi := slices.Fst(values), slices.Lst(values)
			if cfg.MinZero {
				lo = 0
			}
			return lo, hi
		}
	}
	if cfg.Role == RoleStackData {
		values = stackBounds(ds.Series)
	} else {
		for _, r := range ds.Records {
			for _, c := range cfg.Columns {
				if f, ok := r.Number(c); ok {
					values = append(values, f)
				}
			}
		}
	}
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := stats.Bounds(values)
	if cfg.MinZero {
		lo = 0
	}
	return lo, hi
}
