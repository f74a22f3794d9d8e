package bars

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/midbel/slices"
)

// Quantile computes the p-quantile of an ascending sample by linear
// interpolation between the two closest ranks (R-7 method).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0 || math.IsNaN(p):
		return math.NaN()
	case p <= 0 || n < 2:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	var (
		i  = float64(n-1) * p
		i0 = int(math.Floor(i))
		v0 = sorted[i0]
		v1 = sorted[i0+1]
	)
	return v0 + (v1-v0)*(i-float64(i0))
}

// QuantileTable holds the ascending bucket boundaries used to classify
// values into colors.
type QuantileTable []float64

// ComputeQuantiles builds the boundary table of values. An empty sample
// gives an empty table unless boundaries are predefined.
func ComputeQuantiles(values []float64, cfg QuantileConfig) QuantileTable {
	if len(cfg.Predefined) > 0 {
		return QuantileTable(cloneSlice(cfg.Predefined))
	}
	if len(values) == 0 {
		return nil
	}
	sample := stats.Sample{Xs: cloneSlice(values)}
	sorted := sample.Sort().Xs

	var table QuantileTable
	switch b := cfg.Buckets; {
	case b > 0 && cfg.IgnoreZeros:
		aux := slices.Filter(sorted, func(v float64) bool { return v > 0 })
		table = append(table, sorted[0], 0)
		for i := 1; i <= b-1; i++ {
			table = append(table, Quantile(aux, float64(i)/float64(b-1)))
		}
	case b > 0:
		table = append(table, Quantile(sorted, 0))
		for j := 1; j <= b; j++ {
			table = append(table, Quantile(sorted, float64(j)/float64(b)))
		}
	default:
		for _, p := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
			table = append(table, Quantile(sorted, p))
		}
	}
	if cfg.Buckets == DefaultBuckets && len(table) == DefaultBuckets+1 && collapsed(table[1:]) {
		table = QuantileTable{Quantile(sorted, 0), Quantile(sorted, 0.2)}
	}
	return table
}

func collapsed(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return false
		}
	}
	return true
}

type Variant int

const (
	Default Variant = iota
	Hover
)

type Class struct {
	Bucket     int
	Color      string
	OutOfRange bool
}

// Classifier assigns colors to values from a boundary table.
type Classifier struct {
	Table  QuantileTable
	Extent [2]float64
	QuantileConfig
}

// Classify finds the color class of value. The second result is false
// when no bucket or no color matches.
func (c Classifier) Classify(value float64, variant Variant) (Class, bool) {
	var cls Class
	if math.IsNaN(value) || len(c.Table) < 2 {
		return cls, false
	}
	if c.outOfRange(value) {
		cls.OutOfRange = true
		cls.Color = c.OutOfRangeColor
		cls.Bucket = -1
		return cls, cls.Color != ""
	}
	palette := c.Colors
	if variant == Hover {
		palette = c.ColorsOnHover
	}
	if len(palette) == 0 {
		return cls, false
	}
	if len(c.Table) == 2 {
		if value <= c.Table[1] {
			cls.Color = palette[0]
			return cls, true
		}
		return cls, false
	}
	for i := 1; i < len(c.Table); i++ {
		if value > c.Table[i] {
			continue
		}
		if i-1 >= len(palette) {
			return cls, false
		}
		cls.Bucket = i - 1
		cls.Color = palette[i-1]
		return cls, true
	}
	return cls, false
}

func (c Classifier) outOfRange(value float64) bool {
	if len(c.Table) <= 2 {
		return false
	}
	lo, hi := c.Extent[0], c.Extent[1]
	if c.Min != nil && c.Max != nil {
		lo, hi = *c.Min, *c.Max
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return false
	}
	return value < lo || value > hi
}
