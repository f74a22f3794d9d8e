package bars

import (
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// Dataset is the result of preparing raw records for a chart.
type Dataset struct {
	Records   []Record
	Series    []Series
	Quantiles QuantileTable
	Extent    [2]float64
}

func (d Dataset) Len() int {
	return len(d.Records)
}

// Prepare filters, sorts and coerces records according to cfg. In stacked
// modes it also computes the stack series. The input records are left
// untouched.
func Prepare(records []Record, cfg Config) Dataset {
	var ds Dataset
	for _, r := range records {
		if cfg.Filter != nil && !cfg.Filter(r) {
			continue
		}
		ds.Records = append(ds.Records, r.Copy())
	}
	if len(cfg.SortBy) > 0 && cfg.SortBy[0] != "" {
		sortRecords(ds.Records, cfg.SortBy[0])
	}
	if cfg.Quantiles != nil {
		values := fillValues(ds.Records, cfg.Fill)
		ds.Quantiles = ComputeQuantiles(values, *cfg.Quantiles)
		ds.Extent[0], ds.Extent[1] = math.NaN(), math.NaN()
		if len(values) > 0 {
			ds.Extent[0], ds.Extent[1] = stats.Bounds(values)
		}
	}
	if len(cfg.StackBy) > 0 {
		ds.Series = Stack(ds.Records, cfg.StackBy)
		return ds
	}
	for _, r := range ds.Records {
		for _, col := range []string{cfg.X, cfg.Y} {
			if v, ok := r[col]; ok && col != "" {
				r[col] = coerce(v)
			}
		}
	}
	return ds
}

func fillValues(records []Record, col string) []float64 {
	var values []float64
	for _, r := range records {
		if v, ok := r.Number(col); ok {
			values = append(values, v)
		}
	}
	return values
}

// sortRecords orders records by key, ascending. Numeric values come first,
// compared as numbers, then the other values compared as text.
func sortRecords(records []Record, key string) {
	sort.SliceStable(records, func(i, j int) bool {
		return compareValues(records[i][key], records[j][key]) < 0
	})
}

func compareValues(a, b any) int {
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if oka && okb {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case oka:
		return -1
	case okb:
		return 1
	default:
		return strings.Compare(toText(a), toText(b))
	}
}
