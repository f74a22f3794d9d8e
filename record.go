package bars

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one row of tabular input keyed by column name. Values are
// either strings or numbers.
type Record map[string]any

func (r Record) Number(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func (r Record) Text(col string) string {
	return toText(r[col])
}

func (r Record) Has(col string) bool {
	_, ok := r[col]
	return ok
}

func (r Record) Copy() Record {
	x := make(Record, len(r))
	for k, v := range r {
		x[k] = v
	}
	return x
}

// coerce turns numeric-like values into float64 and leaves the others
// untouched.
func coerce(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(str, 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

func toText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		if f, ok := toFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprint(v)
	}
}

func isNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}
