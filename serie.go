package bars

// Layer is the interval one stack key occupies for one record.
type Layer struct {
	Key    string
	Index  int
	Lower  float64
	Upper  float64
	Record Record
}

func (y Layer) Value() float64 {
	return y.Upper - y.Lower
}

// Series groups the layers of one stack key, in record order.
type Series struct {
	Key    string
	Index  int
	Layers []Layer
}

// Stack computes for every key the cumulative interval of each record:
// the lower bound is the sum of the values of the preceding keys and the
// upper bound adds the value of the key itself. Missing or non numeric
// values count as zero.
func Stack(records []Record, keys []string) []Series {
	var (
		series = make([]Series, len(keys))
		totals = make([]float64, len(records))
	)
	for i, k := range keys {
		s := Series{
			Key:    k,
			Index:  i,
			Layers: make([]Layer, len(records)),
		}
		for j, r := range records {
			v, _ := r.Number(k)
			s.Layers[j] = Layer{
				Key:    k,
				Index:  j,
				Lower:  totals[j],
				Upper:  totals[j] + v,
				Record: r,
			}
			totals[j] += v
		}
		series[i] = s
	}
	return series
}

func stackBounds(series []Series) []float64 {
	var values []float64
	for _, s := range series {
		for _, y := range s.Layers {
			values = append(values, y.Lower, y.Upper)
		}
	}
	return values
}
