package dash

import (
	"errors"
	"fmt"

	"github.com/midbel/bars"
)

var ErrColumn = errors.New("column not found")

// Selector extracts the numbers of a record used as input of a
// computation.
type Selector interface {
	Select(bars.Record) ([]float64, error)
}

type combined struct {
	selectors []Selector
}

func Combined(xs ...Selector) Selector {
	return combined{
		selectors: xs,
	}
}

func (c combined) Select(r bars.Record) ([]float64, error) {
	var list []float64
	for _, s := range c.selectors {
		fs, err := s.Select(r)
		if err != nil {
			return nil, err
		}
		list = append(list, fs...)
	}
	return list, nil
}

type summer struct {
	columns []string
}

// SelectSum gives the sum of the numeric values of columns. Missing or
// non numeric values count as zero, as in a stack.
func SelectSum(columns ...string) Selector {
	return summer{
		columns: columns,
	}
}

func (s summer) Select(r bars.Record) ([]float64, error) {
	var sum float64
	for _, c := range s.columns {
		if !r.Has(c) {
			return nil, fmt.Errorf("%s: %w", c, ErrColumn)
		}
		f, _ := r.Number(c)
		sum += f
	}
	return []float64{sum}, nil
}

type multi struct {
	columns []string
}

func SelectSingle(column string) Selector {
	return SelectMulti(column)
}

// SelectMulti gives the numeric values of columns. Non numeric values are
// skipped.
func SelectMulti(columns ...string) Selector {
	return multi{
		columns: columns,
	}
}

func (m multi) Select(r bars.Record) ([]float64, error) {
	list := make([]float64, 0, len(m.columns))
	for _, c := range m.columns {
		if !r.Has(c) {
			return nil, fmt.Errorf("%s: %w", c, ErrColumn)
		}
		if f, ok := r.Number(c); ok {
			list = append(list, f)
		}
	}
	return list, nil
}

// Values applies sel to every record.
func Values(records []bars.Record, sel Selector) ([]float64, error) {
	var list []float64
	for _, r := range records {
		fs, err := sel.Select(r)
		if err != nil {
			return nil, err
		}
		list = append(list, fs...)
	}
	return list, nil
}
