package bars

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders a number with at most precision fraction digits.
type Formatter func(value float64, precision int) string

// LocaleFormat formats numbers with the grouping and decimal separators
// of tag.
func LocaleFormat(tag language.Tag) Formatter {
	p := message.NewPrinter(tag)
	return func(value float64, precision int) string {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ""
		}
		if precision < 0 {
			precision = 0
		}
		return p.Sprint(number.Decimal(value, number.MaxFractionDigits(precision)))
	}
}
