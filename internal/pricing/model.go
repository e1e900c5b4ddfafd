// Package pricing turns a comp median into a listed price via grade and
// scarcity multipliers plus psychological rounding.
package pricing

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/slabworks/comps-cli/internal/model"
)

var (
	one      = decimal.NewFromInt(1)
	cent     = decimal.RequireFromString("0.01")
	floor99  = decimal.RequireFromString("0.99")
	gradeTen = decimal.RequireFromString("1.15")
	gradeEig = decimal.RequireFromString("0.75")
	gradeOth = decimal.RequireFromString("0.90")

	serial10 = decimal.RequireFromString("1.30")
	serial25 = decimal.RequireFromString("1.18")
	serial50 = decimal.RequireFromString("1.10")
	serial99 = decimal.RequireFromString("1.05")
)

// GradeMultiplier maps a grade value to its price multiplier. Ungraded
// cards and grade 9 carry no adjustment.
func GradeMultiplier(grade string) decimal.Decimal {
	switch grade {
	case "":
		return one
	case "10":
		return gradeTen
	case "9":
		return one
	case "8":
		return gradeEig
	default:
		return gradeOth
	}
}

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// SerialMultiplier maps a print-run denominator to a scarcity multiplier.
// Smaller runs command a premium; missing, unparsable, or large runs get
// no adjustment.
func SerialMultiplier(serial string) decimal.Decimal {
	digits := nonDigitRe.ReplaceAllString(serial, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return one
	}
	switch {
	case n <= 10:
		return serial10
	case n <= 25:
		return serial25
	case n <= 50:
		return serial50
	case n <= 99:
		return serial99
	default:
		return one
	}
}

// PsychPrice rounds to a ".99" price point: values at or below one unit
// become 0.99, everything else rounds to the nearest whole unit minus one
// cent, floored at 0.99.
func PsychPrice(x decimal.Decimal) decimal.Decimal {
	if x.LessThanOrEqual(one) {
		return floor99
	}
	p := x.RoundBank(0).Sub(cent)
	if p.LessThan(floor99) {
		return floor99
	}
	return p
}

// Suggest applies the grade and serial multipliers to a comp median and
// psych-rounds the result once.
func Suggest(median decimal.Decimal, c model.Card) decimal.Decimal {
	adjusted := median.Mul(GradeMultiplier(c.Grade)).Mul(SerialMultiplier(c.Serial))
	return PsychPrice(adjusted)
}
