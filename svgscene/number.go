package svgscene

import (
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimal digits kept in emitted
// attribute values.
const DefaultPrecision = 5

// FormatNumber renders v with at most prec decimal digits, never in
// exponential notation. Trailing zeros and a trailing point are
// trimmed, so 1.0 gives "1". A value rounding to zero loses its sign.
func FormatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatPercent renders a fraction in [0, 1] as a percentage
// ("0%", "37.5%", "100%").
func FormatPercent(frac float64, prec int) string {
	return FormatNumber(frac*100, prec) + "%"
}
