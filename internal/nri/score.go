package nri

import (
	"math"
	"strconv"
	"strings"
)

// PercentileToUnit converts a 0-100 national percentile to a 0-1 score,
// rounded to 6 decimal places. Out-of-range inputs are clamped first.
func PercentileToUnit(pct float64) float64 {
	clamped := math.Max(0, math.Min(100, pct))
	return math.Round(clamped/100*1e6) / 1e6
}

// Composite combines the three hazard percentiles with equal weight. The
// mean is taken on the raw 0-100 scale and only then normalized, so the
// composite stays well-defined if the unit transform ever becomes
// non-linear.
func Composite(wildfire, flood, earthquake float64) float64 {
	return PercentileToUnit((wildfire + flood + earthquake) / 3)
}

// parseFloatOr parses a percentile field, returning def when the field is
// empty or non-numeric. NRI leaves percentiles blank for unrated tracts.
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// round2 rounds a raw percentile to 2 decimal places for output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
