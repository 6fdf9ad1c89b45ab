// Package normalize turns the human-formatted figures scraped off the launch
// site ("$12.3K", "45.2%", CSS width values) into numbers. Parsing never
// fails: absent or unparseable input yields 0.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

// ParseCurrency parses a formatted currency string such as "$12.3K" or
// "$1.2M". A single trailing K or M scales the value by 1e3/1e6; anything
// with more than one suffix letter, or a suffix that is not trailing, is
// unsupported input and yields 0.
func ParseCurrency(s *string) float64 {
	if s == nil {
		return 0
	}
	raw := strings.TrimSpace(*s)
	if raw == "" {
		return 0
	}

	multiplier := 1.0
	switch strings.Count(raw, "K") + strings.Count(raw, "M") {
	case 0:
	case 1:
		switch {
		case strings.HasSuffix(raw, "K"):
			multiplier = 1e3
		case strings.HasSuffix(raw, "M"):
			multiplier = 1e6
		default:
			return 0
		}
	default:
		// Combined forms like "1.2MK" are undefined upstream; do not guess.
		return 0
	}

	v, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(raw, ""), 64)
	if err != nil {
		return 0
	}
	return v * multiplier
}

// ParsePercent parses a percent-decorated string such as "45.2%", "+12%" or
// the "72%" read from an inline style width. Decorations are stripped,
// malformed input yields 0.
func ParsePercent(s *string) float64 {
	if s == nil {
		return 0
	}
	v, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(*s, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// ClampPercent clamps v to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
