package model

import (
	"math"
	"strconv"
	"strings"

	"engagesphere/internal/domain"
)

// ParsePriceMinor converts a display price string into integer minor currency
// units: "$24.99" -> 2499, "$1,299.00" -> 129900. Anything that does not
// reduce to a positive number is rejected.
func ParsePriceMinor(display string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, display)
	if cleaned == "" {
		return 0, domain.ErrInvalidPrice
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, domain.ErrInvalidPrice
	}
	if f <= 0 {
		return 0, domain.ErrInvalidPrice
	}
	return int64(math.Round(f * 100)), nil
}
