//go:build !integration

package model

import (
	"errors"
	"testing"

	"engagesphere/internal/domain"
)

func TestParsePriceMinor(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"$24.99", 2499},
		{"$1,299.00", 129900},
		{"24.99", 2499},
		{"₹499", 49900},
		{"$0.05", 5},
		{"USD 10", 1000},
	}
	for _, c := range cases {
		got, err := ParsePriceMinor(c.in)
		if err != nil {
			t.Errorf("ParsePriceMinor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePriceMinor(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParsePriceMinorRejects(t *testing.T) {
	for _, in := range []string{"", "free", "$0", "$0.00", "-5", "$-12.50", "1.2.3"} {
		if _, err := ParsePriceMinor(in); !errors.Is(err, domain.ErrInvalidPrice) {
			t.Errorf("ParsePriceMinor(%q) err = %v, want ErrInvalidPrice", in, err)
		}
	}
}
