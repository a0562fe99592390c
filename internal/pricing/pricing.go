// Package pricing keeps original price, discount percent, and selling price
// mutually consistent across product and coupon forms. All derivations are
// pure and safe to call on every keystroke.
package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrDiscountOutOfRange is returned when a directly entered discount is
// negative or 100 or more.
var ErrDiscountOutOfRange = errors.New("discount percent must be in [0, 100)")

// SellingPrice derives the selling price from an original price and a
// discount percent. The discount is clamped into [0, 100] before applying
// and the result is rounded to 2 decimal places.
func SellingPrice(original, discount float64) float64 {
	d := clampDiscount(discount)
	return round2(original - original*d/100)
}

// DiscountPercent derives the discount percent implied by an original and a
// selling price, rounded to 2 decimal places. Returns 0 when either price is
// non-positive or selling is at or above original: a negative discount is
// not representable, and a free or negative selling price would imply a
// discount of 100 or more.
func DiscountPercent(original, selling float64) float64 {
	if original <= 0 || selling <= 0 || selling >= original {
		return 0
	}
	return round2((original - selling) / original * 100)
}

// SellingPriceField is the form-input variant of SellingPrice: both inputs
// arrive as strings and a blank result means "leave the field empty".
func SellingPriceField(original, discount string) string {
	p, ok := parseField(original)
	if !ok {
		return ""
	}
	d, ok := parseField(discount)
	if !ok {
		d = 0
	}
	return formatField(SellingPrice(p, d))
}

// DiscountPercentField is the form-input variant of DiscountPercent.
func DiscountPercentField(original, selling string) string {
	p, ok := parseField(original)
	if !ok {
		return ""
	}
	s, ok := parseField(selling)
	if !ok {
		return ""
	}
	return formatField(DiscountPercent(p, s))
}

func clampDiscount(d float64) float64 {
	return math.Min(100, math.Max(0, d))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseField(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
