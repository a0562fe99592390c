package pricing

// Triple is one pricing entry. At most one field drives a given edit; the
// setters recompute the dependent fields so the three stay consistent no
// matter which field was edited last.
type Triple struct {
	Original float64
	Discount float64
	Selling  float64
}

// NewTriple returns a consistent triple for the given original price and
// discount percent.
func NewTriple(original, discount float64) Triple {
	t := Triple{Original: original, Discount: clampDiscount(discount)}
	t.Selling = SellingPrice(t.Original, t.Discount)
	return t
}

// SetOriginal applies an edit of the original price. The discount is held
// fixed and the selling price is recomputed.
func (t *Triple) SetOriginal(original float64) {
	t.Original = original
	t.Selling = SellingPrice(t.Original, t.Discount)
}

// SetDiscount applies an edit of the discount percent. Out-of-range values
// are rejected rather than clamped: direct discount edits go through the
// validation layer.
func (t *Triple) SetDiscount(discount float64) error {
	if discount < 0 || discount >= 100 {
		return ErrDiscountOutOfRange
	}
	t.Discount = discount
	t.Selling = SellingPrice(t.Original, t.Discount)
	return nil
}

// SetSelling applies an edit of the selling price. The discount is
// recomputed from the current original price. A selling price above the
// original would imply a negative discount, and one at or below zero a
// discount of 100 or more; either edit is corrected instead of rejected:
// discount resets to 0 and selling snaps back to the original.
func (t *Triple) SetSelling(selling float64) {
	if selling > t.Original || selling <= 0 {
		t.Discount = 0
		t.Selling = round2(t.Original)
		return
	}
	t.Selling = selling
	t.Discount = DiscountPercent(t.Original, selling)
}
