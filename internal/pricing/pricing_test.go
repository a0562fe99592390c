package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestSellingPrice(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		discount float64
		want     float64
	}{
		{"twenty percent off", 1000, 20, 800},
		{"no discount", 1000, 0, 1000},
		{"full discount", 1000, 100, 0},
		{"negative discount clamps to zero", 1000, -5, 1000},
		{"over hundred clamps to hundred", 1000, 150, 0},
		{"fractional rounding", 999, 33.33, 665.97},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SellingPrice(tt.original, tt.discount)
			if got != tt.want {
				t.Errorf("SellingPrice(%v, %v) = %v, want %v", tt.original, tt.discount, got, tt.want)
			}
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		selling  float64
		want     float64
	}{
		{"fifteen percent", 1000, 850, 15},
		{"no discount representable at equal price", 1000, 1000, 0},
		{"selling above original", 1000, 1100, 0},
		{"zero original", 0, 10, 0},
		{"negative original", -5, 1, 0},
		{"zero selling", 1000, 0, 0},
		{"negative selling", 1000, -5, 0},
		{"fractional", 999, 665.97, 33.34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountPercent(tt.original, tt.selling)
			if got != tt.want {
				t.Errorf("DiscountPercent(%v, %v) = %v, want %v", tt.original, tt.selling, got, tt.want)
			}
		})
	}
}

// Deriving a discount back from a derived selling price must agree with the
// discount we started from, within rounding tolerance.
func TestDerivationRoundTrip(t *testing.T) {
	originals := []float64{100, 999, 1000, 2499.99, 123456.78}
	discounts := []float64{0, 1, 12.5, 20, 33.33, 50, 99, 99.99}
	for _, p := range originals {
		for _, d := range discounts {
			s := SellingPrice(p, d)
			got := DiscountPercent(p, s)
			if math.Abs(got-d) > 0.01+1e-9 {
				t.Errorf("round trip p=%v d=%v: selling=%v, derived discount %v", p, d, s, got)
			}
		}
	}
}

func TestSellingPriceClampEquivalence(t *testing.T) {
	if SellingPrice(750, 140) != SellingPrice(750, 100) {
		t.Error("discount above 100 should behave like exactly 100")
	}
	if SellingPrice(750, -10) != SellingPrice(750, 0) {
		t.Error("negative discount should behave like zero")
	}
}

func TestFieldVariants(t *testing.T) {
	if got := SellingPriceField("1000", "20"); got != "800.00" {
		t.Errorf("SellingPriceField = %q, want 800.00", got)
	}
	if got := SellingPriceField("", "20"); got != "" {
		t.Errorf("missing original should yield blank, got %q", got)
	}
	if got := SellingPriceField("abc", "20"); got != "" {
		t.Errorf("non-numeric original should yield blank, got %q", got)
	}
	if got := SellingPriceField("1000", ""); got != "1000.00" {
		t.Errorf("blank discount treated as zero, got %q", got)
	}
	if got := DiscountPercentField("1000", "850"); got != "15.00" {
		t.Errorf("DiscountPercentField = %q, want 15.00", got)
	}
	if got := DiscountPercentField("1000", "x"); got != "" {
		t.Errorf("non-numeric selling should yield blank, got %q", got)
	}
}

// The end-to-end edit sequence every product form must satisfy: 1000 at 20%
// sells for 800; editing selling to 850 gives 15%; editing selling above the
// original resets the discount and snaps selling back down.
func TestTripleEditPropagation(t *testing.T) {
	tr := NewTriple(1000, 20)
	if tr.Selling != 800 {
		t.Fatalf("initial selling = %v, want 800", tr.Selling)
	}

	tr.SetSelling(850)
	if tr.Discount != 15 {
		t.Errorf("after selling=850, discount = %v, want 15", tr.Discount)
	}

	tr.SetSelling(1100)
	if tr.Discount != 0 {
		t.Errorf("selling above original: discount = %v, want 0", tr.Discount)
	}
	if tr.Selling != 1000 {
		t.Errorf("selling above original: selling = %v, want snap to 1000", tr.Selling)
	}

	// A free or negative selling price would put the discount at or past
	// 100; it corrects the same way.
	tr.SetSelling(0)
	if tr.Discount != 0 || tr.Selling != 1000 {
		t.Errorf("selling=0: triple = %+v, want discount 0 and selling 1000", tr)
	}
	tr.SetSelling(-5)
	if tr.Discount != 0 || tr.Selling != 1000 {
		t.Errorf("selling=-5: triple = %+v, want discount 0 and selling 1000", tr)
	}

	tr.SetOriginal(500)
	if tr.Selling != 500 {
		t.Errorf("after original=500 with 0%% discount, selling = %v", tr.Selling)
	}
	if err := tr.SetDiscount(10); err != nil {
		t.Fatalf("SetDiscount(10): %v", err)
	}
	if tr.Selling != 450 {
		t.Errorf("after discount=10, selling = %v, want 450", tr.Selling)
	}
}

func TestTripleRejectsOutOfRangeDiscount(t *testing.T) {
	tr := NewTriple(1000, 20)
	for _, d := range []float64{-1, 100, 250} {
		if err := tr.SetDiscount(d); !errors.Is(err, ErrDiscountOutOfRange) {
			t.Errorf("SetDiscount(%v): want ErrDiscountOutOfRange, got %v", d, err)
		}
	}
	if tr.Discount != 20 || tr.Selling != 800 {
		t.Errorf("rejected edit must not change the triple: %+v", tr)
	}
}

func TestVariantSetMirroring(t *testing.T) {
	s := &VariantSet{Parent: NewTriple(1000, 20)}
	small := s.AddVariant("S")
	large := s.AddVariant("L")

	if small.Triple != s.Parent {
		t.Fatal("new variant should start from the parent triple")
	}

	// Unlocked variants keep their own values when the parent changes.
	if err := s.SetVariantOriginal(large, 1200); err != nil {
		t.Fatalf("SetVariantOriginal: %v", err)
	}
	s.SetParentOriginal(900)
	if large.Triple.Original != 1200 {
		t.Errorf("unlocked variant followed parent: %v", large.Triple.Original)
	}

	// Locking mirrors immediately and on every later parent edit.
	s.SetLock(large, FieldDiscount, true)
	if large.Triple.Discount != s.Parent.Discount {
		t.Errorf("lock should mirror parent discount, got %v", large.Triple.Discount)
	}
	if err := s.SetParentDiscount(30); err != nil {
		t.Fatalf("SetParentDiscount: %v", err)
	}
	if large.Triple.Discount != 30 {
		t.Errorf("locked discount should track parent, got %v", large.Triple.Discount)
	}
	if large.Triple.Selling != SellingPrice(1200, 30) {
		t.Errorf("variant selling should recompute from its own original, got %v", large.Triple.Selling)
	}

	// Direct edits of a locked field are rejected.
	if err := s.SetVariantDiscount(large, 10); !errors.Is(err, ErrFieldLocked) {
		t.Errorf("editing locked field: want ErrFieldLocked, got %v", err)
	}

	// Unlocking frees the field again.
	s.SetLock(large, FieldDiscount, false)
	if err := s.SetVariantDiscount(large, 10); err != nil {
		t.Errorf("editing unlocked field: %v", err)
	}
}

func TestVariantSellingPropagation(t *testing.T) {
	s := &VariantSet{Parent: NewTriple(1000, 0)}
	v := s.AddVariant("M")
	if err := s.SetVariantSelling(v, 850); err != nil {
		t.Fatalf("SetVariantSelling: %v", err)
	}
	if v.Triple.Discount != 15 {
		t.Errorf("variant discount = %v, want 15", v.Triple.Discount)
	}
	if err := s.SetVariantSelling(v, 1500); err != nil {
		t.Fatalf("SetVariantSelling: %v", err)
	}
	if v.Triple.Discount != 0 || v.Triple.Selling != 1000 {
		t.Errorf("variant snap: %+v", v.Triple)
	}
}
