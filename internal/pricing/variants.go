package pricing

import (
	"errors"
	"fmt"
)

// Field names one member of a pricing triple, used for per-field variant
// locks.
type Field string

const (
	FieldOriginal Field = "original"
	FieldDiscount Field = "discount"
	FieldSelling  Field = "selling"
)

// ErrFieldLocked is returned when a variant field marked "same for all
// sizes" is edited directly.
var ErrFieldLocked = errors.New("field mirrors the parent price and cannot be edited directly")

// Variant is one per-size pricing entry governed by the same propagation
// rule as the parent. Locked fields mirror the parent value instead of
// accepting direct edits.
type Variant struct {
	Size   string
	Triple Triple
	Locked map[Field]bool
}

// VariantSet is a parent triple plus its per-size variants. Editing the
// parent re-mirrors every locked variant field; editing a variant touches
// that variant alone.
type VariantSet struct {
	Parent   Triple
	Variants []*Variant
}

// AddVariant appends a variant for the given size, initialised from the
// parent triple with no locked fields.
func (s *VariantSet) AddVariant(size string) *Variant {
	v := &Variant{Size: size, Triple: s.Parent, Locked: make(map[Field]bool)}
	s.Variants = append(s.Variants, v)
	return v
}

// SetLock toggles the "same for all sizes" flag for one field of a variant.
// Enabling a lock immediately mirrors the parent value into the variant.
func (s *VariantSet) SetLock(v *Variant, f Field, locked bool) {
	if v.Locked == nil {
		v.Locked = make(map[Field]bool)
	}
	v.Locked[f] = locked
	if locked {
		s.mirror(v, f)
	}
}

// SetParentOriginal edits the parent original price and re-mirrors locked
// variant fields.
func (s *VariantSet) SetParentOriginal(original float64) {
	s.Parent.SetOriginal(original)
	s.remirror()
}

// SetParentDiscount edits the parent discount percent and re-mirrors locked
// variant fields.
func (s *VariantSet) SetParentDiscount(discount float64) error {
	if err := s.Parent.SetDiscount(discount); err != nil {
		return err
	}
	s.remirror()
	return nil
}

// SetParentSelling edits the parent selling price and re-mirrors locked
// variant fields.
func (s *VariantSet) SetParentSelling(selling float64) {
	s.Parent.SetSelling(selling)
	s.remirror()
}

// SetVariantOriginal edits one variant's original price.
func (s *VariantSet) SetVariantOriginal(v *Variant, original float64) error {
	if v.Locked[FieldOriginal] {
		return fmt.Errorf("original price for size %s: %w", v.Size, ErrFieldLocked)
	}
	v.Triple.SetOriginal(original)
	return nil
}

// SetVariantDiscount edits one variant's discount percent.
func (s *VariantSet) SetVariantDiscount(v *Variant, discount float64) error {
	if v.Locked[FieldDiscount] {
		return fmt.Errorf("discount for size %s: %w", v.Size, ErrFieldLocked)
	}
	return v.Triple.SetDiscount(discount)
}

// SetVariantSelling edits one variant's selling price.
func (s *VariantSet) SetVariantSelling(v *Variant, selling float64) error {
	if v.Locked[FieldSelling] {
		return fmt.Errorf("selling price for size %s: %w", v.Size, ErrFieldLocked)
	}
	v.Triple.SetSelling(selling)
	return nil
}

func (s *VariantSet) remirror() {
	for _, v := range s.Variants {
		for f, locked := range v.Locked {
			if locked {
				s.mirror(v, f)
			}
		}
	}
}

// mirror copies one parent field into the variant, replaying it through the
// variant's own propagation so the variant stays internally consistent.
func (s *VariantSet) mirror(v *Variant, f Field) {
	switch f {
	case FieldOriginal:
		v.Triple.SetOriginal(s.Parent.Original)
	case FieldDiscount:
		v.Triple.Discount = s.Parent.Discount
		v.Triple.Selling = SellingPrice(v.Triple.Original, v.Triple.Discount)
	case FieldSelling:
		v.Triple.SetSelling(s.Parent.Selling)
	}
}
