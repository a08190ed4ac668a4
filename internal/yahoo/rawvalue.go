package yahoo

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// RawValue is the provider's recurring {raw, fmt} pairing of a machine
// number and its pre-formatted display text. Either field may be absent and
// raw is occasionally a non-numeric placeholder; anything that does not
// carry a machine number counts as absent.
type RawValue struct {
	Raw json.RawMessage `json:"raw"`
	Fmt string          `json:"fmt"`
}

// Number returns the machine number, or nil when the value is absent or its
// raw field is not numeric.
func (v *RawValue) Number() *float64 {
	if v == nil || len(v.Raw) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(string(v.Raw), 64)
	if err != nil {
		return nil
	}
	return &f
}

// Format renders the machine number with exactly places digits after the
// decimal point, or nil when the value is absent. Every {raw, fmt} field in
// the module goes through Number/Format so precision and absence semantics
// cannot drift between resolvers.
func (v *RawValue) Format(places int32) *string {
	f := v.Number()
	if f == nil {
		return nil
	}
	s := formatFixed(*f, places)
	return &s
}

// FormatPercent treats the value as a provider fraction and renders it as a
// percentage with two decimal places, or nil when absent.
func (v *RawValue) FormatPercent() *string {
	f := v.Number()
	if f == nil {
		return nil
	}
	s := formatFixed(*f*100, 2)
	return &s
}

func formatFixed(f float64, places int32) string {
	return decimal.NewFromFloat(f).StringFixed(places)
}

// precision resolves display precision from a priceHint value, defaulting
// to two decimal places.
func precision(hint *RawValue) int32 {
	if f := hint.Number(); f != nil && *f >= 0 {
		return int32(*f)
	}
	return 2
}
