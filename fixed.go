package money

import (
	"fmt"

	fixed "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
)

// NewFromFixed converts a fixed-precision decimal from the
// github.com/govalues/decimal package to money.
// The value is rescaled to the scale of the currency without rounding,
// see [NewExact].
func NewFromFixed(amount fixed.Decimal, curr Currency) (Money, error) {
	d, err := decimal.NewFromString(amount.String())
	if err != nil {
		return Money{}, fmt.Errorf("converting %v: %w", amount, err)
	}
	return NewExact(d, curr)
}

// Fixed returns the amount as a fixed-precision decimal from the
// github.com/govalues/decimal package, keeping the scale of the currency.
//
// Fixed returns an error if the amount has more than [fixed.MaxPrec] digits.
func (m Money) Fixed() (fixed.Decimal, error) {
	d, err := fixed.Parse(m.amountString())
	if err != nil {
		return fixed.Decimal{}, fmt.Errorf("converting %v: %w", m, err)
	}
	return d, nil
}
