package money

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidScale     = errors.New("invalid scale")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrSpecialValue     = errors.New("special value")
)

// Money type represents a monetary amount in a specific currency.
// Its zero value corresponds to "XXX 0", where [XXX] indicates an unknown currency.
//
// The number of digits after the decimal point of the amount is always equal
// to the scale of its currency, see [Currency.Scale].
// Money is immutable and designed to be safe for concurrent use by multiple
// goroutines.
//
// Money values must not be compared with the == operator, use [Money.Equal].
type Money struct {
	curr   Currency        // ISO 4217 currency
	amount decimal.Decimal // monetary value, scale == curr.Scale()
}

// New returns money with the specified amount and currency.
// No rounding or rescaling is performed: the number of digits after the
// decimal point of the amount must be equal to the scale of the currency.
// See also constructors [NewExact] and [NewRounded].
//
// New returns [ErrInvalidScale] if the scale of the amount does not match
// the scale of the currency.
func New(amount decimal.Decimal, curr Currency) (Money, error) {
	if got, want := scaleOf(amount), curr.Scale(); got != want {
		return Money{}, fmt.Errorf("creating %v money from %v: %w: got %v digits, want %v",
			curr, amount, ErrInvalidScale, got, want)
	}
	return Money{curr: curr, amount: amount}, nil
}

// NewExact returns money with the amount rescaled to the scale of the currency.
// Trailing zeros are added or removed as needed, but non-zero digits are never
// rounded off.
//
// NewExact returns [ErrPrecisionLoss] if the amount has more significant digits
// after the decimal point than the currency allows.
func NewExact(amount decimal.Decimal, curr Currency) (Money, error) {
	return NewRounded(amount, curr, Unnecessary)
}

// NewRounded returns money with the amount rounded to the scale of the
// currency using the given rounding mode.
//
// NewRounded returns an error if:
//   - the rounding mode is not valid;
//   - the mode is [Unnecessary] and rounding would discard non-zero digits.
func NewRounded(amount decimal.Decimal, curr Currency, mode RoundingMode) (Money, error) {
	d, err := rescale(amount, curr.Scale(), mode)
	if err != nil {
		return Money{}, fmt.Errorf("rounding %v to %v digits using %v: %w", amount, curr.Scale(), mode, err)
	}
	return New(d, curr)
}

// NewFromFloat64 converts a binary floating-point number to money, rounding
// it to the scale of the currency using [HalfEven].
//
// This conversion is lossy. The float already carries a representation error
// before rounding is applied: 2.675 is stored as
// 2.67499999999999982236431605997495353221893310546875 and becomes USD 2.67.
// Callers needing exact amounts should use [NewExact] or [Parse] instead.
//
// NewFromFloat64 returns an error if the float is NaN or Inf.
func NewFromFloat64(amount float64, curr Currency) (Money, error) {
	return NewFromFloat64Rounded(amount, curr, HalfEven)
}

// NewFromFloat64Rounded is like [NewFromFloat64] but lets the caller choose
// the rounding mode.
// The exact value of the float is rounded, not its shortest decimal
// representation.
func NewFromFloat64Rounded(amount float64, curr Currency, mode RoundingMode) (Money, error) {
	d, err := exactFromFloat64(amount)
	if err != nil {
		return Money{}, fmt.Errorf("converting float: %w", err)
	}
	return NewRounded(d, curr, mode)
}

// Dollars is a shortcut for [NewExact] with [USD].
func Dollars(amount decimal.Decimal) (Money, error) {
	return NewExact(amount, USD)
}

// DollarsFromFloat64 is a shortcut for [NewFromFloat64] with [USD].
// It shares the representation error caveat of [NewFromFloat64].
func DollarsFromFloat64(amount float64) (Money, error) {
	return NewFromFloat64(amount, USD)
}

// Zero returns zero money in the given currency.
func Zero(curr Currency) Money {
	return Money{curr: curr, amount: decimal.New(0, int32(-curr.Scale()))}
}

// NewFromMinorUnits converts an integer, representing minor units of
// currency (e.g. cents, pennies, fils), to money.
// See also method [Money.MinorUnits].
func NewFromMinorUnits(curr Currency, units int64) Money {
	return Money{curr: curr, amount: decimal.New(units, int32(-curr.Scale()))}
}

// Parse converts currency and decimal strings to money.
// The amount is rescaled to the scale of the currency without rounding,
// see [NewExact].
//
// Parse returns an error if:
//   - the currency code is not known, see [ErrUnknownCurrency];
//   - the amount is not a valid decimal;
//   - the amount has more significant digits after the decimal point than
//     the currency allows, see [ErrPrecisionLoss].
func Parse(curr, amount string) (Money, error) {
	// Currency
	c, err := ParseCurr(curr)
	if err != nil {
		return Money{}, fmt.Errorf("parsing currency: %w", err)
	}
	// Decimal
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount: %w", err)
	}
	// Money
	return NewExact(d, c)
}

// MustParse is like [Parse] but panics if any of the strings cannot be parsed.
// This function simplifies safe initialization of global variables holding money.
func MustParse(curr, amount string) Money {
	m, err := Parse(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q, %q) failed: %v", curr, amount, err))
	}
	return m
}

// ParseMoney converts a string in the "<code> <amount>" form produced by
// [Money.String], such as "USD 15.00", to money.
func ParseMoney(s string) (Money, error) {
	curr, amount, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Money{}, fmt.Errorf("parsing %q: missing currency or amount", s)
	}
	return Parse(curr, strings.TrimSpace(amount))
}

// Curr returns the currency of the money.
func (m Money) Curr() Currency {
	return m.curr
}

// Decimal returns the amount as a decimal with exactly [Currency.Scale]
// digits after the decimal point.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Scale returns the number of digits after the decimal point.
// It is always equal to the scale of the currency.
func (m Money) Scale() int {
	return m.curr.Scale()
}

// MinorUnits returns the amount in minor units of currency
// (e.g. cents, pennies, fils).
// If the result cannot be represented as an int64, then false is returned.
// See also constructor [NewFromMinorUnits].
func (m Money) MinorUnits() (units int64, ok bool) {
	u := m.Decimal().Coefficient()
	if !u.IsInt64() {
		return 0, false
	}
	return u.Int64(), true
}

// Float64 returns the nearest binary floating-point number.
// This conversion may lose data, as float64 has a smaller precision than
// the decimal type. ok is false if the conversion is not exact.
func (m Money) Float64() (f float64, ok bool) {
	return m.Decimal().Float64()
}

// Sign returns:
//
//	-1 if m < 0
//	 0 if m = 0
//	+1 if m > 0
func (m Money) Sign() int {
	return m.amount.Sign()
}

// IsZero returns true if the amount is 0.
func (m Money) IsZero() bool {
	return m.Sign() == 0
}

// IsNeg returns true if the amount is less than 0.
func (m Money) IsNeg() bool {
	return m.Sign() < 0
}

// IsPos returns true if the amount is greater than 0.
func (m Money) IsPos() bool {
	return m.Sign() > 0
}

// Neg returns money with the opposite sign.
func (m Money) Neg() Money {
	return Money{curr: m.curr, amount: m.Decimal().Neg()}
}

// Abs returns the absolute value of the money.
func (m Money) Abs() Money {
	return Money{curr: m.curr, amount: m.Decimal().Abs()}
}

// MinIncrement returns the smallest positive amount representable in the
// currency of m, e.g. USD 0.01 or JPY 1.
// See also method [Money.Incremented].
func (m Money) MinIncrement() Money {
	return NewFromMinorUnits(m.curr, 1)
}

// Incremented returns m increased by [Money.MinIncrement].
func (m Money) Incremented() Money {
	return m.add(m.MinIncrement())
}

// SameCurr returns true if both amounts are denominated in the same currency.
// Every binary operation between amounts requires it.
func (m Money) SameCurr(b Money) bool {
	return m.curr == b.curr
}

// Add returns the exact sum of amounts m and b.
//
// Add returns [ErrCurrencyMismatch] if amounts are denominated in different
// currencies.
func (m Money) Add(b Money) (Money, error) {
	if !m.SameCurr(b) {
		return Money{}, fmt.Errorf("computing [%v + %v]: %w", m, b, ErrCurrencyMismatch)
	}
	return m.add(b), nil
}

// add sums two amounts of the same currency.
// Both summands have the scale of the currency, so the sum has it too.
func (m Money) add(b Money) Money {
	return Money{curr: m.curr, amount: m.Decimal().Add(b.Decimal())}
}

// Sub returns the exact difference between amounts m and b.
//
// Sub returns [ErrCurrencyMismatch] if amounts are denominated in different
// currencies.
func (m Money) Sub(b Money) (Money, error) {
	if !m.SameCurr(b) {
		return Money{}, fmt.Errorf("computing [%v - %v]: %w", m, b, ErrCurrencyMismatch)
	}
	return m.add(b.Neg()), nil
}

// Mul returns the product of amount m and factor e, rounded to the scale
// of the currency using [HalfEven].
// See also method [Money.MulRounded].
func (m Money) Mul(e decimal.Decimal) Money {
	c, err := m.mul(e, HalfEven)
	if err != nil {
		// HalfEven rounding of a product is total.
		panic(fmt.Sprintf("computing [%v * %v]: %v", m, e, err))
	}
	return c
}

// MulRounded returns the product of amount m and factor e, rounded to the
// scale of the currency using the given rounding mode.
//
// MulRounded returns an error if:
//   - the rounding mode is not valid;
//   - the mode is [Unnecessary] and the product cannot be represented exactly.
func (m Money) MulRounded(e decimal.Decimal, mode RoundingMode) (Money, error) {
	c, err := m.mul(e, mode)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v * %v] using %v: %w", m, e, mode, err)
	}
	return c, nil
}

func (m Money) mul(e decimal.Decimal, mode RoundingMode) (Money, error) {
	d, err := rescale(m.Decimal().Mul(e), m.Scale(), mode)
	if err != nil {
		return Money{}, err
	}
	return Money{curr: m.curr, amount: d}, nil
}

// MulInt returns the exact product of amount m and integer n.
func (m Money) MulInt(n int64) Money {
	return Money{curr: m.curr, amount: m.Decimal().Mul(decimal.New(n, 0))}
}

// MulFloat64 returns the product of amount m and a binary floating-point
// factor, rounded to the scale of the currency using [HalfEven].
//
// Like [NewFromFloat64], this operation is lossy: the exact value of the
// float is used, so 1.1 multiplies by
// 1.100000000000000088817841970012523233890533447265625.
// Prefer [Money.Mul] with a decimal factor when exactness matters.
//
// MulFloat64 returns [ErrSpecialValue] if the factor is NaN or Inf.
func (m Money) MulFloat64(f float64) (Money, error) {
	return m.MulFloat64Rounded(f, HalfEven)
}

// MulFloat64Rounded is like [Money.MulFloat64] but lets the caller choose
// the rounding mode.
func (m Money) MulFloat64Rounded(f float64, mode RoundingMode) (Money, error) {
	e, err := exactFromFloat64(f)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v * %v]: %w", m, f, err)
	}
	return m.MulRounded(e, mode)
}

// Quo returns the quotient of amount m and divisor e, rounded to the scale
// of the currency using [HalfEven].
// Quo does not fail for non-terminating quotients, they are rounded.
// See also methods [Money.QuoRounded], [Money.Rat] and [Money.Split].
//
// Quo returns [ErrDivisionByZero] if the divisor is 0.
func (m Money) Quo(e decimal.Decimal) (Money, error) {
	return m.QuoRounded(e, HalfEven)
}

// QuoRounded returns the quotient of amount m and divisor e, rounded to the
// scale of the currency using the given rounding mode.
//
// QuoRounded returns an error if:
//   - the divisor is 0;
//   - the rounding mode is not valid;
//   - the mode is [Unnecessary] and the quotient cannot be represented exactly.
func (m Money) QuoRounded(e decimal.Decimal, mode RoundingMode) (Money, error) {
	d, err := quo(m.Decimal(), e, m.Scale(), mode)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v / %v] using %v: %w", m, e, mode, err)
	}
	return Money{curr: m.curr, amount: d}, nil
}

// QuoFloat64 returns the quotient of amount m and a binary floating-point
// divisor, rounded to the scale of the currency using [HalfEven].
// It shares the representation error caveat of [Money.MulFloat64].
//
// QuoFloat64 returns an error if the divisor is 0, NaN or Inf.
func (m Money) QuoFloat64(f float64) (Money, error) {
	return m.QuoFloat64Rounded(f, HalfEven)
}

// QuoFloat64Rounded is like [Money.QuoFloat64] but lets the caller choose
// the rounding mode.
func (m Money) QuoFloat64Rounded(f float64, mode RoundingMode) (Money, error) {
	e, err := exactFromFloat64(f)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v / %v]: %w", m, f, err)
	}
	return m.QuoRounded(e, mode)
}

// Rat returns the ratio between amounts m and b with exactly scale digits
// after the decimal point.
// No rounding is performed: the ratio must be representable at the scale.
// This is useful for computing percentages within a single currency.
//
// Rat returns an error if:
//   - amounts are denominated in different currencies, see [ErrCurrencyMismatch];
//   - amount b is 0;
//   - the exact ratio cannot be represented with the given scale, see [ErrPrecisionLoss].
func (m Money) Rat(b Money, scale int) (decimal.Decimal, error) {
	if !m.SameCurr(b) {
		return decimal.Decimal{}, fmt.Errorf("computing [%v / %v]: %w", m, b, ErrCurrencyMismatch)
	}
	d, err := quo(m.Decimal(), b.Decimal(), scale, Unnecessary)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("computing [%v / %v] with %v digits: %w", m, b, scale, err)
	}
	return d, nil
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified number
// of parts, the remainder is distributed among the first parts of the slice,
// one minimum increment each.
//
// Split returns an error if the number of parts is not a positive integer.
func (m Money) Split(parts int) ([]Money, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("splitting %v into %v parts: number of parts must be positive", m, parts)
	}
	units := m.Decimal().Coefficient()
	q, r := new(big.Int).QuoRem(units, big.NewInt(int64(parts)), new(big.Int))
	ulp := big.NewInt(int64(r.Sign()))
	rem := r.Int64() // |r| < parts
	if rem < 0 {
		rem = -rem
	}

	exp := int32(-m.Scale())
	res := make([]Money, parts)
	for i := range res {
		coef := new(big.Int).Set(q)
		// Remainder distribution
		if int64(i) < rem {
			coef.Add(coef, ulp)
		}
		res[i] = Money{curr: m.curr, amount: decimal.NewFromBigInt(coef, exp)}
	}
	return res, nil
}

// Cmp compares amounts and returns:
//
//	-1 if m < b
//	 0 if m = b
//	+1 if m > b
//
// Cmp returns [ErrCurrencyMismatch] if amounts are denominated in different
// currencies.
func (m Money) Cmp(b Money) (int, error) {
	if !m.SameCurr(b) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", m, b, ErrCurrencyMismatch)
	}
	return m.amount.Cmp(b.amount), nil
}

// GreaterThan returns true if m > b.
// See also method [Money.Cmp].
func (m Money) GreaterThan(b Money) (bool, error) {
	c, err := m.Cmp(b)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// LessThan returns true if m < b.
// See also method [Money.Cmp].
func (m Money) LessThan(b Money) (bool, error) {
	c, err := m.Cmp(b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Min returns the smaller amount.
//
// Min returns an error if amounts are denominated in different currencies.
func (m Money) Min(b Money) (Money, error) {
	switch c, err := m.Cmp(b); {
	case err != nil:
		return Money{}, err
	case c <= 0: // m <= b
		return m, nil
	default:
		return b, nil
	}
}

// Max returns the larger amount.
//
// Max returns an error if amounts are denominated in different currencies.
func (m Money) Max(b Money) (Money, error) {
	switch c, err := m.Cmp(b); {
	case err != nil:
		return Money{}, err
	case c >= 0: // m >= b
		return m, nil
	default:
		return b, nil
	}
}

// Equal returns true if amounts are denominated in the same currency and
// have equal values.
// Unlike [Money.Cmp], Equal never fails: amounts in different currencies are
// simply not equal.
func (m Money) Equal(b Money) bool {
	return m.SameCurr(b) && m.amount.Equal(b.amount)
}

// Hash returns a hash of the amount consistent with [Money.Equal]:
// equal amounts have equal hashes.
// The currency is not hashed, so "USD 5.00" and "EUR 5.00" collide.
func (m Money) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(m.amountString())) //nolint:errcheck
	return h.Sum64()
}

// amountString returns the amount with exactly [Currency.Scale] digits after
// the decimal point.
func (m Money) amountString() string {
	return m.Decimal().StringFixed(int32(m.Scale()))
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of money in the "<code> <amount>" form, for example
// "USD 15.00" or "JPY -1500".
// See also methods [Currency.String], [Money.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m Money) String() string {
	return m.Curr().Code() + " " + m.amountString()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example     | Description                |
//	| ------ | ----------- | -------------------------- |
//	| %s, %v | USD 5.67    | Currency and amount        |
//	| %q     | "USD 5.67"  | Quoted currency and amount |
//	| %f     | 5.67        | Amount                     |
//	| %d     | 567         | Amount in minor units      |
//	| %c     | USD         | Currency                   |
//
// The '-' format flag can be used with all verbs.
// The '+' format flag can be used with all verbs except %c.
//
// Precision is only supported for the %f verb, the amount is then rounded
// using [HalfEven] or zero-padded.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (m Money) Format(state fmt.State, verb rune) {
	c, d := m.Curr(), m.Decimal()

	// Amount
	var num string
	switch verb {
	case 'f', 'F':
		scale := c.Scale()
		if p, ok := state.Precision(); ok {
			scale = p
		}
		r, err := rescale(d, scale, HalfEven)
		if err != nil {
			r = d
		}
		num = r.StringFixed(int32(max(scale, 0)))
	case 'd', 'D':
		num = d.Coefficient().String()
	default:
		num = d.StringFixed(int32(c.Scale()))
	}
	if state.Flag('+') && d.Sign() >= 0 {
		num = "+" + num
	}

	var text string
	switch verb {
	case 'f', 'F', 'd', 'D':
		text = num
	case 'c', 'C':
		text = c.Code()
	case 'q', 'Q':
		text = `"` + c.Code() + " " + num + `"`
	default:
		text = c.Code() + " " + num
	}
	text = pad(state, text)

	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D', 'c', 'C':
		state.Write([]byte(text))
	default:
		fmt.Fprintf(state, "%%!%c(money.Money=%s)", verb, text)
	}
}
