package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode specifies how a value is rounded when the exact result needs
// more digits after the decimal point than the target scale allows.
// The zero value is [HalfEven], the default mode of this package.
//
//	| Input | HalfEven | HalfUp | HalfDown | Down | Up | Ceiling | Floor | Unnecessary |
//	| ----- | -------- | ------ | -------- | ---- | -- | ------- | ----- | ----------- |
//	|   5.5 |        6 |      6 |        5 |    5 |  6 |       6 |     5 | error       |
//	|   2.5 |        2 |      3 |        2 |    2 |  3 |       3 |     2 | error       |
//	|   1.6 |        2 |      2 |        2 |    1 |  2 |       2 |     1 | error       |
//	|   1.1 |        1 |      1 |        1 |    1 |  2 |       2 |     1 | error       |
//	|   1.0 |        1 |      1 |        1 |    1 |  1 |       1 |     1 | 1           |
//	|  -1.1 |       -1 |     -1 |       -1 |   -1 | -2 |      -1 |    -2 | error       |
//	|  -2.5 |       -2 |     -3 |       -2 |   -2 | -3 |      -2 |    -3 | error       |
type RoundingMode int

const (
	// HalfEven rounds towards the nearest neighbor, and towards the even
	// neighbor when both are equidistant ([banker's rounding]).
	//
	// [banker's rounding]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
	HalfEven RoundingMode = iota
	// HalfUp rounds towards the nearest neighbor, and away from zero when
	// both neighbors are equidistant.
	HalfUp
	// HalfDown rounds towards the nearest neighbor, and towards zero when
	// both neighbors are equidistant.
	HalfDown
	// Down rounds towards zero (truncation).
	Down
	// Up rounds away from zero.
	Up
	// Ceiling rounds towards positive infinity.
	Ceiling
	// Floor rounds towards negative infinity.
	Floor
	// Unnecessary asserts that the result is exact.
	// Any operation that would have to discard non-zero digits fails
	// with [ErrPrecisionLoss].
	Unnecessary
)

var (
	ErrInvalidRoundingMode = errors.New("invalid rounding mode")
	ErrPrecisionLoss       = errors.New("precision loss")
	ErrDivisionByZero      = errors.New("division by zero")
)

var modeNames = [...]string{
	HalfEven:    "half-even",
	HalfUp:      "half-up",
	HalfDown:    "half-down",
	Down:        "down",
	Up:          "up",
	Ceiling:     "ceiling",
	Floor:       "floor",
	Unnecessary: "unnecessary",
}

// ParseRoundingMode converts a mode name, such as "half-even" or "floor",
// to a rounding mode. Underscores may be used instead of hyphens and the
// letter case is ignored.
func ParseRoundingMode(s string) (RoundingMode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, n := range modeNames {
		if n == name {
			return RoundingMode(m), nil
		}
	}
	return HalfEven, fmt.Errorf("%w: %q", ErrInvalidRoundingMode, s)
}

// IsValid returns true if m is one of the defined rounding modes.
func (m RoundingMode) IsValid() bool {
	return m >= HalfEven && m <= Unnecessary
}

// String implements the [fmt.Stringer] interface.
func (m RoundingMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
	return modeNames[m]
}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// pow10 returns 10^n for n >= 0.
func pow10(n int64) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(n), nil)
}

// roundQuo returns num / den rounded to an integer using mode.
// The arguments are not modified.
func roundQuo(num, den *big.Int, mode RoundingMode) (*big.Int, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoundingMode, mode)
	}
	if den.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() == 0 {
		return q, nil
	}

	// The exact result lies strictly between q and q + sign(n).
	neg := n.Sign() < 0
	away := false
	switch mode {
	case Down:
	case Up:
		away = true
	case Ceiling:
		away = !neg
	case Floor:
		away = neg
	case Unnecessary:
		return nil, ErrPrecisionLoss
	default:
		half := r.Abs(r).Lsh(r, 1).Cmp(d)
		switch {
		case half > 0:
			away = true
		case half < 0:
			away = false
		case mode == HalfUp:
			away = true
		case mode == HalfDown:
			away = false
		default:
			away = new(big.Int).Abs(q).Bit(0) == 1
		}
	}
	if away {
		if neg {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q, nil
}

// scaleOf returns the number of digits after the decimal point of d.
// The result is negative for decimals with a positive exponent.
func scaleOf(d decimal.Decimal) int {
	return -int(d.Exponent())
}

// rescale returns d with exactly scale digits after the decimal point.
// Padding with zeros never fails, dropping digits is done using mode.
func rescale(d decimal.Decimal, scale int, mode RoundingMode) (decimal.Decimal, error) {
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return decimal.Decimal{}, fmt.Errorf("scale %v out of range", scale)
	}
	coef := d.Coefficient()
	shift := int64(scale) - int64(scaleOf(d))
	if shift >= 0 {
		if !mode.IsValid() {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidRoundingMode, mode)
		}
		coef.Mul(coef, pow10(shift))
		return decimal.NewFromBigInt(coef, int32(-scale)), nil
	}
	q, err := roundQuo(coef, pow10(-shift), mode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(q, int32(-scale)), nil
}

// quo returns d / e with exactly scale digits after the decimal point,
// rounded using mode.
func quo(d, e decimal.Decimal, scale int, mode RoundingMode) (decimal.Decimal, error) {
	if e.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return decimal.Decimal{}, fmt.Errorf("scale %v out of range", scale)
	}
	// d / e = (cd / ce) * 10^(ed - ee), the result coefficient is
	// (cd / ce) * 10^(ed - ee + scale).
	num, den := d.Coefficient(), e.Coefficient()
	shift := int64(d.Exponent()) - int64(e.Exponent()) + int64(scale)
	if shift >= 0 {
		num.Mul(num, pow10(shift))
	} else {
		den.Mul(den, pow10(-shift))
	}
	q, err := roundQuo(num, den, mode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(q, int32(-scale)), nil
}

// exactFromFloat64 returns the exact decimal value of the binary
// floating-point number f.
// Every finite float64 equals m * 2^e for integers m and e, and for e < 0
// that is m * 5^-e / 10^-e, which is a terminating decimal.
func exactFromFloat64(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w %v", ErrSpecialValue, f)
	}
	frac, exp := math.Frexp(f)
	m := big.NewInt(int64(frac * (1 << 53)))
	e := exp - 53
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0), nil
	}
	m.Mul(m, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil))
	return decimal.NewFromBigInt(m, int32(e)), nil
}
