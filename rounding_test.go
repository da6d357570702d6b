package money

import (
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundingMode_ZeroValue(t *testing.T) {
	var m RoundingMode
	assert.Equal(t, HalfEven, m)
}

func TestParseRoundingMode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			want RoundingMode
		}{
			{"half-even", HalfEven},
			{"HALF_EVEN", HalfEven},
			{"half-up", HalfUp},
			{"half_down", HalfDown},
			{"down", Down},
			{"Up", Up},
			{"ceiling", Ceiling},
			{" floor ", Floor},
			{"unnecessary", Unnecessary},
		}
		for _, tt := range tests {
			got, err := ParseRoundingMode(tt.s)
			require.NoError(t, err, "ParseRoundingMode(%q)", tt.s)
			assert.Equal(t, tt.want, got, "ParseRoundingMode(%q)", tt.s)
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, s := range []string{"", "half", "bankers", "round-half-even"} {
			_, err := ParseRoundingMode(s)
			assert.ErrorIs(t, err, ErrInvalidRoundingMode, "ParseRoundingMode(%q)", s)
		}
	})
}

func TestRoundingMode_String(t *testing.T) {
	for m := HalfEven; m <= Unnecessary; m++ {
		got, err := ParseRoundingMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	assert.Equal(t, "RoundingMode(42)", RoundingMode(42).String())
	assert.False(t, RoundingMode(-1).IsValid())
}

func TestRescale(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		modes := []RoundingMode{HalfEven, HalfUp, HalfDown, Down, Up, Ceiling, Floor}
		tests := []struct {
			d    string
			want [7]string
		}{
			//              HalfEven  HalfUp   HalfDown Down     Up       Ceiling  Floor
			{"2.005", [7]string{"2.00", "2.01", "2.00", "2.00", "2.01", "2.01", "2.00"}},
			{"2.015", [7]string{"2.02", "2.02", "2.01", "2.01", "2.02", "2.02", "2.01"}},
			{"2.0051", [7]string{"2.01", "2.01", "2.01", "2.00", "2.01", "2.01", "2.00"}},
			{"2.0049", [7]string{"2.00", "2.00", "2.00", "2.00", "2.01", "2.01", "2.00"}},
			{"-2.005", [7]string{"-2.00", "-2.01", "-2.00", "-2.00", "-2.01", "-2.00", "-2.01"}},
			{"-2.015", [7]string{"-2.02", "-2.02", "-2.01", "-2.01", "-2.02", "-2.01", "-2.02"}},
			{"-0.004", [7]string{"0.00", "0.00", "0.00", "0.00", "-0.01", "0.00", "-0.01"}},
			{"1.1", [7]string{"1.10", "1.10", "1.10", "1.10", "1.10", "1.10", "1.10"}},
			{"7", [7]string{"7.00", "7.00", "7.00", "7.00", "7.00", "7.00", "7.00"}},
		}
		for _, tt := range tests {
			d := decimal.RequireFromString(tt.d)
			for i, mode := range modes {
				got, err := rescale(d, 2, mode)
				require.NoError(t, err, "rescale(%v, 2, %v)", tt.d, mode)
				assert.Equal(t, int32(-2), got.Exponent(), "rescale(%v, 2, %v)", tt.d, mode)
				assert.Equal(t, tt.want[i], got.StringFixed(2), "rescale(%v, 2, %v)", tt.d, mode)
			}
		}
	})

	t.Run("unnecessary", func(t *testing.T) {
		got, err := rescale(decimal.RequireFromString("10.0100"), 2, Unnecessary)
		require.NoError(t, err)
		assert.Equal(t, "10.01", got.StringFixed(2))
		assert.Equal(t, int32(-2), got.Exponent())

		_, err = rescale(decimal.RequireFromString("10.001"), 2, Unnecessary)
		assert.ErrorIs(t, err, ErrPrecisionLoss)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := rescale(decimal.RequireFromString("1.005"), 2, RoundingMode(99))
		assert.ErrorIs(t, err, ErrInvalidRoundingMode)
		_, err = rescale(decimal.RequireFromString("1"), 2, RoundingMode(99))
		assert.ErrorIs(t, err, ErrInvalidRoundingMode)
	})

	t.Run("positive exponent", func(t *testing.T) {
		got, err := rescale(decimal.New(15, 2), 0, Unnecessary)
		require.NoError(t, err)
		assert.Equal(t, int32(0), got.Exponent())
		assert.Equal(t, "1500", got.String())
	})
}

func TestRoundQuo(t *testing.T) {
	tests := []struct {
		num, den int64
		mode     RoundingMode
		want     int64
	}{
		{55, 10, HalfEven, 6},
		{25, 10, HalfEven, 2},
		{-25, 10, HalfEven, -2},
		{25, -10, HalfUp, -3},
		{-25, -10, HalfDown, 2},
		{16, 10, Down, 1},
		{11, 10, Up, 2},
		{-11, 10, Ceiling, -1},
		{-11, 10, Floor, -2},
		{10, 10, Unnecessary, 1},
		{0, 7, Up, 0},
	}
	for _, tt := range tests {
		got, err := roundQuo(big.NewInt(tt.num), big.NewInt(tt.den), tt.mode)
		require.NoError(t, err, "roundQuo(%v, %v, %v)", tt.num, tt.den, tt.mode)
		assert.Equal(t, tt.want, got.Int64(), "roundQuo(%v, %v, %v)", tt.num, tt.den, tt.mode)
	}

	_, err := roundQuo(big.NewInt(1), big.NewInt(0), HalfEven)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = roundQuo(big.NewInt(1), big.NewInt(3), Unnecessary)
	assert.ErrorIs(t, err, ErrPrecisionLoss)
}

func TestQuo(t *testing.T) {
	tests := []struct {
		d, e  string
		scale int
		mode  RoundingMode
		want  string
	}{
		{"10.00", "3", 2, HalfEven, "3.33"},
		{"10.00", "6", 2, HalfEven, "1.67"},
		{"0.05", "2", 2, HalfEven, "0.02"},
		{"0.05", "2", 2, HalfUp, "0.03"},
		{"1.00", "-8", 2, Floor, "-0.13"},
		{"1.00", "-8", 2, Ceiling, "-0.12"},
		{"1.00", "8.00", 3, Unnecessary, "0.125"},
		{"10.00", "0.5", 2, Unnecessary, "20.00"},
		{"100", "0.001", 0, Unnecessary, "100000"},
	}
	for _, tt := range tests {
		d, e := decimal.RequireFromString(tt.d), decimal.RequireFromString(tt.e)
		got, err := quo(d, e, tt.scale, tt.mode)
		require.NoError(t, err, "quo(%v, %v, %v, %v)", tt.d, tt.e, tt.scale, tt.mode)
		assert.Equal(t, int32(-tt.scale), got.Exponent())
		assert.Equal(t, tt.want, got.StringFixed(int32(tt.scale)), "quo(%v, %v, %v, %v)", tt.d, tt.e, tt.scale, tt.mode)
	}

	_, err := quo(decimal.RequireFromString("1"), decimal.Zero, 2, HalfEven)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = quo(decimal.RequireFromString("10"), decimal.RequireFromString("3"), 2, Unnecessary)
	assert.ErrorIs(t, err, ErrPrecisionLoss)
}

func TestExactFromFloat64(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			f    float64
			want string
		}{
			{0, "0"},
			{1, "1"},
			{-1.5, "-1.5"},
			{0.1, "0.1000000000000000055511151231257827021181583404541015625"},
			{0.5, "0.5"},
			{1e20, "100000000000000000000"},
			{math.Ldexp(1, -3), "0.125"},
		}
		for _, tt := range tests {
			got, err := exactFromFloat64(tt.f)
			require.NoError(t, err, "exactFromFloat64(%v)", tt.f)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"exactFromFloat64(%v) = %v, want %v", tt.f, got, tt.want)
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := exactFromFloat64(f)
			assert.ErrorIs(t, err, ErrSpecialValue, "exactFromFloat64(%v)", f)
		}
	})
}
