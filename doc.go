/*
Package money implements exact monetary values in various currencies.
It combines the arbitrary-precision [decimal] package with a [Currency] type
backed by the ISO 4217 list of currencies and their minor units.
Currencies convert to and from [golang.org/x/text/currency] units.

# Features

  - Immutable monetary values, safe for use by multiple goroutines
  - Amounts always carry exactly the number of fraction digits of their currency
  - Explicit creation paths: strict, exact, rounded and from binary floats
  - Eight rounding modes with a reproducible, documented behavior
  - Arithmetic and comparison that refuse to mix currencies

# Representation

A [Money] value consists of a [Currency] and a [decimal.Decimal] amount.
The scale of the amount, i.e. the number of digits after the decimal point,
always equals [Currency.Scale]: 2 for US Dollars, 0 for Japanese Yen and
3 for Kuwaiti Dinars. No operation can produce a value breaking this rule.

# Construction

  - [New] accepts only amounts that already have the right scale.
  - [NewExact] and [Parse] add or remove trailing zeros but never round.
  - [NewRounded] rounds using an explicit [RoundingMode].
  - [NewFromFloat64] rounds the exact value of a binary float. Floats carry
    a representation error, avoid this path when exactness matters.

# Operations

Add and Sub are exact. Mul and Quo round their results to the scale of the
currency using [HalfEven] unless a mode is given via MulRounded or
QuoRounded. Rat divides two amounts of the same currency and only succeeds
if the ratio is exact at the requested scale.

# Errors

Failures are returned as wrapped errors and can be matched with [errors.Is]:
[ErrInvalidScale], [ErrPrecisionLoss], [ErrCurrencyMismatch],
[ErrUnknownCurrency], [ErrInvalidRoundingMode], [ErrDivisionByZero] and
[ErrSpecialValue]. Only the Must* helpers panic.
*/
package money
