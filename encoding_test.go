package money

import (
	"bytes"
	"database/sql/driver"
	"encoding/gob"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codec serializes a value and reconstructs it.
type codec struct {
	name   string
	encode func(Money) ([]byte, error)
	decode func([]byte) (Money, error)
}

var codecs = []codec{
	{
		name:   "json",
		encode: func(m Money) ([]byte, error) { return json.Marshal(m) },
		decode: func(b []byte) (m Money, err error) { err = json.Unmarshal(b, &m); return },
	},
	{
		name:   "text",
		encode: func(m Money) ([]byte, error) { return m.MarshalText() },
		decode: func(b []byte) (m Money, err error) { err = m.UnmarshalText(b); return },
	},
	{
		name:   "binary",
		encode: func(m Money) ([]byte, error) { return m.MarshalBinary() },
		decode: func(b []byte) (m Money, err error) { err = m.UnmarshalBinary(b); return },
	},
	{
		name: "gob",
		encode: func(m Money) ([]byte, error) {
			var buf bytes.Buffer
			err := gob.NewEncoder(&buf).Encode(m)
			return buf.Bytes(), err
		},
		decode: func(b []byte) (m Money, err error) {
			err = gob.NewDecoder(bytes.NewReader(b)).Decode(&m)
			return
		},
	},
	{
		name: "bson",
		encode: func(m Money) ([]byte, error) {
			_, data, err := m.MarshalBSONValue()
			return data, err
		},
		decode: func(b []byte) (m Money, err error) { err = m.UnmarshalBSONValue(bsonString, b); return },
	},
	{
		name: "sql",
		encode: func(m Money) ([]byte, error) {
			v, err := m.Value()
			if err != nil {
				return nil, err
			}
			return []byte(v.(string)), nil
		},
		decode: func(b []byte) (m Money, err error) { err = m.Scan(b); return },
	},
}

// assertRoundTrip serializes want with every codec, reconstructs it and
// checks that the result is equal to the original.
func assertRoundTrip(t *testing.T, want Money) {
	t.Helper()
	for _, c := range codecs {
		data, err := c.encode(want)
		require.NoError(t, err, "%v: encoding %v", c.name, want)
		got, err := c.decode(data)
		require.NoError(t, err, "%v: decoding %q", c.name, data)
		assert.True(t, want.Equal(got), "%v: got %v, want %v", c.name, got, want)
		requireCurrScale(t, got)
	}
}

func TestMoney_RoundTrip(t *testing.T) {
	tests := []Money{
		MustParse("USD", "15.00"),
		MustParse("USD", "-0.01"),
		MustParse("EUR", "123456789012345678901234567890.12"),
		MustParse("JPY", "1500"),
		MustParse("KWD", "0.125"),
		Zero(CHF),
		{},
	}
	for _, m := range tests {
		assertRoundTrip(t, m)
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	type invoice struct {
		Total Money `json:"total"`
	}
	data, err := json.Marshal(invoice{Total: MustParse("USD", "15")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"USD 15.00"}`, string(data))

	var got invoice
	require.NoError(t, json.Unmarshal([]byte(`{"total":"EUR 7.5"}`), &got))
	assert.Equal(t, "EUR 7.50", got.Total.String())
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	m := MustParse("USD", "1.00")
	require.NoError(t, m.UnmarshalJSON([]byte("null")))
	assert.Equal(t, "USD 1.00", m.String())

	tests := map[string]struct {
		text string
		want error
	}{
		"number":    {`15.00`, nil},
		"precision": {`"USD 1.001"`, ErrPrecisionLoss},
		"currency":  {`"UUU 1.00"`, ErrUnknownCurrency},
		"no amount": {`"USD"`, nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got Money
			err := json.Unmarshal([]byte(tt.text), &got)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestMoney_BSON(t *testing.T) {
	typ, data, err := MustParse("USD", "1.5").MarshalBSONValue()
	require.NoError(t, err)
	assert.Equal(t, bsonString, typ)
	assert.Equal(t, append([]byte{9, 0, 0, 0}, "USD 1.50\x00"...), data)

	var got Money
	require.NoError(t, got.UnmarshalBSONValue(bsonNull, nil))
	assert.True(t, got.Equal(Money{}))
	assert.Error(t, got.UnmarshalBSONValue(1, data))
	assert.Error(t, got.UnmarshalBSONValue(bsonString, []byte{200, 0, 0, 0, 'U'}))
}

func TestMoney_Scan(t *testing.T) {
	var got Money
	require.NoError(t, got.Scan("JPY 15"))
	assert.Equal(t, "JPY 15", got.String())
	assert.Error(t, got.Scan(15.0))
	assert.Error(t, got.Scan("JPY 1.5"))

	var v driver.Valuer = got
	s, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "JPY 15", s)
}
