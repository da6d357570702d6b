package money

import (
	"database/sql/driver"
	"fmt"
)

// BSON element types, see https://bsonspec.org/spec.html
const (
	bsonString byte = 2
	bsonNull   byte = 10
)

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text must be in the "<code> <amount>" form, see [ParseMoney].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (m *Money) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseMoney(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Money{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Money.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// A null value leaves the money unchanged.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (m *Money) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return fmt.Errorf("unmarshaling %T: JSON string expected", Money{})
	}
	return m.UnmarshalText(text[1 : len(text)-1])
}

// MarshalJSON implements the [json.Marshaler] interface.
// Money is encoded as a JSON string, for example "USD 15.00".
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	s := m.String()
	text := make([]byte, 0, len(s)+2)
	text = append(text, '"')
	text = append(text, s...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// It also makes Money usable with [encoding/gob].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (m *Money) UnmarshalBinary(data []byte) error {
	return m.UnmarshalText(data)
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (m Money) MarshalBinary() ([]byte, error) {
	return m.MarshalText()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (m *Money) UnmarshalBSONValue(typ byte, data []byte) error {
	var err error
	switch typ {
	case bsonString:
		var s string
		s, err = parseBSONString(data)
		if err == nil {
			*m, err = ParseMoney(s)
		}
	case bsonNull:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Money{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// Money is encoded as a BSON string.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (m Money) MarshalBSONValue() (typ byte, data []byte, err error) {
	return bsonString, appendBSONString(nil, m.String()), nil
}

// Scan implements the [sql.Scanner] interface.
// See also constructor [ParseMoney].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (m *Money) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*m, err = ParseMoney(value)
	case []byte:
		*m, err = ParseMoney(string(value))
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Money{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// parseBSONString parses a BSON string.
// The byte order of the length prefix must be little-endian.
func parseBSONString(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("invalid data length %v", len(data))
	}
	u := uint32(data[0])
	u |= uint32(data[1]) << 8
	u |= uint32(data[2]) << 16
	u |= uint32(data[3]) << 24
	l := int(int32(u)) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return "", fmt.Errorf("invalid string length %v", l)
	}
	// Dropping the trailing NUL byte
	return string(data[4 : 4+l-1]), nil
}

// appendBSONString appends s as a BSON string: a little-endian int32
// length, the bytes of s and a trailing NUL byte.
func appendBSONString(data []byte, s string) []byte {
	l := len(s) + 1
	data = append(data, byte(l), byte(l>>8), byte(l>>16), byte(l>>24))
	data = append(data, s...)
	return append(data, 0)
}
