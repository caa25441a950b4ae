package model

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, serialized as 2006-01-02.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a 2006-01-02 date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return Date{Time: t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. Full timestamps are accepted and
// truncated to their date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil || raw == "" {
		return err
	}

	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	dateType          = reflect.TypeOf(Date{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// IsEmpty reports whether v counts as absent: nil, a nil pointer, an empty
// string, or an empty slice, array or map. Pointers are followed.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

// IsCollection reports whether v is a slice or array other than []byte.
func IsCollection(v any) bool {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return false
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}

	return rv.Type().Elem().Kind() != reflect.Uint8
}

// Format renders a scalar in its canonical wire form. The boolean result is
// false when v is absent (nil or a nil pointer).
func Format(v any) (string, bool) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return "", false
	}

	return formatValue(rv), true
}

// Values renders v as a list of canonical strings: one per element for
// collections, a single entry for scalars. Absent values and empty
// collections yield no entries.
func Values(v any) []string {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}

	if !IsCollection(rv.Interface()) {
		return []string{formatValue(rv)}
	}

	values := make([]string, 0, rv.Len())

	for i := 0; i < rv.Len(); i++ {
		elem := indirect(rv.Index(i))
		if !elem.IsValid() {
			continue
		}

		values = append(values, formatValue(elem))
	}

	return values
}

// Elements returns the elements of a collection, following pointers. A
// scalar yields itself and an absent value yields nothing.
func Elements(v any) []any {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}

	if !IsCollection(rv.Interface()) {
		return []any{rv.Interface()}
	}

	elems := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elems = append(elems, rv.Index(i).Interface())
	}

	return elems
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}

func formatValue(rv reflect.Value) string {
	switch rv.Type() {
	case dateType:
		return rv.Interface().(Date).String()
	case timeType:
		return rv.Interface().(time.Time).Format(time.RFC3339)
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}

	if rv.Type().Implements(textMarshalerType) {
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err == nil {
			return string(text)
		}
	}

	if rv.Type().Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String()
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, formatValue(rv.Index(i)))
		}

		return strings.Join(parts, ",")
	}

	return fmt.Sprint(rv.Interface())
}
