package table

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

// Converter coerces one value into another. Converters used with
// ConvertColumns must not retain or mutate their input.
type Converter func(Value) (Value, error)

// TimestampLayouts are the layouts ToTimestamp tries, in order, on text input.
// The fractional seconds of the second layout are optional. Layouts without a
// zone parse as UTC.
var TimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ConverterFor returns the built-in converter producing kind k.
func ConverterFor(k Kind) (Converter, error) {
	switch k {
	case KindInt:
		return ToInt, nil
	case KindFloat:
		return ToFloat, nil
	case KindText:
		return ToText, nil
	case KindTimestamp:
		return ToTimestamp, nil
	}
	return nil, errors.Newf(errors.ErrorTypeValidation, "no converter for %s", k)
}

// ToInt converts to an integer. Floats truncate toward zero and must fit in an
// int64, text is parsed as a base-10 integer after trimming spaces, timestamps
// become Unix seconds.
func ToInt(v Value) (Value, error) {
	switch v.kind {
	case KindInt:
		return v, nil
	case KindFloat:
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if math.IsNaN(v.f) || v.f < math.MinInt64 || v.f >= math.MaxInt64 {
			return Value{}, errors.Newf(errors.ErrorTypeConversion, "cannot convert %s to int", v.String())
		}
		return Int(int64(v.f)), nil
	case KindTimestamp:
		return Int(v.t.Unix()), nil
	default:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	}
}

// ToFloat converts to a float. Text is parsed after trimming spaces,
// timestamps become fractional Unix seconds.
func ToFloat(v Value) (Value, error) {
	switch v.kind {
	case KindFloat:
		return v, nil
	case KindInt:
		return Float(float64(v.i)), nil
	case KindTimestamp:
		return Float(float64(v.t.UnixNano()) / 1e9), nil
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}
}

// ToText converts any value to its textual rendering.
func ToText(v Value) (Value, error) {
	if v.kind == KindText {
		return v, nil
	}
	return Text(v.String()), nil
}

// ToTimestamp converts to a timestamp. Text is parsed with TimestampLayouts,
// integers are read as Unix seconds. Floats are rejected.
func ToTimestamp(v Value) (Value, error) {
	switch v.kind {
	case KindTimestamp:
		return v, nil
	case KindInt:
		return Timestamp(time.Unix(v.i, 0).UTC()), nil
	case KindText:
		s := strings.TrimSpace(v.s)
		var firstErr error
		for _, layout := range TimestampLayouts {
			t, err := time.Parse(layout, s)
			if err == nil {
				return Timestamp(t), nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return Value{}, firstErr
	}
	return Value{}, errors.Newf(errors.ErrorTypeConversion, "cannot convert %s %s to timestamp", v.kind, v.String())
}
