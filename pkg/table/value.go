package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindText is a string value. It is the zero Kind.
	KindText Kind = iota
	// KindInt is a 64-bit signed integer value.
	KindInt
	// KindFloat is a 64-bit floating point value.
	KindFloat
	// KindTimestamp is a point in time.
	KindTimestamp
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name back to a Kind. It accepts the names produced by
// Kind.String plus the common aliases "string", "integer", "double",
// "datetime" and "time".
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string", "str":
		return KindText, true
	case "int", "integer", "long":
		return KindInt, true
	case "float", "double", "real":
		return KindFloat, true
	case "timestamp", "datetime", "time":
		return KindTimestamp, true
	}
	return KindText, false
}

// Value is a single table cell. It is a closed variant over text, integer,
// floating point and timestamp payloads; the zero Value is empty text.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Timestamp returns a timestamp Value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, t: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the payload of a text value.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsInt returns the payload of an integer value.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the payload of a floating point value.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsTime returns the payload of a timestamp value.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTimestamp }

// String renders the value as text. Floats always carry a fractional part so
// that 1994.0 and 1994 stay distinguishable once written out.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindTimestamp:
		return v.t.Format(time.RFC3339Nano)
	default:
		return v.s
	}
}

// Equal reports whether two values hold the same payload. Integers and floats
// compare numerically, timestamps compare as instants.
func (v Value) Equal(o Value) bool {
	switch {
	case v.kind == o.kind:
		switch v.kind {
		case KindInt:
			return v.i == o.i
		case KindFloat:
			return v.f == o.f
		case KindTimestamp:
			return v.t.Equal(o.t)
		default:
			return v.s == o.s
		}
	case v.kind == KindInt && o.kind == KindFloat:
		return float64(v.i) == o.f
	case v.kind == KindFloat && o.kind == KindInt:
		return v.f == float64(o.i)
	}
	return false
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// Row is an ordered sequence of values aligned positionally with a table's
// columns.
type Row []Value

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether both rows have the same length and pairwise equal
// values.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings renders every value of the row with Value.String.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// TextRow builds a row of text values.
func TextRow(values ...string) Row {
	r := make(Row, len(values))
	for i, s := range values {
		r[i] = Text(s)
	}
	return r
}
