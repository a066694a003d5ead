package table

import (
	"strconv"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

// Column addresses a table column either by zero-based position or by name.
// The zero Column is position 0.
type Column struct {
	pos   int
	name  string
	named bool
}

// Col addresses the column at position i.
func Col(i int) Column { return Column{pos: i} }

// Named addresses the first column called name.
func Named(name string) Column { return Column{name: name, named: true} }

// String returns the column name or its position.
func (c Column) String() string {
	if c.named {
		return c.name
	}
	return "#" + strconv.Itoa(c.pos)
}

// resolve maps c onto a position in t.columns.
func (t *Table) resolve(c Column) (int, error) {
	if c.named {
		for i, name := range t.columns {
			if name == c.name {
				return i, nil
			}
		}
		return -1, errors.Newf(errors.ErrorTypeLookup, "column %q not found", c.name).
			WithDetail("column", c.name)
	}
	if c.pos < 0 || c.pos >= len(t.columns) {
		return -1, errors.Newf(errors.ErrorTypeIndex, "column position %d out of range [0,%d)", c.pos, len(t.columns)).
			WithDetail("column", c.pos)
	}
	return c.pos, nil
}

// IsShape reports whether err is a row/column count mismatch.
func IsShape(err error) bool { return errors.HasType(err, errors.ErrorTypeShape) }

// IsLookup reports whether err is an unknown column name.
func IsLookup(err error) bool { return errors.HasType(err, errors.ErrorTypeLookup) }

// IsIndex reports whether err is a row or column position out of range.
func IsIndex(err error) bool { return errors.HasType(err, errors.ErrorTypeIndex) }

// IsSchemaMismatch reports whether err is a combination of tables whose
// columns differ.
func IsSchemaMismatch(err error) bool { return errors.HasType(err, errors.ErrorTypeSchemaMismatch) }

// IsConversion reports whether err came from a failed value coercion.
func IsConversion(err error) bool { return errors.HasType(err, errors.ErrorTypeConversion) }
