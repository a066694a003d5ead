package table

import (
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

type readOptions struct {
	stop    int
	hasStop bool
	copy    bool
}

// ReadOption configures the row accessors.
type ReadOption func(*readOptions)

// WithStop sets the exclusive end of a GetRowsByNumber range.
func WithStop(stop int) ReadOption {
	return func(o *readOptions) {
		o.stop = stop
		o.hasStop = true
	}
}

// WithCopy makes an accessor return rows that share no storage with the table.
func WithCopy() ReadOption {
	return func(o *readOptions) { o.copy = true }
}

func applyReadOptions(opts []ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GetRowsByNumber returns the rows in [start, stop). Without WithStop the
// range is the single row at start. Bounds are clamped to the table the way
// slicing does, so an out-of-range request yields an empty result rather than
// an error.
//
// Unless WithCopy is given the returned rows alias the table.
func (t *Table) GetRowsByNumber(start int, opts ...ReadOption) []Row {
	o := applyReadOptions(opts)
	stop := start + 1
	if o.hasStop {
		stop = o.stop
	}
	start, stop = clamp(start, len(t.rows)), clamp(stop, len(t.rows))
	if stop < start {
		stop = start
	}
	rows := t.rows[start:stop:stop]
	if o.copy {
		return cloneRows(rows)
	}
	return rows
}

// GetRowsByIndex returns every row whose value in the key column equals one of
// keys, in table order.
func (t *Table) GetRowsByIndex(key Column, keys []Value, opts ...ReadOption) ([]Row, error) {
	idx, err := t.resolve(key)
	if err != nil {
		return nil, err
	}
	o := applyReadOptions(opts)

	var out []Row
	for _, row := range t.rows {
		for _, k := range keys {
			if row[idx].Equal(k) {
				if o.copy {
					row = row.Clone()
				}
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

// GetValues returns every value of column c in row order.
func (t *Table) GetValues(c Column) ([]Value, error) {
	idx, err := t.resolve(c)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// GetValue returns the value of column c in the first row.
func (t *Table) GetValue(c Column) (Value, error) {
	idx, err := t.resolve(c)
	if err != nil {
		return Value{}, err
	}
	if len(t.rows) == 0 {
		return Value{}, errors.New(errors.ErrorTypeIndex, "table has no rows")
	}
	return t.rows[0][idx], nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
