package table

import (
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

// Table is an ordered list of named columns plus an ordered list of rows.
//
// A Table is not safe for concurrent use; callers serialise access.
type Table struct {
	columns []string
	rows    []Row
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// FromRows creates a table and adds every row with AddRow.
func FromRows(columns []string, rows []Row) (*Table, error) {
	t := New(columns...)
	for i, r := range rows {
		if err := t.AddRow(r); err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.WithDetail("row", i)
			}
			return nil, err
		}
	}
	return t, nil
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the live row sequence. Mutating a returned row mutates the
// table.
func (t *Table) Rows() []Row { return t.rows[:len(t.rows):len(t.rows)] }

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{columns: t.Columns(), rows: cloneRows(t.rows)}
}

// AddRow appends a copy of row. The row must have exactly one value per
// column; otherwise a shape error is returned and the table is unchanged.
func (t *Table) AddRow(row Row) error {
	if len(row) != len(t.columns) {
		return errors.Newf(errors.ErrorTypeShape, "row has %d values, table has %d columns", len(row), len(t.columns)).
			WithDetail("expected", len(t.columns)).
			WithDetail("got", len(row))
	}
	t.rows = append(t.rows, row.Clone())
	return nil
}

// SetValue overwrites the value of column c in the first row.
func (t *Table) SetValue(v Value, c Column) error {
	idx, err := t.resolve(c)
	if err != nil {
		return err
	}
	if len(t.rows) == 0 {
		return errors.New(errors.ErrorTypeIndex, "table has no rows")
	}
	t.rows[0][idx] = v
	return nil
}

// SetValues overwrites column c in every row with the value at the same
// position in values. Extra values are ignored; too few values is an error
// and nothing is written.
func (t *Table) SetValues(values []Value, c Column) error {
	idx, err := t.resolve(c)
	if err != nil {
		return err
	}
	if len(values) < len(t.rows) {
		return errors.Newf(errors.ErrorTypeIndex, "%d values for %d rows", len(values), len(t.rows)).
			WithDetail("column", c.String())
	}
	for i := range t.rows {
		t.rows[i][idx] = values[i]
	}
	return nil
}

func cloneRows(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
