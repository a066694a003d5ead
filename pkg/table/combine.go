package table

import (
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

// Concat appends copies of b's rows to a and returns a. Both tables must have
// exactly the same column list. b is not modified and shares no rows with a
// afterwards.
func Concat(a, b *Table) (*Table, error) {
	if !sameColumns(a.columns, b.columns) {
		return nil, errors.New(errors.ErrorTypeSchemaMismatch, "tables must have the same columns").
			WithDetail("left", a.Columns()).
			WithDetail("right", b.Columns())
	}
	a.rows = append(a.rows, cloneRows(b.rows)...)
	return a, nil
}

// Split partitions the rows at n into two new tables with the same columns:
// rows [0,n) and rows [n,Len()). n is clamped to the table, so an
// out-of-range split yields one empty side. Both results own copies of their
// rows.
func (t *Table) Split(n int) (*Table, *Table) {
	n = clamp(n, len(t.rows))
	head := &Table{columns: t.Columns(), rows: cloneRows(t.rows[:n])}
	tail := &Table{columns: t.Columns(), rows: cloneRows(t.rows[n:])}
	return head, tail
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
