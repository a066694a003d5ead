package table

import (
	"sort"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
)

// GetColumnTypes classifies every column by the kinds of the values it
// currently holds: KindInt when all values are integers, otherwise KindFloat
// when all are floats, otherwise KindText. A single non-conforming value
// demotes the whole column to text. Columns of an empty table classify as
// KindInt.
func (t *Table) GetColumnTypes() []Kind {
	return t.classify(KindInt, KindFloat)
}

// AutoDetectColumnTypes is GetColumnTypes with an additional KindTimestamp
// classification for columns whose values all are timestamps.
//
// Detection looks at in-memory kinds only. Text that happens to look like a
// date stays text; use package schema for lexical suggestions.
func (t *Table) AutoDetectColumnTypes() []Kind {
	return t.classify(KindInt, KindFloat, KindText, KindTimestamp)
}

// classify returns, per column, the first candidate kind that every value of
// the column holds, falling back to KindText.
func (t *Table) classify(candidates ...Kind) []Kind {
	out := make([]Kind, len(t.columns))
	for col := range t.columns {
		out[col] = KindText
		for _, k := range candidates {
			if t.columnIs(col, k) {
				out[col] = k
				break
			}
		}
	}
	return out
}

func (t *Table) columnIs(col int, k Kind) bool {
	for _, row := range t.rows {
		if row[col].Kind() != k {
			return false
		}
	}
	return true
}

// SetColumnTypes converts every value of each listed column to the given
// kind with the built-in converter for that kind.
//
// The operation is atomic: if any value fails to convert the table is left
// untouched and a conversion error naming the column and row is returned.
func (t *Table) SetColumnTypes(types map[Column]Kind) error {
	conv := make(map[Column]Converter, len(types))
	for c, k := range types {
		fn, err := ConverterFor(k)
		if err != nil {
			return err
		}
		conv[c] = fn
	}
	return t.ConvertColumns(conv)
}

// ConvertColumns applies a converter to every value of each listed column.
// Like SetColumnTypes it either converts everything or changes nothing.
func (t *Table) ConvertColumns(conv map[Column]Converter) error {
	type job struct {
		idx int
		col Column
		fn  Converter
	}
	jobs := make([]job, 0, len(conv))
	for c, fn := range conv {
		idx, err := t.resolve(c)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{idx: idx, col: c, fn: fn})
	}
	// Deterministic failure reporting regardless of map order.
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].idx < jobs[j].idx })

	staged := make([][]Value, len(jobs))
	for j, jb := range jobs {
		vals := make([]Value, len(t.rows))
		for r, row := range t.rows {
			v, err := jb.fn(row[jb.idx])
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeConversion, "cannot convert value").
					WithDetail("column", jb.col.String()).
					WithDetail("row", r).
					WithDetail("value", row[jb.idx].String())
			}
			vals[r] = v
		}
		staged[j] = vals
	}

	for j, jb := range jobs {
		for r := range t.rows {
			t.rows[r][jb.idx] = staged[j][r]
		}
	}
	return nil
}
