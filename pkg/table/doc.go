// Package table implements tabula's in-memory table: an ordered list of named
// columns and an ordered list of rows of typed values.
//
// # Values
//
// Cells are Values, a closed variant over text, int64, float64 and time.Time.
// Column kinds are never enforced on write; GetColumnTypes and
// AutoDetectColumnTypes classify columns lazily by inspecting every value.
//
// # Addressing
//
// Columns are addressed with Col (position) or Named (first column with that
// name). Unknown names fail with a lookup error, bad positions with an index
// error:
//
//	t := table.New("Title", "Genre", "Year", "Score")
//	_ = t.AddRow(table.Row{table.Text("Shawshank"), table.Text("Thriller"), table.Int(1994), table.Float(9.3)})
//	year, _ := t.GetValue(table.Named("Year"))
//
// # Ownership
//
// AddRow copies its argument. Read accessors return rows that alias the table
// unless WithCopy is passed. Concat and Split copy rows, so tables never share
// row storage after a structural operation.
//
// # Errors
//
// All failures are *errors.Error values from pkg/errors; use IsShape,
// IsLookup, IsIndex, IsSchemaMismatch and IsConversion to classify them.
package table
