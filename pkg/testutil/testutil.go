// Package testutil provides testing utilities for tabula
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// TestLogger creates a test logger that writes to the test output.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout that is
// cancelled when the test finishes.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// MovieColumns are the columns of the Movies fixture.
var MovieColumns = []string{"Title", "Genre", "Year", "Score"}

// Movies returns the three-row movies table used across the test suites.
func Movies(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t, MovieColumns, []table.Row{
		{table.Text("The Shawshank Redemption"), table.Text("Thriller"), table.Int(1994), table.Float(9.3)},
		{table.Text("Forrest Gump"), table.Text("Romance"), table.Int(1994), table.Float(8.6)},
		{table.Text("The Godfather"), table.Text("Drama"), table.Int(1972), table.Float(9.1)},
	})
}

// Cartoons returns a three-row table whose first column name differs from
// Movies, so the two cannot be concatenated.
func Cartoons(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t, []string{"Cartoon", "Genre", "Year", "Score"}, []table.Row{
		{table.Text("The Lion King"), table.Text("Animation"), table.Int(1994), table.Float(8.5)},
		{table.Text("Shrek"), table.Text("Animation"), table.Int(2001), table.Float(7.9)},
		{table.Text("Zootopia"), table.Text("Animation"), table.Int(2016), table.Float(8.0)},
	})
}

// Releases returns a table with a timestamp column alongside int, float and
// text columns.
func Releases(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t, []string{"Title", "Released", "Runtime", "Gross"}, []table.Row{
		{table.Text("Shrek"), table.Timestamp(time.Date(2001, 5, 18, 0, 0, 0, 0, time.UTC)), table.Int(90), table.Float(484.4)},
		{table.Text("Zootopia"), table.Timestamp(time.Date(2016, 3, 4, 12, 30, 0, 0, time.UTC)), table.Int(108), table.Float(1025.5)},
	})
}

func mustTable(t *testing.T, columns []string, rows []table.Row) *table.Table {
	t.Helper()
	tbl, err := table.FromRows(columns, rows)
	require.NoError(t, err)
	return tbl
}

// RequireRowsEqual compares rows with Value.Equal semantics and reports the
// first differing row.
func RequireRowsEqual(t *testing.T, expected, actual []table.Row) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.Truef(t, expected[i].Equal(actual[i]), "row %d: expected %v, got %v",
			i, expected[i].Strings(), actual[i].Strings())
	}
}
