package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VikaVinogradova/PM-24-6/pkg/table"
	"github.com/VikaVinogradova/PM-24-6/pkg/testutil"
)

func shawshank() table.Row {
	return table.Row{table.Text("Shawshank"), table.Text("Thriller"), table.Int(1994), table.Float(9.3)}
}

func TestAddRow_RoundTrip(t *testing.T) {
	tbl := table.New("Title", "Genre", "Year", "Score")
	row := shawshank()

	require.NoError(t, tbl.AddRow(row))

	got := tbl.GetRowsByNumber(0)
	require.Len(t, got, 1)
	assert.Equal(t, row, got[0])
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 4, tbl.Width())
}

func TestAddRow_ShapeError(t *testing.T) {
	tbl := testutil.Movies(t)
	before := tbl.Clone()

	tests := []struct {
		name string
		row  table.Row
	}{
		{name: "too short", row: table.TextRow("a", "b", "c")},
		{name: "too long", row: table.TextRow("a", "b", "c", "d", "e")},
		{name: "empty", row: table.Row{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tbl.AddRow(tt.row)
			require.Error(t, err)
			assert.True(t, table.IsShape(err))
			testutil.RequireRowsEqual(t, before.Rows(), tbl.Rows())
		})
	}
}

func TestAddRow_CopiesInput(t *testing.T) {
	tbl := table.New("a", "b")
	row := table.Row{table.Int(1), table.Int(2)}
	require.NoError(t, tbl.AddRow(row))

	row[0] = table.Int(100)

	v, err := tbl.GetValue(table.Col(0))
	require.NoError(t, err)
	assert.Equal(t, table.Int(1), v)
}

func TestNew_CopiesColumns(t *testing.T) {
	cols := []string{"a", "b"}
	tbl := table.New(cols...)
	cols[0] = "z"
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())

	got := tbl.Columns()
	got[1] = "y"
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestFromRows_ReportsFailingRow(t *testing.T) {
	_, err := table.FromRows([]string{"a", "b"}, []table.Row{
		table.TextRow("1", "2"),
		table.TextRow("3"),
	})
	require.Error(t, err)
	assert.True(t, table.IsShape(err))
	assert.Contains(t, err.Error(), "row has 1 values")
}

func TestSetValue(t *testing.T) {
	tbl := testutil.Movies(t)

	require.NoError(t, tbl.SetValue(table.Float(9.9), table.Named("Score")))
	v, err := tbl.GetValue(table.Col(3))
	require.NoError(t, err)
	assert.Equal(t, table.Float(9.9), v)

	require.NoError(t, tbl.SetValue(table.Text("Crime"), table.Col(1)))
	v, err = tbl.GetValue(table.Named("Genre"))
	require.NoError(t, err)
	assert.Equal(t, table.Text("Crime"), v)

	// Only the first row changes.
	second := tbl.GetRowsByNumber(1)[0]
	assert.Equal(t, table.Text("Romance"), second[1])
}

func TestSetValue_Errors(t *testing.T) {
	tbl := testutil.Movies(t)

	err := tbl.SetValue(table.Int(1), table.Named("Director"))
	assert.True(t, table.IsLookup(err))

	err = tbl.SetValue(table.Int(1), table.Col(7))
	assert.True(t, table.IsIndex(err))

	empty := table.New("a")
	err = empty.SetValue(table.Int(1), table.Col(0))
	assert.True(t, table.IsIndex(err))
}

func TestSetValues(t *testing.T) {
	tbl := testutil.Movies(t)
	years := []table.Value{table.Int(2000), table.Int(2001), table.Int(2002), table.Int(9999)}

	require.NoError(t, tbl.SetValues(years, table.Named("Year")))

	got, err := tbl.GetValues(table.Col(2))
	require.NoError(t, err)
	assert.Equal(t, years[:3], got)
}

func TestSetValues_TooFewValues(t *testing.T) {
	tbl := testutil.Movies(t)
	before := tbl.Clone()

	err := tbl.SetValues([]table.Value{table.Int(1)}, table.Col(2))
	require.Error(t, err)
	assert.True(t, table.IsIndex(err))
	testutil.RequireRowsEqual(t, before.Rows(), tbl.Rows())

	err = tbl.SetValues(nil, table.Named("missing"))
	assert.True(t, table.IsLookup(err))
}

func TestGetRowsByNumber(t *testing.T) {
	tbl := testutil.Movies(t)
	all := tbl.Rows()

	tests := []struct {
		name  string
		start int
		opts  []table.ReadOption
		want  []table.Row
	}{
		{name: "single row default", start: 1, want: all[1:2]},
		{name: "range", start: 0, opts: []table.ReadOption{table.WithStop(2)}, want: all[0:2]},
		{name: "to end", start: 1, opts: []table.ReadOption{table.WithStop(3)}, want: all[1:3]},
		{name: "stop clamped", start: 2, opts: []table.ReadOption{table.WithStop(100)}, want: all[2:3]},
		{name: "start past end", start: 10, want: []table.Row{}},
		{name: "negative start clamped", start: -5, opts: []table.ReadOption{table.WithStop(1)}, want: all[0:1]},
		{name: "stop before start", start: 2, opts: []table.ReadOption{table.WithStop(1)}, want: []table.Row{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.GetRowsByNumber(tt.start, tt.opts...)
			testutil.RequireRowsEqual(t, tt.want, got)
		})
	}
}

func TestGetRowsByNumber_Aliasing(t *testing.T) {
	tbl := testutil.Movies(t)

	live := tbl.GetRowsByNumber(0)
	live[0][0] = table.Text("changed")
	v, _ := tbl.GetValue(table.Col(0))
	assert.Equal(t, table.Text("changed"), v, "rows without copy alias the table")

	copied := tbl.GetRowsByNumber(0, table.WithCopy())
	copied[0][0] = table.Text("detached")
	v, _ = tbl.GetValue(table.Col(0))
	assert.Equal(t, table.Text("changed"), v, "copied rows do not alias the table")
}

func TestGetRowsByNumber_AppendDoesNotClobber(t *testing.T) {
	tbl := testutil.Movies(t)

	head := tbl.GetRowsByNumber(0)
	_ = append(head, table.TextRow("x", "y", "z", "w"))

	second := tbl.GetRowsByNumber(1)[0]
	assert.Equal(t, table.Text("Forrest Gump"), second[0])
}

func TestGetRowsByIndex(t *testing.T) {
	tbl := testutil.Movies(t)

	rows, err := tbl.GetRowsByIndex(table.Col(0), []table.Value{table.Text("The Godfather"), table.Text("Forrest Gump")})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, table.Text("Forrest Gump"), rows[0][0], "table order is kept")
	assert.Equal(t, table.Text("The Godfather"), rows[1][0])

	rows, err = tbl.GetRowsByIndex(table.Named("Year"), []table.Value{table.Int(1994)})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = tbl.GetRowsByIndex(table.Named("Year"), []table.Value{table.Float(1972)})
	require.NoError(t, err)
	assert.Len(t, rows, 1, "ints and floats compare numerically")

	rows, err = tbl.GetRowsByIndex(table.Col(0), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = tbl.GetRowsByIndex(table.Named("Director"), []table.Value{table.Text("x")})
	assert.True(t, table.IsLookup(err))
}

func TestGetRowsByIndex_Copy(t *testing.T) {
	tbl := testutil.Movies(t)

	rows, err := tbl.GetRowsByIndex(table.Col(0), []table.Value{table.Text("Forrest Gump")}, table.WithCopy())
	require.NoError(t, err)
	rows[0][3] = table.Float(0)

	score, err := tbl.GetValues(table.Named("Score"))
	require.NoError(t, err)
	assert.Equal(t, table.Float(8.6), score[1])
}

func TestGetValues(t *testing.T) {
	tbl := testutil.Movies(t)

	got, err := tbl.GetValues(table.Named("Genre"))
	require.NoError(t, err)
	assert.Equal(t, table.TextRow("Thriller", "Romance", "Drama"), table.Row(got))

	got, err = tbl.GetValues(table.Col(0))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = tbl.GetValues(table.Col(-1))
	assert.True(t, table.IsIndex(err))

	got, err = table.New("a").GetValues(table.Col(0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetValue(t *testing.T) {
	tbl := testutil.Movies(t)

	v, err := tbl.GetValue(table.Col(0))
	require.NoError(t, err)
	assert.Equal(t, table.Text("The Shawshank Redemption"), v)

	_, err = table.New("a").GetValue(table.Col(0))
	assert.True(t, table.IsIndex(err))

	_, err = tbl.GetValue(table.Named("nope"))
	assert.True(t, table.IsLookup(err))
}

func TestDuplicateColumnNames_FirstWins(t *testing.T) {
	tbl := table.New("x", "x")
	require.NoError(t, tbl.AddRow(table.Row{table.Int(1), table.Int(2)}))

	v, err := tbl.GetValue(table.Named("x"))
	require.NoError(t, err)
	assert.Equal(t, table.Int(1), v)
}

func TestPrint(t *testing.T) {
	tbl := table.New("Title", "Year")
	require.NoError(t, tbl.AddRow(table.Row{table.Text("Shrek"), table.Int(2001)}))
	require.NoError(t, tbl.AddRow(table.Row{table.Text("Zootopia"), table.Float(2016)}))

	want := "Title | Year\n" +
		"--------------------------------------------------\n" +
		"Shrek | 2001\n" +
		"Zootopia | 2016.0\n"
	assert.Equal(t, want, tbl.String())
}
