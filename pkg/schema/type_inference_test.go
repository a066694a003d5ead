package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VikaVinogradova/PM-24-6/pkg/table"
	"github.com/VikaVinogradova/PM-24-6/pkg/testutil"
)

func textColumn(values ...string) []table.Value {
	out := make([]table.Value, len(values))
	for i, v := range values {
		out[i] = table.Text(v)
	}
	return out
}

func TestInferColumn(t *testing.T) {
	engine := NewTypeInferenceEngine(testutil.TestLogger(t))

	tests := []struct {
		name       string
		values     []table.Value
		kind       table.Kind
		format     string
		confidence float64
		nullable   bool
	}{
		{"integers", textColumn("1994", "1972", " 2001 "), table.KindInt, "", 1, false},
		{"floats", textColumn("9.3", "8.6", "9.1"), table.KindFloat, "", 1, false},
		{"ints widen to floats", textColumn("8", "8.5", "7.9"), table.KindFloat, "", 1, false},
		{"dates", textColumn("2001-05-18", "2016-03-04"), table.KindTimestamp, "date", 1, false},
		{"timestamps", textColumn("2016-03-04T12:30:00Z", "2001-05-18 00:00:00"), table.KindTimestamp, "timestamp", 1, false},
		{"words", textColumn("Thriller", "Drama"), table.KindText, "", 1, false},
		{"nan is a word", textColumn("NaN", "Inf"), table.KindText, "", 1, false},
		{"emails", textColumn("a@example.com", "b@example.org"), table.KindText, "email", 1, false},
		{"mixed falls back to text", textColumn("1", "two", "3"), table.KindText, "", 1.0 / 3, false},
		{"empty values are nulls", textColumn("1", "", "3"), table.KindInt, "", 1, true},
		{"typed values count as their kind", []table.Value{table.Int(1), table.Text("2")}, table.KindInt, "", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.InferColumn("col", tt.values)
			assert.Equal(t, "col", got.Column)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.format, got.Format)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.nullable, got.Nullable)
		})
	}
}

func TestInferColumn_Empty(t *testing.T) {
	engine := NewTypeInferenceEngine(nil)

	got := engine.InferColumn("col", nil)
	assert.Equal(t, table.KindText, got.Kind)
	assert.True(t, got.Nullable)

	got = engine.InferColumn("col", textColumn("", " "))
	assert.Equal(t, table.KindText, got.Kind)
	assert.True(t, got.Nullable)
	assert.Zero(t, got.Confidence)
}

func TestInferColumn_Statistics(t *testing.T) {
	engine := NewTypeInferenceEngine(testutil.TestLogger(t))

	numeric := engine.InferColumn("score", textColumn("9.3", "8.6", "9.1", "8.6"))
	require.NotNil(t, numeric.NumericStats)
	assert.Equal(t, 8.6, numeric.NumericStats.Min)
	assert.Equal(t, 9.3, numeric.NumericStats.Max)
	assert.InDelta(t, 8.85, numeric.NumericStats.Median, 1e-9)
	assert.Equal(t, 3, numeric.Cardinality)
	assert.Equal(t, []string{"9.3", "8.6", "9.1"}, numeric.Examples)

	temporal := engine.InferColumn("released", textColumn("2016-03-04", "2001-05-18"))
	require.NotNil(t, temporal.TemporalStats)
	assert.Equal(t, time.Date(2001, 5, 18, 0, 0, 0, 0, time.UTC), temporal.TemporalStats.MinDate)
	assert.Equal(t, time.Date(2016, 3, 4, 0, 0, 0, 0, time.UTC), temporal.TemporalStats.MaxDate)

	text := engine.InferColumn("genre", textColumn("Drama", "Romance"))
	require.NotNil(t, text.StringStats)
	assert.Equal(t, 5, text.StringStats.MinLength)
	assert.Equal(t, 7, text.StringStats.MaxLength)
}

func TestConfidenceThreshold(t *testing.T) {
	values := textColumn("1", "2", "3", "x")

	strict := NewTypeInferenceEngine(nil)
	assert.Equal(t, table.KindText, strict.InferColumn("c", values).Kind)

	lenient := NewTypeInferenceEngine(nil, WithConfidenceThreshold(0.7))
	got := lenient.InferColumn("c", values)
	assert.Equal(t, table.KindInt, got.Kind)
	assert.InDelta(t, 0.75, got.Confidence, 1e-9)
}

func TestSuggestAndApply(t *testing.T) {
	engine := NewTypeInferenceEngine(testutil.TestLogger(t))
	tbl := table.New("Title", "Year", "Score", "Released", "Note")
	require.NoError(t, tbl.AddRow(table.TextRow("Shrek", "2001", "7.9", "2001-05-18", "")))
	require.NoError(t, tbl.AddRow(table.TextRow("Zootopia", "2016", "8", "2016-03-04", "sequel")))

	suggestions := engine.Suggest(tbl)
	assert.Equal(t, map[table.Column]table.Kind{
		table.Col(1): table.KindInt,
		table.Col(2): table.KindFloat,
		table.Col(3): table.KindTimestamp,
	}, suggestions)

	applied, err := engine.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, suggestions, applied)
	assert.Equal(t,
		[]table.Kind{table.KindText, table.KindInt, table.KindFloat, table.KindTimestamp, table.KindText},
		tbl.AutoDetectColumnTypes())

	assert.Empty(t, engine.Suggest(tbl), "typed columns need no further conversion")
}

func TestSuggest_TypedAndEmptyTables(t *testing.T) {
	engine := NewTypeInferenceEngine(nil)

	assert.Empty(t, engine.Suggest(testutil.Movies(t)))
	assert.Empty(t, engine.Suggest(table.New("a", "b")))

	applied, err := engine.Apply(table.New("a"))
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestInferTable(t *testing.T) {
	engine := NewTypeInferenceEngine(nil)
	inferred := engine.InferTable(testutil.Releases(t))

	require.Len(t, inferred, 4)
	assert.Equal(t, "Released", inferred[1].Column)
	assert.Equal(t, table.KindTimestamp, inferred[1].Kind)
	assert.Equal(t, table.KindInt, inferred[2].Kind)
	assert.Equal(t, table.KindFloat, inferred[3].Kind)
}
