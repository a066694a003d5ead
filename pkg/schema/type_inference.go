// Package schema suggests value kinds for table columns by looking at what
// their text looks like.
//
// Table.AutoDetectColumnTypes only reports the kinds values already hold, so
// a freshly loaded CSV file is all text. The TypeInferenceEngine parses the
// text lexically and proposes conversions that Table.SetColumnTypes can
// apply.
package schema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// TypeInferenceEngine provides lexical type detection for text columns
type TypeInferenceEngine struct {
	logger *zap.Logger

	// Format detection patterns
	datePatterns []*regexp.Regexp
	emailPattern *regexp.Regexp
	urlPattern   *regexp.Regexp
	uuidPattern  *regexp.Regexp

	// Configuration
	confidenceThreshold float64
}

// InferredType represents a type inference result with confidence
type InferredType struct {
	Column        string        `json:"column"`
	Kind          table.Kind    `json:"kind"`
	Format        string        `json:"format,omitempty"`
	Confidence    float64       `json:"confidence"`
	Nullable      bool          `json:"nullable"`
	Cardinality   int           `json:"cardinality"`
	Examples      []string      `json:"examples,omitempty"`
	NumericStats  *NumericStats `json:"numeric_stats,omitempty"`
	StringStats   *StringStats  `json:"string_stats,omitempty"`
	TemporalStats *TemporalStats `json:"temporal_stats,omitempty"`
}

// NumericStats holds statistics for numeric columns
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// StringStats holds statistics for text columns
type StringStats struct {
	MinLength int     `json:"min_length"`
	MaxLength int     `json:"max_length"`
	AvgLength float64 `json:"avg_length"`
}

// TemporalStats holds statistics for timestamp columns
type TemporalStats struct {
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// Option configures a TypeInferenceEngine.
type Option func(*TypeInferenceEngine)

// WithConfidenceThreshold sets the share of non-empty values that must agree
// on a kind before it is reported. The default is 0.95.
func WithConfidenceThreshold(threshold float64) Option {
	return func(e *TypeInferenceEngine) { e.confidenceThreshold = threshold }
}

// NewTypeInferenceEngine creates a new type inference engine
func NewTypeInferenceEngine(logger *zap.Logger, opts ...Option) *TypeInferenceEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := &TypeInferenceEngine{
		logger:              logger,
		confidenceThreshold: 0.95,
	}
	for _, opt := range opts {
		opt(engine)
	}

	engine.initializePatterns()

	return engine
}

// InferTable infers every column of t, in column order.
func (e *TypeInferenceEngine) InferTable(t *table.Table) []*InferredType {
	columns := t.Columns()
	out := make([]*InferredType, len(columns))
	for i, name := range columns {
		values, err := t.GetValues(table.Col(i))
		if err != nil {
			// Col(i) is always in range here
			continue
		}
		out[i] = e.InferColumn(name, values)
	}
	return out
}

// InferColumn infers the kind of one column. Values that already hold a
// non-text kind count as that kind; empty text counts as null.
func (e *TypeInferenceEngine) InferColumn(name string, values []table.Value) *InferredType {
	inferred := &InferredType{Column: name, Kind: table.KindText}
	if len(values) == 0 {
		inferred.Nullable = true
		return inferred
	}

	kindCounts := make(map[table.Kind]int)
	nonNull := make([]table.Value, 0, len(values))
	for _, v := range values {
		if s, ok := v.AsText(); ok && strings.TrimSpace(s) == "" {
			inferred.Nullable = true
			continue
		}
		nonNull = append(nonNull, v)
		kindCounts[e.detectValueKind(v)]++
	}
	if len(nonNull) == 0 {
		return inferred
	}

	// Find dominant kind
	dominant, maxCount := table.KindText, 0
	for _, k := range []table.Kind{table.KindInt, table.KindFloat, table.KindTimestamp, table.KindText} {
		if kindCounts[k] > maxCount {
			dominant, maxCount = k, kindCounts[k]
		}
	}

	// Integers widen to floats when a column mixes the two
	if numeric := kindCounts[table.KindInt] + kindCounts[table.KindFloat]; kindCounts[table.KindFloat] > 0 && numeric > maxCount {
		dominant, maxCount = table.KindFloat, numeric
	}

	inferred.Confidence = float64(maxCount) / float64(len(nonNull))
	if inferred.Confidence < e.confidenceThreshold && len(kindCounts) > 1 {
		// Mixed kinds, default to text
		dominant = table.KindText
		inferred.Confidence = float64(kindCounts[table.KindText]) / float64(len(nonNull))
	}
	inferred.Kind = dominant
	inferred.Cardinality, inferred.Examples = uniqueValues(nonNull)

	e.addStatistics(inferred, nonNull)
	inferred.Format = e.detectFormat(nonNull)

	e.logger.Debug("column inferred",
		zap.String("column", name),
		zap.Stringer("kind", inferred.Kind),
		zap.String("format", inferred.Format),
		zap.Float64("confidence", inferred.Confidence),
		zap.Bool("nullable", inferred.Nullable))

	return inferred
}

// Suggest returns the conversions SetColumnTypes can apply without failing:
// columns held as text whose every value parses as one non-text kind.
// Columns with empty values are skipped.
func (e *TypeInferenceEngine) Suggest(t *table.Table) map[table.Column]table.Kind {
	current := t.AutoDetectColumnTypes()
	suggestions := make(map[table.Column]table.Kind)
	if t.Len() == 0 {
		return suggestions
	}
	for i, inferred := range e.InferTable(t) {
		if inferred == nil || inferred.Nullable || inferred.Confidence < 1 {
			continue
		}
		if inferred.Kind == table.KindText || inferred.Kind == current[i] {
			continue
		}
		suggestions[table.Col(i)] = inferred.Kind
	}
	return suggestions
}

// Apply converts the columns Suggest returns and reports what it changed.
func (e *TypeInferenceEngine) Apply(t *table.Table) (map[table.Column]table.Kind, error) {
	suggestions := e.Suggest(t)
	if len(suggestions) == 0 {
		return suggestions, nil
	}
	if err := t.SetColumnTypes(suggestions); err != nil {
		return nil, err
	}
	e.logger.Info("column types applied", zap.Int("columns", len(suggestions)))
	return suggestions, nil
}

// detectValueKind detects the kind a single value could be converted to
func (e *TypeInferenceEngine) detectValueKind(v table.Value) table.Kind {
	s, ok := v.AsText()
	if !ok {
		return v.Kind()
	}
	s = strings.TrimSpace(s)
	switch {
	case isInteger(s):
		return table.KindInt
	case isFloat(s):
		return table.KindFloat
	case isTimestamp(s):
		return table.KindTimestamp
	default:
		return table.KindText
	}
}

// detectFormat names a special format shared by at least 80% of the values
func (e *TypeInferenceEngine) detectFormat(values []table.Value) string {
	formatCounts := make(map[string]int)
	for _, v := range values {
		s, ok := v.AsText()
		if !ok {
			continue
		}
		if format := e.formatOf(strings.TrimSpace(s)); format != "" {
			formatCounts[format]++
		}
	}

	var dominantFormat string
	maxCount := 0
	threshold := int(float64(len(values)) * 0.8)
	for format, count := range formatCounts {
		if count > maxCount && count >= threshold {
			dominantFormat, maxCount = format, count
		}
	}
	return dominantFormat
}

func (e *TypeInferenceEngine) formatOf(s string) string {
	for _, pattern := range e.datePatterns {
		if pattern.MatchString(s) {
			return "date"
		}
	}
	if isTimestamp(s) {
		return "timestamp"
	}
	if e.emailPattern.MatchString(s) {
		return "email"
	}
	if e.urlPattern.MatchString(s) {
		return "url"
	}
	if e.uuidPattern.MatchString(s) {
		return "uuid"
	}
	return ""
}

// addStatistics adds statistics for the inferred kind
func (e *TypeInferenceEngine) addStatistics(inferred *InferredType, values []table.Value) {
	switch inferred.Kind {
	case table.KindInt, table.KindFloat:
		inferred.NumericStats = numericStats(values)
	case table.KindTimestamp:
		inferred.TemporalStats = temporalStats(values)
	default:
		inferred.StringStats = stringStats(values)
	}
}

// initializePatterns initializes regex patterns for format detection
func (e *TypeInferenceEngine) initializePatterns() {
	e.datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), // YYYY-MM-DD
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), // MM/DD/YYYY
		regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), // YYYY/MM/DD
	}
	e.emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	e.urlPattern = regexp.MustCompile(`^https?://[^\s]+$`)
	e.uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat rejects "NaN" and "Inf", which ParseFloat accepts but which are
// more likely words than numbers in a text column.
func isFloat(s string) bool {
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isTimestamp(s string) bool {
	_, err := table.ToTimestamp(table.Text(s))
	return err == nil
}

func numericStats(values []table.Value) *NumericStats {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := table.ToFloat(v)
		if err != nil {
			continue
		}
		n, _ := f.AsFloat()
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return nil
	}

	sort.Float64s(numbers)
	stats := &NumericStats{Min: numbers[0], Max: numbers[len(numbers)-1]}
	sum := 0.0
	for _, n := range numbers {
		sum += n
	}
	stats.Mean = sum / float64(len(numbers))

	mid := len(numbers) / 2
	if len(numbers)%2 == 0 {
		stats.Median = (numbers[mid-1] + numbers[mid]) / 2
	} else {
		stats.Median = numbers[mid]
	}
	return stats
}

func stringStats(values []table.Value) *StringStats {
	stats := &StringStats{MinLength: int(^uint(0) >> 1)}
	total := 0
	for _, v := range values {
		n := len(v.String())
		if n < stats.MinLength {
			stats.MinLength = n
		}
		if n > stats.MaxLength {
			stats.MaxLength = n
		}
		total += n
	}
	stats.AvgLength = float64(total) / float64(len(values))
	return stats
}

func temporalStats(values []table.Value) *TemporalStats {
	stats := &TemporalStats{}
	first := true
	for _, v := range values {
		ts, err := table.ToTimestamp(v)
		if err != nil {
			continue
		}
		t, _ := ts.AsTime()
		if first || t.Before(stats.MinDate) {
			stats.MinDate = t
		}
		if first || t.After(stats.MaxDate) {
			stats.MaxDate = t
		}
		first = false
	}
	return stats
}

// uniqueValues returns the number of distinct renderings and up to five
// examples in first-seen order.
func uniqueValues(values []table.Value) (int, []string) {
	seen := make(map[string]bool)
	var examples []string
	for _, v := range values {
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if len(examples) < 5 {
			examples = append(examples, key)
		}
	}
	return len(seen), examples
}
