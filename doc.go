// Package tabula is a small in-memory table library with pluggable file
// formats.
//
// A table is an ordered list of column names plus a list of rows. Every
// cell holds a Value of one of four kinds: text, int, float or timestamp.
// Columns are addressed by position or by name:
//
//	t := table.New("Title", "Year")
//	_ = t.AddRow(table.Row{table.Text("Shrek"), table.Int(2001)})
//	years, _ := t.GetValues(table.Named("Year"))
//
// # Packages
//
//   - pkg/table holds the Table, Value and Row types together with row and
//     column access, type coercion, Concat and Split.
//   - pkg/formats encodes tables as CSV, Avro, Arrow IPC or JSON.
//   - pkg/compression wraps file streams in gzip, zstd, lz4, snappy, s2 or
//     deflate.
//   - pkg/storage saves a table as numbered chunk files and loads them back,
//     picking the format and compression from the file suffix.
//   - pkg/schema suggests column kinds by parsing text values.
//   - pkg/config, pkg/logger, pkg/metrics and pkg/observability carry the
//     YAML configuration, zap logging, Prometheus counters and OpenTelemetry
//     spans used by the storage layer.
//
// The tabula command in cmd/tabula exposes loading, printing, conversion,
// splitting and concatenation from the command line:
//
//	tabula show movies_1.csv
//	tabula convert movies.csv --out movies --format avro --compression zstd
//	tabula split movies.csv --at 2 --out movies
//	tabula demo
package tabula
