// Package storage loads tables from files and saves them in row-capped
// chunks.
//
// The file format is chosen by name on save and detected from the suffix on
// load. An optional compression suffix (".gz", ".zst", ...) wraps any format:
//
//	store, _ := storage.New(config.NewConfig(), storage.WithLogger(log))
//	files, err := store.Save(ctx, movies, 2, "out/movies", formats.Avro)
//	// files: out/movies_1.avro, out/movies_2.avro
//	tables, err := store.Load(ctx, files...)
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/VikaVinogradova/PM-24-6/pkg/compression"
	"github.com/VikaVinogradova/PM-24-6/pkg/config"
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/formats"
	"github.com/VikaVinogradova/PM-24-6/pkg/logger"
	"github.com/VikaVinogradova/PM-24-6/pkg/metrics"
	"github.com/VikaVinogradova/PM-24-6/pkg/observability"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// Store reads and writes table files. A Store holds no per-call state and
// may be shared between goroutines; the tables passed to it may not.
type Store struct {
	options   formats.Options
	algorithm compression.Algorithm
	level     compression.Level

	logger  *zap.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default is the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Store) { s.metrics = c }
}

// WithTracer sets the tracer; the default comes from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// New creates a Store from the Formats and Storage sections of cfg. A nil
// cfg means config.NewConfig. A collector is created when metrics are
// enabled and none is given.
func New(cfg *config.Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		options:   cfg.FormatOptions(),
		algorithm: cfg.Storage.Algorithm(),
		level:     cfg.Storage.Level(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("storage")
	if s.metrics == nil && cfg.Metrics.Enabled {
		s.metrics = metrics.NewCollector()
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer()
	}
	return s, nil
}

// Metrics returns the store's collector, or nil when metrics are disabled.
func (s *Store) Metrics() *metrics.Collector {
	return s.metrics
}

// Compression returns the algorithm applied to saved files.
func (s *Store) Compression() compression.Algorithm {
	return s.algorithm
}

// Load reads one table per path, in order. Every path's format is detected
// before any file is opened, so an unknown suffix fails the call without
// reading anything. Rows go through Table.AddRow; a ragged record surfaces as
// a shape error wrapped with the file name.
func (s *Store) Load(ctx context.Context, paths ...string) (_ []*table.Table, err error) {
	timer := metrics.NewTimer(metrics.OpLoad)
	ctx, span := observability.StartSpan(ctx, s.tracer, "storage.Load")
	span.SetAttribute("files", len(paths))
	defer func() {
		s.finish(metrics.OpLoad, timer, err)
		span.End(err)
	}()

	detected := make([]formats.Format, len(paths))
	algorithms := make([]compression.Algorithm, len(paths))
	for i, path := range paths {
		f, alg, err := formats.Detect(path)
		if err != nil {
			return nil, err
		}
		detected[i], algorithms[i] = f, alg
	}

	tables := make([]*table.Table, 0, len(paths))
	rows := 0
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "load cancelled")
		}

		t, err := s.loadFile(ctx, path, detected[i], algorithms[i])
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
		rows += t.Len()
	}

	span.SetAttribute("rows", rows)
	logger.FromContext(ctx, s.logger).Info("tables loaded",
		zap.Int("files", len(paths)),
		zap.Int("rows", rows))
	return tables, nil
}

func (s *Store) loadFile(ctx context.Context, path string, f formats.Format, alg compression.Algorithm) (*table.Table, error) {
	log := logger.FromContext(ctx, s.logger).With(zap.String("file", path))

	codec, err := formats.New(f, s.options)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // G304: paths come from the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open table file").
			WithDetail("file", path)
	}
	defer file.Close()

	reader, err := compression.NewReader(file, alg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open decompressor").
			WithDetail("file", path).
			WithDetail("compression", string(alg))
	}
	defer reader.Close()

	columns, rows, err := codec.Decode(reader)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to decode table file").
			WithDetail("file", path).
			WithDetail("format", string(f))
	}

	t := table.New(columns...)
	for i, row := range rows {
		if err := t.AddRow(row); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "malformed row in table file").
				WithDetail("file", path).
				WithDetail("row", i)
		}
	}

	if s.metrics != nil {
		s.metrics.RowsLoaded(string(f), t.Len())
	}
	log.Debug("file loaded",
		zap.String("format", string(f)),
		zap.String("compression", string(alg)),
		zap.Int("rows", t.Len()))
	return t, nil
}

// Save writes t in consecutive chunks of at most maxRows rows to
// stem_1.ext, stem_2.ext, ... and returns the names written, in order. The
// extension is the format's suffix followed by the store's compression
// suffix. An empty table writes nothing. Missing parent directories of stem
// are created.
func (s *Store) Save(ctx context.Context, t *table.Table, maxRows int, stem string, f formats.Format) (_ []string, err error) {
	timer := metrics.NewTimer(metrics.OpSave)
	ctx, span := observability.StartSpan(ctx, s.tracer, "storage.Save")
	span.SetAttribute("format", string(f))
	span.SetAttribute("max_rows", maxRows)
	defer func() {
		s.finish(metrics.OpSave, timer, err)
		span.End(err)
	}()

	if maxRows <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "maxRows must be positive, got %d", maxRows).
			WithDetail("max_rows", maxRows)
	}
	codec, err := formats.New(f, s.options)
	if err != nil {
		return nil, err
	}

	rows := t.Rows()
	files := make([]string, 0, (len(rows)+maxRows-1)/maxRows)
	if len(rows) == 0 {
		return files, nil
	}
	if dir := filepath.Dir(stem); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory").
				WithDetail("dir", dir)
		}
	}

	columns := t.Columns()
	for start, n := 0, 1; start < len(rows); start, n = start+maxRows, n+1 {
		if err := ctx.Err(); err != nil {
			return files, errors.Wrap(err, errors.ErrorTypeInternal, "save cancelled")
		}

		end := start + maxRows
		if end > len(rows) {
			end = len(rows)
		}
		name := ChunkName(stem, n, f, s.algorithm)
		if err := s.saveFile(name, codec, columns, rows[start:end]); err != nil {
			return files, err
		}
		files = append(files, name)

		if s.metrics != nil {
			s.metrics.RowsSaved(string(f), end-start)
		}
		logger.FromContext(ctx, s.logger).Debug("chunk written",
			zap.String("file", name),
			zap.Int("rows", end-start))
	}

	span.SetAttribute("files", files)
	logger.FromContext(ctx, s.logger).Info("table saved",
		zap.String("format", string(f)),
		zap.String("compression", string(s.algorithm)),
		zap.Int("rows", len(rows)),
		zap.Int("files", len(files)))
	return files, nil
}

// ChunkName returns the file name Save uses for the n-th chunk (1-based).
func ChunkName(stem string, n int, f formats.Format, alg compression.Algorithm) string {
	return fmt.Sprintf("%s_%d%s%s", stem, n, f.Extension(), alg.Extension())
}

// saveFile writes one chunk. The file is removed again if any step fails.
func (s *Store) saveFile(name string, codec formats.Codec, columns []string, rows []table.Row) (err error) {
	file, err := os.Create(name) //nolint:gosec // G304: name is derived from the caller's stem
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create table file").
			WithDetail("file", name)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrorTypeFile, "failed to close table file").
				WithDetail("file", name)
		}
		if err != nil {
			// A partial chunk is not in the returned list, so it must not stay behind.
			_ = os.Remove(name)
		}
	}()

	writer, err := compression.NewWriter(file, s.algorithm, s.level)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to open compressor").
			WithDetail("file", name)
	}
	if err := codec.Encode(writer, columns, rows); err != nil {
		_ = writer.Close()
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to encode table file").
			WithDetail("file", name)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush compressor").
			WithDetail("file", name)
	}
	return nil
}

func (s *Store) finish(op string, timer *metrics.Timer, err error) {
	elapsed := timer.Stop()
	if s.metrics != nil {
		s.metrics.ObserveDuration(op, elapsed)
		if err != nil {
			s.metrics.Error(op)
		}
	}
	if err != nil {
		s.logger.Warn("storage operation failed",
			zap.String("operation", op),
			zap.Duration("duration", elapsed),
			zap.Error(err))
	}
}
