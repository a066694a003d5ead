// Package formats provides the file encodings tabula can persist tables in.
//
// Each Codec turns a column list plus rows into bytes and back. Formats are
// selected by name on save and by file suffix on load:
//
//	csv   - delimited text; every value comes back as text
//	avro  - Avro object container file; value kinds round-trip exactly
//	arrow - Arrow IPC file; homogeneous columns keep their kind
//	json  - JSON document with tagged cells; value kinds round-trip exactly
package formats

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/VikaVinogradova/PM-24-6/pkg/compression"
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// Format represents a persisted table encoding
type Format string

const (
	// CSV is delimited text with a header record
	CSV Format = "csv"
	// Avro is an Avro object container file
	Avro Format = "avro"
	// Arrow is an Apache Arrow IPC file
	Arrow Format = "arrow"
	// JSON is a JSON document of tagged cells
	JSON Format = "json"
)

// All lists every supported format.
var All = []Format{CSV, Avro, Arrow, JSON}

// Extension returns the file suffix of the format including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// PreservesKinds reports whether decoding returns the value kinds that were
// encoded. Arrow preserves kinds only for homogeneous columns and reports
// false.
func (f Format) PreservesKinds() bool {
	return f == Avro || f == JSON
}

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range All {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrorTypeUnsupportedFormat, "unsupported format %q", s).
		WithDetail("format", s)
}

// Detect returns the format and compression of a file from its suffixes, for
// example "movies_1.csv.zst" is CSV compressed with zstd. Unknown suffixes are
// an unsupported-format error.
func Detect(path string) (Format, compression.Algorithm, error) {
	alg, rest := compression.FromPath(path)
	ext := filepath.Ext(rest)
	if ext == "" {
		return "", alg, errors.Newf(errors.ErrorTypeUnsupportedFormat, "cannot detect format of %q", path).
			WithDetail("file", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", alg, errors.Newf(errors.ErrorTypeUnsupportedFormat, "no codec for suffix %q", ext).
			WithDetail("file", path)
	}
	return f, alg, nil
}

// Codec encodes and decodes one table file.
type Codec interface {
	// Format returns the format the codec handles
	Format() Format
	// Encode writes the columns and rows to w
	Encode(w io.Writer, columns []string, rows []table.Row) error
	// Decode reads columns and rows from r
	Decode(r io.Reader) ([]string, []table.Row, error)
}

// Options configures codecs
type Options struct {
	// Delimiter separates CSV fields
	Delimiter rune
	// AvroCodec is the Avro block compression: null, deflate or snappy
	AvroCodec string
}

// DefaultOptions returns comma-delimited CSV and deflate Avro blocks.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		AvroCodec: "deflate",
	}
}

// New returns the codec for f.
func New(f Format, opts Options) (Codec, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	switch f {
	case CSV:
		return &csvCodec{delimiter: opts.Delimiter}, nil
	case Avro:
		return newAvroCodec(opts.AvroCodec)
	case Arrow:
		return &arrowCodec{}, nil
	case JSON:
		return &jsonCodec{}, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupportedFormat, "unsupported format %q", f).
			WithDetail("format", string(f))
	}
}
