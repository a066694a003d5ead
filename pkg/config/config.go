package config

import (
	"unicode/utf8"

	"github.com/VikaVinogradova/PM-24-6/pkg/compression"
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/formats"
	"github.com/VikaVinogradova/PM-24-6/pkg/logger"
)

// Config is the single configuration structure for tabula. It is organized
// into sections that map to the packages consuming them.
type Config struct {
	// Storage controls how tables are partitioned and written
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Formats holds codec-specific settings
	Formats FormatsConfig `yaml:"formats" json:"formats"`

	// Logging configures the global zap logger
	Logging logger.Config `yaml:"logging" json:"logging"`

	// Metrics toggles the prometheus collector
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// StorageConfig contains the save and load settings.
type StorageConfig struct {
	// Format is the default file format for saves (csv, avro, arrow, json)
	Format string `yaml:"format" json:"format"`
	// MaxRows caps the number of rows written to a single file
	MaxRows int `yaml:"max_rows" json:"max_rows"`
	// Compression wraps each file (none, gzip, zstd, lz4, snappy, s2, deflate)
	Compression string `yaml:"compression" json:"compression"`
	// CompressionLevel sets compression ratio vs speed (1-9, 0 = algorithm default)
	CompressionLevel int `yaml:"compression_level" json:"compression_level"`
}

// FormatsConfig contains codec settings.
type FormatsConfig struct {
	// Delimiter separates CSV fields; it must be a single character
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// AvroCodec is the Avro block compression (null, deflate, snappy)
	AvroCodec string `yaml:"avro_codec" json:"avro_codec"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled activates metrics collection
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// NewConfig creates a Config with the defaults used when no file is given.
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Format:      string(formats.CSV),
			MaxRows:     1000,
			Compression: string(compression.None),
		},
		Formats: FormatsConfig{
			Delimiter: ",",
			AvroCodec: "deflate",
		},
		Logging: logger.Config{
			Level:    "info",
			Encoding: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads path over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()
	if err := Load(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting names something tabula supports.
func (c *Config) Validate() error {
	if _, err := formats.ParseFormat(c.Storage.Format); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "storage.format is invalid")
	}
	if c.Storage.MaxRows <= 0 {
		return errors.Newf(errors.ErrorTypeConfig, "storage.max_rows must be positive, got %d", c.Storage.MaxRows)
	}
	if _, err := compression.ParseAlgorithm(c.Storage.Compression); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "storage.compression is invalid")
	}
	if c.Storage.CompressionLevel < 0 || c.Storage.CompressionLevel > 9 {
		return errors.Newf(errors.ErrorTypeConfig, "storage.compression_level must be between 0 and 9, got %d",
			c.Storage.CompressionLevel)
	}
	if utf8.RuneCountInString(c.Formats.Delimiter) != 1 {
		return errors.Newf(errors.ErrorTypeConfig, "formats.delimiter must be a single character, got %q",
			c.Formats.Delimiter)
	}
	switch c.Formats.AvroCodec {
	case "null", "deflate", "snappy":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "formats.avro_codec must be null, deflate or snappy, got %q",
			c.Formats.AvroCodec)
	}
	return nil
}

// FormatOptions returns the codec options described by the Formats section.
func (c *Config) FormatOptions() formats.Options {
	opts := formats.DefaultOptions()
	if r, size := utf8.DecodeRuneInString(c.Formats.Delimiter); size > 0 {
		opts.Delimiter = r
	}
	if c.Formats.AvroCodec != "" {
		opts.AvroCodec = c.Formats.AvroCodec
	}
	return opts
}

// Algorithm returns the configured compression, falling back to None.
func (s *StorageConfig) Algorithm() compression.Algorithm {
	alg, err := compression.ParseAlgorithm(s.Compression)
	if err != nil {
		return compression.None
	}
	return alg
}

// Level returns the configured compression level.
func (s *StorageConfig) Level() compression.Level {
	if s.CompressionLevel == 0 {
		return compression.Default
	}
	return compression.Level(s.CompressionLevel)
}
