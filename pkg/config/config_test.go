package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VikaVinogradova/PM-24-6/pkg/compression"
	"github.com/VikaVinogradova/PM-24-6/pkg/config"
	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/testutil"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "csv", cfg.Storage.Format)
	assert.Equal(t, 1000, cfg.Storage.MaxRows)
	assert.Equal(t, compression.None, cfg.Storage.Algorithm())
	assert.Equal(t, compression.Default, cfg.Storage.Level())

	opts := cfg.FormatOptions()
	assert.Equal(t, ',', opts.Delimiter)
	assert.Equal(t, "deflate", opts.AvroCodec)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown format", func(c *config.Config) { c.Storage.Format = "xlsx" }},
		{"zero max rows", func(c *config.Config) { c.Storage.MaxRows = 0 }},
		{"negative max rows", func(c *config.Config) { c.Storage.MaxRows = -5 }},
		{"unknown compression", func(c *config.Config) { c.Storage.Compression = "brotli" }},
		{"level too high", func(c *config.Config) { c.Storage.CompressionLevel = 12 }},
		{"empty delimiter", func(c *config.Config) { c.Formats.Delimiter = "" }},
		{"long delimiter", func(c *config.Config) { c.Formats.Delimiter = "::" }},
		{"unknown avro codec", func(c *config.Config) { c.Formats.AvroCodec = "bzip2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TABULA_TEST_CODEC", "snappy")
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tabula.yaml", `
storage:
  format: avro
  max_rows: 2
  compression: zstd
  compression_level: 9
formats:
  delimiter: ";"
  avro_codec: ${TABULA_TEST_CODEC}
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "avro", cfg.Storage.Format)
	assert.Equal(t, 2, cfg.Storage.MaxRows)
	assert.Equal(t, compression.Zstd, cfg.Storage.Algorithm())
	assert.Equal(t, compression.Best, cfg.Storage.Level())
	assert.Equal(t, ';', cfg.FormatOptions().Delimiter)
	assert.Equal(t, "snappy", cfg.Formats.AvroCodec)

	// Sections absent from the file keep their defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	path := testutil.WriteFile(t, dir, "bad.yaml", "storage:\n  max_rows: 0\n")
	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	path = testutil.WriteFile(t, dir, "broken.yaml", "storage: [unclosed\n")
	_, err = config.LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = config.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.Format = "arrow"
	cfg.Storage.Compression = "lz4"
	cfg.Logging.OutputPaths = []string{"stdout"}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
