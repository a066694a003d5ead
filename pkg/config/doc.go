// Package config provides configuration management for tabula.
//
// A single Config structure carries every setting, split into sections:
//
//   - Storage: default save format, rows per file, compression
//   - Formats: CSV delimiter, Avro block codec
//   - Logging: zap level, encoding and outputs
//   - Metrics: prometheus collector toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig("tabula.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// NewConfig returns the defaults a missing file implies. Load fills any
// struct from YAML and is what LoadConfig uses underneath.
//
// # Environment Variable Substitution
//
//	# tabula.yaml
//	storage:
//	  format: avro
//	  max_rows: ${TABULA_MAX_ROWS}
//
// References to unset variables are replaced by the empty string.
package config
