package config_test

import (
	"fmt"
	"log"

	"github.com/VikaVinogradova/PM-24-6/pkg/config"
)

// ExampleNewConfig demonstrates the defaults used when no file is given.
func ExampleNewConfig() {
	cfg := config.NewConfig()

	fmt.Printf("Format: %s\n", cfg.Storage.Format)
	fmt.Printf("Max Rows: %d\n", cfg.Storage.MaxRows)
	fmt.Printf("Compression: %s\n", cfg.Storage.Algorithm())

	// Output:
	// Format: csv
	// Max Rows: 1000
	// Compression: none
}

// ExampleConfig_Validate shows how to validate a configuration
// before using it.
func ExampleConfig_Validate() {
	cfg := config.NewConfig()
	cfg.Storage.Format = "avro"
	cfg.Storage.MaxRows = 2

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Storage.MaxRows = 0
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// config: storage.max_rows must be positive, got 0
}
