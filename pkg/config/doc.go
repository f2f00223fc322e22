// Package config provides configuration management for slotgen.
//
// Configuration is read from a YAML file (slotgen.yaml by default), completed
// with defaults, overridden from the environment, and validated.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("slotgen.yaml")               // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("slotgen.yaml") // file + env
//
// A missing slotgen.yaml is not an error for LoadConfigWithEnvOverrides: the
// defaults are used. Any other missing path is.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SLOTGEN_SECTION_FIELD:
//
//   - SLOTGEN_DEFINITIONS_PATH overrides definitions.path
//   - SLOTGEN_GENERATOR_SEED overrides generator.seed
//   - SLOTGEN_CORPUS_SQLITE_DRIVER overrides corpus.sqlite.driver
//   - SLOTGEN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Command-line flags (applied by the CLI)
//
// # Example
//
//	definitions:
//	  path: stories.txt
//	generator:
//	  seed: 42
//	corpus:
//	  backend: sqlite
//	  sqlite:
//	    path: data/corpora.db
//	    driver: sqlite
//	reload:
//	  watch: true
//	  schedule: "*/5 * * * *"
//	server:
//	  listen_address: 0.0.0.0:8080
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
package config
