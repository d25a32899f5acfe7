package config

import "time"

// SimulationConfig selects what to run.
type SimulationConfig struct {
	// Scenario file; empty runs the built-in scenario.
	Scenario string `mapstructure:"scenario"`

	// Periods to simulate; 0 uses the scenario's max_periods.
	Periods int `mapstructure:"periods" validate:"min=0"`

	// Minimum wall time between periods; 0 runs as fast as possible.
	Interval time.Duration `mapstructure:"interval" validate:"min=0s"`

	// Print per-period market status.
	Verbose bool `mapstructure:"verbose"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text, or auto (text on a terminal, json otherwise)
	Format string `mapstructure:"format" validate:"required,oneof=json text auto"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig holds log file rotation configuration.
type RotationConfig struct {
	// Maximum size in megabytes before rotation
	MaxSize int `mapstructure:"max_size" validate:"min=1"`

	// Maximum number of old log files to keep
	MaxBackups int `mapstructure:"max_backups" validate:"min=0"`

	// Maximum age in days before deletion
	MaxAge int `mapstructure:"max_age" validate:"min=0"`

	Compress bool `mapstructure:"compress"`
}

// StoreConfig controls the SQLite run history.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// TraceConfig controls the compressed per-period trace.
type TraceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir" validate:"required_if=Enabled true"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
