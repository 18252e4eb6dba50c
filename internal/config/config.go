// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults, then layer file and env.
// - External errors must be wrapped via this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the employee CSV loaded once at startup.
	DatasetPath string `koanf:"dataset_path"`

	// MaxListLimit caps ad-hoc ?limit= overrides on ranking endpoints.
	MaxListLimit int `koanf:"max_list_limit"`

	// LoadQueueSize bounds the row queue used during the dataset load.
	LoadQueueSize int `koanf:"load_queue_size"`

	// LoadWorkerCount sets the number of derivation workers for the load.
	LoadWorkerCount int `koanf:"load_worker_count"`

	// SessionSlotLimit caps how many concurrent session evaluation slots are kept.
	SessionSlotLimit int `koanf:"session_slot_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		DatasetPath:      "employee_data.csv",
		MaxListLimit:     100,
		LoadQueueSize:    10_000,
		LoadWorkerCount:  runtime.NumCPU() * 2,
		SessionSlotLimit: 10_000,
	}
}
