// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New(ctx) to build a Config with defaults, Load(ctx) to layer
//     file and environment overrides on top.
//   - All future functions must accept context.Context as the first parameter.
//   - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string `koanf:"cors_origins"`

	// MaxSuggestions caps the number of ranked candidates returned.
	MaxSuggestions int `koanf:"max_suggestions"`

	// RunWindow sets how many recent picks feed run-pressure detection.
	RunWindow int `koanf:"run_window"`

	// DedupeSize sets the size of the pick-event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// PoolCapacity pre-sizes the candidate pool store.
	PoolCapacity int `koanf:"pool_capacity"`

	// CallerTeam labels the roster the engine optimizes for.
	CallerTeam string `koanf:"caller_team"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":9080",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		MaxSuggestions:    40,
		RunWindow:         10,
		DedupeSize:        4096,
		PoolCapacity:      512,
		CallerTeam:        "ME",
		ShutdownTimeoutMS: 5000,
	}
}
