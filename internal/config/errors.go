package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid draft service configuration")
	ErrLoadConfig    = errors.New("draft service configuration could not be loaded")
)
