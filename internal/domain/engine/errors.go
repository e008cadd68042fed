package engine

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrContract marks a caller-contract violation: the request would
	// corrupt rankings if processed, so the engine fails fast instead.
	ErrContract = errors.New("engine contract violation")
)

func contractErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...))
}
