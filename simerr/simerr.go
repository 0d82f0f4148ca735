// Package simerr defines the sentinel error types returned across the
// simulation: configuration problems discovered at setup time, and
// invariant violations discovered while stepping the lattice.
package simerr

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel wrapped by every ConfigError, allowing
// callers to test for the category with errors.Is(err, simerr.ErrConfig).
var ErrConfig = errors.New("invalid configuration")

// ErrInvariant is the sentinel wrapped by every InvariantError.
var ErrInvariant = errors.New("invariant violated")

// ConfigError reports a problem with user-supplied configuration:
// an unknown model name, a lattice dimension incompatible with the
// chosen model, a negative coarse-graining radius, and similar
// setup-time mistakes that can only be reported, never recovered from.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %q: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// NewConfigError builds a ConfigError for the named field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// InvariantError reports a condition that the implementation treats
// as a programming or data-corruption bug, not a recoverable runtime
// condition, such as the negative cell density the mean-velocity
// reduction checks for. These are
// distinct from the body-force operator's livelock bound, which is an
// expected, non-fatal condition communicated through logging rather
// than an error (see sim.Simulation.Step).
type InvariantError struct {
	What   string
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invariant: %s", e.What)
	}
	return fmt.Sprintf("invariant: %s: %s", e.What, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// NewInvariantError builds an InvariantError.
func NewInvariantError(what, detail string) *InvariantError {
	return &InvariantError{What: what, Detail: detail}
}
