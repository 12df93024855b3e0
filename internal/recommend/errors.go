// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"errors"
	"fmt"
)

// UnavailableError indicates a data source (candidate source, interaction
// source) could not be reached. The request fails atomically; no partial
// recommendation is returned.
type UnavailableError struct {
	// Source names the unreachable collaborator.
	Source string

	// Err is the underlying failure.
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// ComputationError indicates an unexpected fault during vectorization,
// similarity computation, or scoring. The request fails atomically.
type ComputationError struct {
	// Stage names the pipeline stage that faulted.
	Stage string

	// Err is the underlying failure.
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("recommendation %s failed: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is (or wraps) an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsComputationFailure reports whether err is (or wraps) a ComputationError.
func IsComputationFailure(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
