// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every [ValidationError] via [errors.Is].
var ErrValidation = errors.New("validation failed")

// Reasons reported in [ValidationError.Reason].
var (
	ErrEmptyValue     = errors.New("value is required")
	ErrInvalidURL     = errors.New("please enter a valid URL")
	ErrUnsupportedURL = errors.New("URL must use http or https")
	ErrMissingHost    = errors.New("URL must include a host")
)

// ValidationError reports malformed user input caught before any network
// call is made.
type ValidationError struct {
	// Field is the name of the offending input (e.g. "url", "username").
	Field string
	// Reason is the rule that was violated.
	Reason error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

// Unwrap returns the violated rule so callers can match it with [errors.Is].
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Is reports whether target is [ErrValidation].
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
