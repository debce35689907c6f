// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRejected marks an authenticated request the server refused
	// because the token is missing, expired or revoked.
	ErrAuthRejected = errors.New("authentication rejected")
	// ErrBaseURLNotSet is matched by requests issued before SetBaseURL.
	ErrBaseURLNotSet = errors.New("submitty base URL is not configured")
)

// APIError is the single error shape returned by SubmittyAPI. StatusCode is
// 0 when no HTTP response was received.
type APIError struct {
	StatusCode int
	Message    string

	kind error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("submitty api: %s", e.Message)
	}
	return fmt.Sprintf("submitty api: %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the error kind (ErrAuthRejected, ErrBaseURLNotSet) when set.
func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

func newAuthRejected(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message, kind: ErrAuthRejected}
}
