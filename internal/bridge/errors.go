// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelUnavailable is returned when the bridge was disposed or runs
	// on the no-op transport, so a request can never be answered.
	ErrChannelUnavailable = errors.New("bridge channel unavailable")
	// ErrTimeout is returned by SendRequest when no response arrived in time.
	ErrTimeout = errors.New("bridge request timed out")
	// ErrCorrelationConflict is returned by SendRequest when the generated
	// correlation id is already pending. The older request is kept.
	ErrCorrelationConflict = errors.New("correlation id already pending")
	// ErrQueueFull is returned by Send when the outbound queue is full. The
	// message is dropped.
	ErrQueueFull = errors.New("bridge outbound queue full")
	// ErrEmptyCommand is returned when a message has no command.
	ErrEmptyCommand = errors.New("message command is empty")
	// ErrNotARequest is returned by Respond for messages without a
	// correlation id.
	ErrNotARequest = errors.New("message carries no correlation id")
	// ErrInvalidPayload marks payloads that failed decoding or validation.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrTransportClosed is returned by transports after Close.
	ErrTransportClosed = errors.New("transport closed")
)

// RemoteError is returned by SendRequest when the peer answered with an
// error instead of a result.
type RemoteError struct {
	Command string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Command, e.Message)
}
