// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"context"
	"fmt"
	"time"
)

// Validator is implemented by payload types that check their own contents.
type Validator interface {
	Validate() error
}

// Handle registers a typed handler for command. The payload is decoded
// strictly into T and validated before fn runs. Invalid payloads never reach
// fn; correlated ones are answered with an error.
func Handle[T any](b *Bridge, command string, fn func(ctx context.Context, msg Message, payload T) error) (unsubscribe func()) {
	return b.OnMessage(command, func(ctx context.Context, msg Message) error {
		payload, err := decodePayload[T](msg)
		if err != nil {
			b.logger.Warn().Err(err).Str("command", msg.Command()).Msg("invalid payload dropped")
			if msg.CorrelationID() != "" {
				return b.RespondError(msg, err)
			}
			return nil
		}

		return fn(ctx, msg, payload)
	})
}

// Request sends a correlated request and decodes the response into T.
func Request[T any](ctx context.Context, b *Bridge, command string, data any, timeout time.Duration) (T, error) {
	var out T

	msg, err := b.SendRequest(ctx, command, data, timeout)
	if err != nil {
		return out, err
	}

	return decodePayload[T](msg)
}

func decodePayload[T any](msg Message) (T, error) {
	var payload T
	if err := msg.Decode(&payload); err != nil {
		return payload, err
	}

	if v, ok := any(payload).(Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, msg.Command(), err)
		}
	} else if v, ok := any(&payload).(Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, msg.Command(), err)
		}
	}

	return payload, nil
}
