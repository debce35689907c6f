// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/session"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// DefaultPromptTimeout gives the user time to type credentials.
const DefaultPromptTimeout = 5 * time.Minute

// BridgePrompter asks the UI for credentials with a promptCredentials
// request.
type BridgePrompter struct {
	bridge  *bridge.Bridge
	timeout time.Duration
}

func NewBridgePrompter(b *bridge.Bridge, timeout time.Duration) *BridgePrompter {
	if timeout <= 0 {
		timeout = DefaultPromptTimeout
	}
	return &BridgePrompter{bridge: b, timeout: timeout}
}

// PromptCredentials implements session.Prompter. A prompt the UI declined or
// left unanswered counts as cancelled.
func (p *BridgePrompter) PromptCredentials(ctx context.Context, needURL bool, currentURL string) (models.Credentials, error) {
	req := models.PromptCredentials{NeedURL: needURL, URL: currentURL}

	creds, err := bridge.Request[models.Credentials](ctx, p.bridge, models.CommandPromptCredentials, req, p.timeout)
	if err == nil {
		return creds, nil
	}

	var remote *bridge.RemoteError
	if errors.As(err, &remote) || errors.Is(err, bridge.ErrTimeout) {
		return models.Credentials{}, fmt.Errorf("%w: %w", session.ErrPromptCancelled, err)
	}
	return models.Credentials{}, err
}
