// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the authentication lifecycle: restoring a stored
// token on startup, prompting for credentials, logging in and out, and
// reacting to the backend rejecting the token.
package session

import (
	"context"

	"github.com/MKhiriev/submitty-sidebar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// SettingsRepository persists the Submitty base URL.
type SettingsRepository interface {
	BaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, baseURL string) error
}

// Prompter asks the user for credentials. needURL is set when no base URL is
// configured; currentURL is the configured one otherwise. Implementations
// return ErrPromptCancelled when the user dismisses the prompt.
type Prompter interface {
	PromptCredentials(ctx context.Context, needURL bool, currentURL string) (models.Credentials, error)
}
