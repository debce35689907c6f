// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package host is the host side of the sidebar: it receives UI commands
// from the bridge, drives the session and the Submitty API client, and posts
// the results back to the UI.
package host

import (
	"context"

	"github.com/MKhiriev/submitty-sidebar/internal/session"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// Session is the part of the session manager the controller drives.
type Session interface {
	Initialize(ctx context.Context) error
	Prompt(ctx context.Context) error
	Login(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context) error
	HandleError(ctx context.Context, err error) bool
	Token() string
	BaseURL() string
	State() models.SessionState
	OnStateChange(fn session.StateListener) (unsubscribe func())
}

// Notifier surfaces user-visible notifications.
type Notifier interface {
	Notify(level, text string)
}
