// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SessionState is the lifecycle state of the authenticated session.
type SessionState int

const (
	// LoggedOut means no token is held and no login is in progress.
	LoggedOut SessionState = iota
	// AwaitingCredentials means the user has to provide a base URL and/or
	// credentials before a login can start.
	AwaitingCredentials
	// LoggingIn means a login request is in flight.
	LoggingIn
	// LoggedIn means a token issued by a successful login is held.
	LoggedIn
)

// String implements [fmt.Stringer]. The values are part of the
// sessionState message sent to the UI.
func (s SessionState) String() string {
	switch s {
	case LoggedOut:
		return "loggedOut"
	case AwaitingCredentials:
		return "awaitingCredentials"
	case LoggingIn:
		return "loggingIn"
	case LoggedIn:
		return "loggedIn"
	default:
		return "unknown"
	}
}
