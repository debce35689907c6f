// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrPromptCancelled is returned by a Prompter when the user dismissed
	// the credential prompt.
	ErrPromptCancelled = errors.New("credential prompt cancelled")
	// ErrLoginInProgress is returned by Login while another login runs.
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrSessionExpired is recorded as the last error when the token expires.
	ErrSessionExpired = errors.New("session expired, please log in again")
)
