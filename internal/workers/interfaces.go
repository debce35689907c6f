// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the host's background jobs.
//
// A Worker blocks in Run until its context is cancelled. Workers runs a set
// of them concurrently and returns once every one has stopped.
package workers

import (
	"context"

	"github.com/MKhiriev/submitty-sidebar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is a background job.
type Worker interface {
	Run(ctx context.Context)
}

// Session is the part of the session manager the expiry watcher needs.
type Session interface {
	State() models.SessionState
	Token() string
	Expire(ctx context.Context) error
}
