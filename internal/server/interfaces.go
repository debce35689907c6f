// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
)

// Runner is the lifecycle contract of a transport server.
type Runner interface {
	// Run serves until ctx is cancelled and returns after shutdown.
	Run(ctx context.Context) error

	// Addr is the bound address. It is nil until the listener is open.
	Addr() net.Addr
}
