// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"time"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/transport"
	"github.com/MKhiriev/submitty-sidebar/internal/tui"
)

// DefaultConnectTimeout bounds the first connection to the host.
const DefaultConnectTimeout = 5 * time.Second

// Sidebar is the terminal UI process.
type Sidebar struct {
	wsURL          string
	connectTimeout time.Duration
	logger         *logger.Logger
}

func NewSidebar(wsURL string, connectTimeout time.Duration, log *logger.Logger) *Sidebar {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	return &Sidebar{wsURL: wsURL, connectTimeout: connectTimeout, logger: log}
}

// Run connects to the host and shows the sidebar. An unreachable host does
// not abort: the bridge degrades and the UI reports it on every action.
func (s *Sidebar) Run(ctx context.Context) error {
	b := bridge.New(transport.Dialer(s.wsURL, s.logger.Component("transport")), s.logger.Component("bridge"))
	defer b.Dispose()

	acquireCtx, cancel := context.WithTimeout(ctx, s.connectTimeout)
	err := b.Acquire(acquireCtx)
	cancel()
	if err != nil {
		s.logger.Warn().Err(err).Str("url", s.wsURL).Msg("host unreachable, running degraded")
	}

	return tui.New(b, s.logger).Run(ctx)
}
