// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// ExpiryWatcher logs the session out when the stored token's "exp" claim
// passes. Opaque tokens are left to the backend to reject.
type ExpiryWatcher struct {
	session   Session
	interval  time.Duration
	now       func() time.Time
	onExpired func()

	logger *logger.Logger
}

type ExpiryOption func(*ExpiryWatcher)

// WithOnExpired registers fn to run after the session has been expired.
func WithOnExpired(fn func()) ExpiryOption {
	return func(w *ExpiryWatcher) {
		w.onExpired = fn
	}
}

func WithClock(now func() time.Time) ExpiryOption {
	return func(w *ExpiryWatcher) {
		w.now = now
	}
}

func NewExpiryWatcher(session Session, interval time.Duration, log *logger.Logger, opts ...ExpiryOption) *ExpiryWatcher {
	w := &ExpiryWatcher{
		session:  session,
		interval: interval,
		now:      time.Now,
		logger:   log.Component("expiry-watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ExpiryWatcher) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info().Msg("expiry watcher disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check expires the session if it holds a JWT whose expiry has passed. It
// reports whether the session was expired.
func (w *ExpiryWatcher) Check(ctx context.Context) bool {
	if w.session.State() != models.LoggedIn {
		return false
	}

	token := w.session.Token()
	exp, err := utils.TokenExpiry(token)
	if err != nil {
		return false
	}
	if w.now().Before(exp) {
		return false
	}

	w.logger.Info().Time("expired_at", exp).Msg("token expired, logging out")
	if err = w.session.Expire(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("error expiring session")
	}

	if w.onExpired != nil {
		w.onExpired()
	}
	return true
}
