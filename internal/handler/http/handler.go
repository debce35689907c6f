// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/webview"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// SessionStatus reports the session for the health check.
type SessionStatus interface {
	State() models.SessionState
	BaseURL() string
}

// Endpoint is the bridge WebSocket endpoint.
type Endpoint interface {
	http.Handler
	Connected() bool
}

type Handler struct {
	endpoint Endpoint
	session  SessionStatus
	page     webview.Options
	build    models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(endpoint Endpoint, session SessionStatus, page webview.Options, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Bool("production", page.Production).Msg("http handler created")
	return &Handler{
		endpoint: endpoint,
		session:  session,
		page:     page,
		build:    build,
		logger:   logger,
	}
}
