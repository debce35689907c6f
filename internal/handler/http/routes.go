// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/submitty-sidebar/internal/webview"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.GetHead)
	router.Use(h.withTraceID)

	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		r.Use(withGZip)

		r.Get("/", h.document)
		r.Get("/healthz", h.health)
		r.Method(http.MethodGet, "/assets/*", http.StripPrefix("/assets/", http.FileServerFS(webview.Assets())))
	})

	// the upgrade needs the raw connection, so no compression here
	router.Get("/ws", h.websocket)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
