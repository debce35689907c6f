// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
	"github.com/MKhiriev/submitty-sidebar/internal/webview"
)

// document serves the webview page. Every response carries a fresh nonce.
func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := webview.Render(h.page)
	if err != nil {
		log.Err(err).Str("func", "*Handler.document").Msg("error rendering document")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err = utils.WriteHTML(w, []byte(doc.HTML), doc.CSP); err != nil {
		log.Err(err).Str("func", "*Handler.document").Msg("error writing document")
	}
}

func (h *Handler) websocket(w http.ResponseWriter, r *http.Request) {
	h.endpoint.ServeHTTP(w, r)
}
