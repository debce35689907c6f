// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
)

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	BuildDate   string `json:"buildDate,omitempty"`
	BuildCommit string `json:"buildCommit,omitempty"`
	Session     string `json:"session"`
	BaseURL     string `json:"baseUrl,omitempty"`
	UIConnected bool   `json:"uiConnected"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Version:     h.build.BuildVersion(),
		BuildDate:   h.build.BuildDate(),
		BuildCommit: h.build.BuildCommit(),
		Session:     h.session.State().String(),
		BaseURL:     h.session.BaseURL(),
		UIConnected: h.endpoint.Connected(),
	}

	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.health").Msg("error writing health response")
	}
}
