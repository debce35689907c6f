// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response statuses used by the Submitty API envelope.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// APIResponse is the envelope wrapped around every Submitty API response:
//
//	{"status": "success", "data": {...}, "message": "..."}
type APIResponse[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// TokenData is the data part of the POST /api/token response.
type TokenData struct {
	Token string `json:"token"`
}
