// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/submitty-sidebar/models"
)

// unauthenticatedMessage is what Submitty puts in a "fail" envelope when
// the Authorization header is missing or invalid.
const unauthenticatedMessage = "unauthenticated"

// envelope is the status/message part of every Submitty response.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// mapTransportError converts a resty error (no response) into an APIError
// without exposing the transport error type.
func mapTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newAPIError(0, "request timed out")
	case errors.Is(err, context.Canceled):
		return newAPIError(0, "request canceled")
	default:
		return newAPIError(0, "network error: "+err.Error())
	}
}

// mapHTTPError returns nil for 2xx responses. authed selects whether a 401
// means a rejected token (authenticated calls) or bad credentials (login).
func mapHTTPError(resp *resty.Response, authed bool) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	msg := errorMessage(resp.Body(), code)
	if code == http.StatusUnauthorized && authed {
		return newAuthRejected(code, msg)
	}

	return newAPIError(code, msg)
}

// decodeEnvelope unwraps the Submitty response envelope and returns its data.
// Bodies that are not an envelope are returned unchanged.
func decodeEnvelope(resp *resty.Response, authed bool) (json.RawMessage, error) {
	body := resp.Body()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if json.Valid(body) {
			return body, nil
		}
		return nil, newAPIError(resp.StatusCode(), "malformed response body")
	}

	switch env.Status {
	case models.StatusSuccess:
		return env.Data, nil
	case models.StatusFail, models.StatusError:
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		if authed && strings.EqualFold(strings.TrimSpace(msg), unauthenticatedMessage) {
			return nil, newAuthRejected(resp.StatusCode(), msg)
		}
		return nil, newAPIError(resp.StatusCode(), msg)
	case "":
		return body, nil
	default:
		return nil, newAPIError(resp.StatusCode(), "unexpected response status "+env.Status)
	}
}

func errorMessage(body []byte, code int) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 {
		return text
	}

	return http.StatusText(code)
}
