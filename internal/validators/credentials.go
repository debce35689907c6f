// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"net/url"
	"strings"
)

// Field names reported in [ValidationError.Field].
const (
	FieldURL      = "url"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldHW       = "hw"
)

// Required returns a [ValidationError] for field when value is empty or
// whitespace only.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: ErrEmptyValue}
	}
	return nil
}

// BaseURL validates raw as an absolute http(s) URL and returns it trimmed and
// without a trailing slash, ready to be used as the API base URL.
func BaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValidationError{Field: FieldURL, Reason: ErrEmptyValue}
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", &ValidationError{Field: FieldURL, Reason: ErrInvalidURL}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ValidationError{Field: FieldURL, Reason: ErrUnsupportedURL}
	}
	if u.Host == "" {
		return "", &ValidationError{Field: FieldURL, Reason: ErrMissingHost}
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Credentials checks a username/password pair. The URL is optional here: it is
// validated only when non-empty, because the host may already have one
// configured.
func Credentials(rawURL, username, password string) error {
	if rawURL != "" {
		if _, err := BaseURL(rawURL); err != nil {
			return err
		}
	}
	if err := Required(FieldUsername, username); err != nil {
		return err
	}
	return Required(FieldPassword, password)
}
