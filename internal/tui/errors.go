// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
)

var errPromptDismissed = errors.New("credential prompt dismissed")

// humanizeError turns transport failures into a short hint and passes
// everything else through.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var remote *bridge.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	if errors.Is(err, bridge.ErrChannelUnavailable) || errors.Is(err, bridge.ErrTransportClosed) {
		return "Host is not reachable"
	}
	if errors.Is(err, bridge.ErrTimeout) {
		return "Host did not answer in time"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") {
		return "Host is not reachable"
	}

	return err.Error()
}
