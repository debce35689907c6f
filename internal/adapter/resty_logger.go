// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"strings"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

// restyLogger adapts *logger.Logger to resty.Logger.
type restyLogger struct {
	log *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.log.Error().Str("source", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.log.Warn().Str("source", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.log.Debug().Str("source", "resty").Msgf(strings.TrimSpace(format), v...)
}
