// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package host

import (
	"github.com/rs/zerolog"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// BridgeNotifier logs notifications and mirrors them to the UI.
type BridgeNotifier struct {
	bridge *bridge.Bridge
	logger *logger.Logger
}

func NewBridgeNotifier(b *bridge.Bridge, log *logger.Logger) *BridgeNotifier {
	return &BridgeNotifier{bridge: b, logger: log}
}

func (n *BridgeNotifier) Notify(level, text string) {
	n.logger.WithLevel(zerologLevel(level)).Str("notification", level).Msg(text)

	if err := n.bridge.Post(models.CommandNotify, models.Notification{Level: level, Text: text}); err != nil {
		n.logger.Debug().Err(err).Msg("notification not delivered to ui")
	}
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case models.LevelError:
		return zerolog.ErrorLevel
	case models.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
