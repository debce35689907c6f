// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/models"
)

type TUI struct {
	bridge *bridge.Bridge
	logger *logger.Logger
}

func New(b *bridge.Bridge, log *logger.Logger) *TUI {
	return &TUI{bridge: b, logger: log.Component("tui")}
}

// Run shows the sidebar until the user quits or ctx is cancelled. The
// bridge must already be acquired.
func (t *TUI) Run(ctx context.Context) error {
	p := tea.NewProgram(newModel(ctx, t.bridge), tea.WithAltScreen(), tea.WithContext(ctx))

	unbind := bind(t.bridge, p.Send)
	defer unbind()

	if err := t.bridge.Post(models.CommandReady, models.Empty{}); err != nil {
		return fmt.Errorf("announce ready: %w", err)
	}
	t.logger.Info().Bool("degraded", t.bridge.Degraded()).Msg("sidebar started")

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run sidebar: %w", err)
	}
	return nil
}

// bind forwards host commands to send as tea messages.
func bind(b *bridge.Bridge, send func(tea.Msg)) (unbind func()) {
	unsubs := []func(){
		bridge.Handle(b, models.CommandSessionState, func(_ context.Context, _ bridge.Message, s models.SessionStateMessage) error {
			send(sessionStateMsg(s))
			return nil
		}),
		bridge.Handle(b, models.CommandDisplayCourses, func(_ context.Context, _ bridge.Message, c models.DisplayCourses) error {
			send(coursesMsg(c))
			return nil
		}),
		bridge.Handle(b, models.CommandDisplayGrade, func(_ context.Context, _ bridge.Message, g models.DisplayGrade) error {
			send(gradeMsg(g))
			return nil
		}),
		bridge.Handle(b, models.CommandError, func(_ context.Context, _ bridge.Message, e models.ErrorMessage) error {
			send(hostErrorMsg(e))
			return nil
		}),
		bridge.Handle(b, models.CommandNotify, func(_ context.Context, _ bridge.Message, n models.Notification) error {
			send(notifyMsg(n))
			return nil
		}),
		bridge.Handle(b, models.CommandPromptCredentials, func(_ context.Context, msg bridge.Message, p models.PromptCredentials) error {
			send(promptMsg{request: msg, prompt: p})
			return nil
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
