// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// loginTimeout covers the host's round trip to the backend.
const loginTimeout = 45 * time.Second

// Bridge is the part of the message bridge the model uses.
type Bridge interface {
	Post(command string, data any) error
	Respond(original bridge.Message, data any) error
	RespondError(original bridge.Message, cause error) error
	SendRequest(ctx context.Context, command string, data any, timeout time.Duration) (bridge.Message, error)
}

type model struct {
	ctx    context.Context
	bridge Bridge
	copy   func(string) error

	state   string
	baseURL string

	courses courseList
	grade   *models.DisplayGrade

	form   *loginForm
	prompt *bridge.Message

	errMsg string
	status string
}

func newModel(ctx context.Context, b Bridge) *model {
	return &model{
		ctx:    ctx,
		bridge: b,
		copy:   clipboard.WriteAll,
		state:  models.LoggedOut.String(),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStateMsg:
		m.state = msg.State
		m.baseURL = msg.BaseURL
		if msg.State != models.LoggedIn.String() {
			m.courses.reset()
			m.grade = nil
		}
		return m, nil

	case coursesMsg:
		m.courses.set(msg)
		m.errMsg = ""
		return m, nil

	case gradeMsg:
		g := models.DisplayGrade(msg)
		m.grade = &g
		m.status = ""
		return m, nil

	case hostErrorMsg:
		m.errMsg = msg.Message
		return m, nil

	case notifyMsg:
		if msg.Level == models.LevelError {
			// the matching error message carries the same text
			return m, nil
		}
		m.status = fmt.Sprintf("%s: %s", msg.Level, msg.Text)
		return m, nil

	case promptMsg:
		m.dismissPrompt()
		request := msg.request
		m.prompt = &request
		m.form = newLoginForm(msg.prompt.URL, msg.prompt.NeedURL)
		return m, nil

	case loginSubmitMsg:
		return m, m.submitLogin(msg.creds)

	case loginCancelMsg:
		m.dismissPrompt()
		m.form = nil
		return m, nil

	case loginDoneMsg:
		if m.form == nil {
			return m, nil
		}
		if msg.err != nil {
			m.form.failed(humanizeError(msg.err))
			return m, nil
		}
		m.form = nil
		m.errMsg = ""
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Score copied"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			return m, m.form.Update(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.quit):
		return tea.Quit
	case key.Matches(msg, keys.up):
		m.courses.move(-1)
	case key.Matches(msg, keys.down):
		m.courses.move(1)
	case key.Matches(msg, keys.enter):
		m.courses.toggle()
	case key.Matches(msg, keys.esc):
		m.grade = nil
	case key.Matches(msg, keys.grade):
		c, ok := m.courses.selected()
		if !ok {
			return nil
		}
		m.status = "Loading grade for " + c.Title + "..."
		m.post(models.CommandGrade, models.GradeRequest{HW: c.Title})
	case key.Matches(msg, keys.reload):
		m.status = "Reloading courses..."
		m.post(models.CommandFetchAndDisplayCourses, models.Empty{})
	case key.Matches(msg, keys.copy):
		if m.grade == nil {
			return nil
		}
		return m.copyScore(scoreText(m.grade.GradeDetails))
	case key.Matches(msg, keys.login):
		if m.state == models.LoggedIn.String() {
			return nil
		}
		m.form = newLoginForm(m.baseURL, m.baseURL == "")
	case key.Matches(msg, keys.logout):
		m.post(models.CommandLogout, models.Empty{})
	}
	return nil
}

// submitLogin answers the pending prompt when there is one. Otherwise it
// sends a login request and waits for the outcome.
func (m *model) submitLogin(creds models.Credentials) tea.Cmd {
	if m.prompt != nil {
		request := *m.prompt
		m.prompt = nil
		m.form = nil
		if err := m.bridge.Respond(request, creds); err != nil {
			m.errMsg = humanizeError(err)
		}
		return nil
	}

	ctx, b := m.ctx, m.bridge
	return func() tea.Msg {
		_, err := b.SendRequest(ctx, models.CommandLogin, creds, loginTimeout)
		return loginDoneMsg{err: err}
	}
}

func (m *model) dismissPrompt() {
	if m.prompt == nil {
		return
	}
	if err := m.bridge.RespondError(*m.prompt, errPromptDismissed); err != nil {
		m.errMsg = humanizeError(err)
	}
	m.prompt = nil
}

func (m *model) copyScore(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m *model) post(command string, data any) {
	if err := m.bridge.Post(command, data); err != nil {
		m.errMsg = humanizeError(err)
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString("Session: ")
	b.WriteString(m.state)
	if m.baseURL != "" {
		b.WriteString(" @ ")
		b.WriteString(m.baseURL)
	}
	b.WriteString("\n\n")

	var help string
	switch {
	case m.form != nil:
		b.WriteString(m.form.View())
		help = "tab: next field │ enter: log in │ esc: cancel"
	default:
		b.WriteString(m.courses.View())
		if m.grade != nil {
			b.WriteString("\n\n")
			b.WriteString(gradeView(*m.grade))
		}
		help = "↑/↓: move │ enter: expand │ g: grade │ c: copy │ r: reload │ l/L: log in/out │ q: quit"
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return renderPage("Submitty", b.String(), help)
}
