// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/submitty-sidebar/internal/validators"
	"github.com/MKhiriev/submitty-sidebar/models"
)

const (
	fieldURL = iota
	fieldUsername
	fieldPassword
)

// loginForm collects the base URL, username and password. It does not talk
// to the host itself; the model decides whether a submission answers a
// pending prompt or starts a login request.
type loginForm struct {
	inputs     []textinput.Model
	focus      int
	needURL    bool
	submitting bool
	errMsg     string
}

type loginSubmitMsg struct {
	creds models.Credentials
}

type loginCancelMsg struct{}

func newLoginForm(url string, needURL bool) *loginForm {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://submitty.example.edu"
	urlInput.CharLimit = 512
	urlInput.Width = 40
	urlInput.SetValue(url)

	userInput := textinput.New()
	userInput.Placeholder = "username"
	userInput.CharLimit = 128
	userInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	f := &loginForm{
		inputs:  []textinput.Model{urlInput, userInput, passwordInput},
		needURL: needURL,
	}
	if url == "" {
		f.focusOn(fieldURL)
	} else {
		f.focusOn(fieldUsername)
	}
	return f
}

func (f *loginForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return func() tea.Msg { return loginCancelMsg{} }
		case key.Matches(keyMsg, keys.tab):
			f.focusOn((f.focus + 1) % len(f.inputs))
			return nil
		case key.Matches(keyMsg, keys.backtab):
			f.focusOn((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return nil
		case key.Matches(keyMsg, keys.enter):
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *loginForm) submit() tea.Cmd {
	if f.submitting {
		return nil
	}

	creds := models.Credentials{
		URL:      strings.TrimSpace(f.inputs[fieldURL].Value()),
		Username: strings.TrimSpace(f.inputs[fieldUsername].Value()),
		Password: f.inputs[fieldPassword].Value(),
	}
	err := creds.Validate()
	if err == nil && f.needURL {
		err = validators.Required(validators.FieldURL, creds.URL)
	}
	if err != nil {
		f.errMsg = err.Error()
		return nil
	}

	f.errMsg = ""
	f.submitting = true
	return func() tea.Msg { return loginSubmitMsg{creds: creds} }
}

// failed re-enables the form after a rejected login.
func (f *loginForm) failed(reason string) {
	f.submitting = false
	f.errMsg = reason
	f.inputs[fieldPassword].SetValue("")
	f.focusOn(fieldPassword)
}

func (f *loginForm) View() string {
	var b strings.Builder
	b.WriteString("URL       [")
	b.WriteString(f.inputs[fieldURL].View())
	b.WriteString("]\n")
	b.WriteString("Username  [")
	b.WriteString(f.inputs[fieldUsername].View())
	b.WriteString("]\n")
	b.WriteString("Password  [")
	b.WriteString(f.inputs[fieldPassword].View())
	b.WriteString("]\n")

	if f.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (f *loginForm) focusOn(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}
