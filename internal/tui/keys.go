// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	grade   key.Binding
	reload  key.Binding
	copy    key.Binding
	login   key.Binding
	logout  key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
	esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	grade:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grade")),
	reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy score")),
	login:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
	logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
}
