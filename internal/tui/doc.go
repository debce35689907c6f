// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal sidebar: a Bubble Tea program that talks to
// the host over the message bridge.
//
// The program shows the session state, a course accordion and a grade
// panel. Host commands arrive as tea messages; key presses become bridge
// commands. A promptCredentials request from the host opens the login form
// and is answered when the form is submitted.
package tui
