// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the runnable programs from the internal packages.
//
// Host is the background process: it owns the session, talks to Submitty,
// serves the webview and accepts UI connections on /ws. Sidebar is the
// terminal UI that connects to a running host.
package app
