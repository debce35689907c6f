// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the HTTP surface of the sidebar host.
//
// It serves the webview document, its static assets, the bridge WebSocket
// endpoint and a health check. Every request gets a trace id and a
// request-scoped logger; page and asset responses are access-logged and
// gzip-compressed when the client accepts it.
package http
