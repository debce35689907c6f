// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport carries bridge frames over WebSocket text messages.
//
// [Endpoint] is the host side: an http.Handler mounted at /ws whose Acquire
// completes when the first UI connects. [Dial] is the UI side.
package transport
