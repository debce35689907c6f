// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bridge is the message channel between the sidebar host and its UI.
//
// A [Bridge] sits on top of a [Transport] and offers fire-and-forget
// messages ([Bridge.Send], [Bridge.Post]), correlated request/response
// ([Bridge.SendRequest], [Bridge.Respond]) and command handlers
// ([Bridge.OnMessage], [Handle]).
//
// The transport is acquired once through [Bridge.Acquire]. Messages sent
// before that are queued and flushed in order when the bridge becomes
// ready. When acquisition fails the bridge degrades to a no-op transport
// that logs instead of failing, so callers never branch on availability.
//
// Each bridge runs one reader goroutine that dispatches inbound messages in
// arrival order and one writer goroutine that sends outbound messages in
// the order they were enqueued. Handlers run on the reader goroutine and
// should hand long work off to their own goroutines.
package bridge
