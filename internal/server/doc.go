// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the host's HTTP listener.
//
// Run blocks until its context is cancelled or the listener fails, then
// shuts the server down gracefully within the configured timeout.
package server
