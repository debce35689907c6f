// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the sidebar: the resty
// HTTP client wrapper, identifier generation, JWT expiry inspection and
// JSON response writing.
package utils
