// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import "errors"

var (
	ErrNotConnected = errors.New("no ui connected")
	ErrClosed       = errors.New("transport closed")
)
