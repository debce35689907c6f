// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the network.
//
// Every failure is a [*ValidationError] naming the offending field and the
// rule it broke; all of them match [ErrValidation] via errors.Is, so callers
// can tell bad input apart from transport or server failures.
package validators
