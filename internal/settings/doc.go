// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package settings persists the sidebar's global settings, most notably the
// Submitty base URL, in a local SQLite database.
//
// The schema is owned by the migrations package and applied by Open.
// Queries are built with squirrel using "?" placeholders.
package settings
