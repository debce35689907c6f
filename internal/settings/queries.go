// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const settingsTable = "settings"

func buildGetQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From(settingsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildUpsertQuery(key, value string, now time.Time) (string, []any, error) {
	return sq.Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteQuery(key string) (string, []any, error) {
	return sq.Delete(settingsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
