// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

// KeyBaseURL is the key of the global Submitty base URL setting.
const KeyBaseURL = "submitty.baseUrl"

// Repository reads and writes key/value settings.
type Repository struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewRepository returns a Repository over db.
func NewRepository(db *DB, log *logger.Logger) *Repository {
	return newRepository(db.DB, log)
}

func newRepository(db *sql.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := buildGetQuery(key)
	if err != nil {
		return "", fmt.Errorf("error building select query: %w", err)
	}

	var value string
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		r.logger.Err(err).
			Str("func", "settings.Repository.Get").
			Str("key", key).
			Msg("failed to read setting")
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildUpsertQuery(key, value, r.now().UTC())
	if err != nil {
		return fmt.Errorf("error building upsert query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "settings.Repository.Set").
			Str("key", key).
			Msg("failed to write setting")
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildDeleteQuery(key)
	if err != nil {
		return fmt.Errorf("error building delete query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "settings.Repository.Delete").
			Str("key", key).
			Msg("failed to delete setting")
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}

	return nil
}

// BaseURL returns the persisted base URL or "" when none is configured.
func (r *Repository) BaseURL(ctx context.Context) (string, error) {
	v, err := r.Get(ctx, KeyBaseURL)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}

	return v, err
}

// SetBaseURL persists the base URL.
func (r *Repository) SetBaseURL(ctx context.Context, baseURL string) error {
	return r.Set(ctx, KeyBaseURL, baseURL)
}
