// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := newRepository(db, logger.Nop())
	repo.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

// ── Get ───────────────────────────────────────────────────────────────────────

func TestGet_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\?").
		WithArgs("theme").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

	v, err := repo.Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("theme").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "theme")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)
	dbErr := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("theme").
		WillReturnError(dbErr)

	_, err := repo.Get(context.Background(), "theme")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGet_EmptyKey(t *testing.T) {
	repo, mock := newTestRepo(t)

	_, err := repo.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Set ───────────────────────────────────────────────────────────────────────

func TestSet_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("INSERT INTO settings .* ON CONFLICT\\(key\\) DO UPDATE").
		WithArgs(KeyBaseURL, "https://example.submitty.edu", repo.now().UTC()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SetBaseURL(context.Background(), "https://example.submitty.edu")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)
	dbErr := errors.New("database is locked")

	mock.ExpectExec("INSERT INTO settings").
		WillReturnError(dbErr)

	err := repo.Set(context.Background(), "k", "v")
	assert.ErrorIs(t, err, dbErr)
}

func TestSet_EmptyKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.ErrorIs(t, repo.Set(context.Background(), "", "v"), ErrEmptyKey)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDelete_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("DELETE FROM settings WHERE key = \\?").
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("DELETE FROM settings").
		WillReturnError(assert.AnError)

	assert.ErrorIs(t, repo.Delete(context.Background(), "k"), assert.AnError)
}

// ── BaseURL ───────────────────────────────────────────────────────────────────

func TestBaseURL_Unset(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs(KeyBaseURL).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := repo.BaseURL(context.Background())
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestBaseURL_Set(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs(KeyBaseURL).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("https://example.submitty.edu"))

	v, err := repo.BaseURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.submitty.edu", v)
}
