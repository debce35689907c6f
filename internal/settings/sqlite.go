// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/migrations"
)

// DB is the settings database handle.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Open connects to the SQLite database at dsn, creating the file when it
// does not exist yet, and applies pending migrations.
func Open(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "settings.Open").Msg("error creating database file")
		return nil, fmt.Errorf("error creating settings database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "settings.Open").Msg("error opening database")
		return nil, fmt.Errorf("error opening settings database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "settings.Open").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting settings database: %w", err)
	}

	if err = migrations.Migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("settings migration failed: %w", err)
	}
	log.Debug().Str("func", "settings.Open").Str("dsn", dsn).Msg("settings database ready")

	return &DB{DB: conn, logger: log}, nil
}

// createLocalDBFileIfNotExists creates the database file and its parent
// directory. DSNs in URI form ("file:...") or in-memory databases are left
// to the driver.
func createLocalDBFileIfNotExists(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}

	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("error creating DB directory: %w", err)
			}
		}

		f, err := os.OpenFile(dsn, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		return f.Close()
	}

	return nil
}
