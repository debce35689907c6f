// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret stores the Submitty API token outside the settings
// database: in the OS keychain when one is available, or in a
// passphrase-encrypted file otherwise.
package secret

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=store.go -destination=../mock/secret_store_mock.go -package=mock

var (
	// ErrNotFound is returned by Get when no secret is stored for the
	// service/account pair.
	ErrNotFound = errors.New("secret not found")
	// ErrUnknownBackend is returned by New for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown secret backend")
)

// Store reads and writes secrets addressed by service and account.
type Store interface {
	// Get returns the secret or ErrNotFound.
	Get(ctx context.Context, service, account string) (string, error)
	// Set stores secret, replacing any previous value.
	Set(ctx context.Context, service, account, secret string) error
	// Delete removes the secret. Deleting a missing secret is not an error.
	Delete(ctx context.Context, service, account string) error
}

// Backend names accepted by New.
const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
)

// Options configures New.
type Options struct {
	Backend        string
	FilePath       string
	FilePassphrase string
}

// New returns the Store for opts.Backend.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendKeyring, "":
		return NewKeyringStore(), nil
	case BackendFile:
		return NewFileStore(opts.FilePath, opts.FilePassphrase)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
