// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrInvalidFileStore is returned by NewFileStore when the path or the
// passphrase is empty.
var ErrInvalidFileStore = errors.New("file store needs a path and a passphrase")

// fileEnvelope is the on-disk format. Salt is public; Data is
// nonce ‖ AES-GCM(JSON map of entries).
type fileEnvelope struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Data    []byte `json:"data"`
}

// FileStore keeps secrets in a single encrypted file. It is the fallback
// for systems without a usable keychain.
type FileStore struct {
	path       string
	passphrase string
	deriver    keyDeriver

	mu sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is
// created on the first Set.
func NewFileStore(path, passphrase string) (*FileStore, error) {
	if path == "" || passphrase == "" {
		return nil, ErrInvalidFileStore
	}

	return &FileStore{
		path:       path,
		passphrase: passphrase,
		deriver:    defaultKeyDeriver(),
	}, nil
}

func entryKey(service, account string) string {
	return service + "\x00" + account
}

func (f *FileStore) Get(_ context.Context, service, account string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, _, err := f.load()
	if err != nil {
		return "", err
	}

	v, ok := entries[entryKey(service, account)]
	if !ok {
		return "", ErrNotFound
	}

	return v, nil
}

func (f *FileStore) Set(_ context.Context, service, account, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, salt, err := f.load()
	if err != nil {
		return err
	}

	entries[entryKey(service, account)] = secret
	return f.save(entries, salt)
}

func (f *FileStore) Delete(_ context.Context, service, account string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, salt, err := f.load()
	if err != nil {
		return err
	}

	key := entryKey(service, account)
	if _, ok := entries[key]; !ok {
		return nil
	}

	delete(entries, key)
	return f.save(entries, salt)
}

// load returns the decrypted entries and the file salt. A missing file
// yields an empty map and a nil salt.
func (f *FileStore) load() (map[string]string, []byte, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read secret file: %w", err)
	}

	var env fileEnvelope
	if err = json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("decode secret file: %w", err)
	}

	plaintext, err := open(f.deriver.derive(f.passphrase, env.Salt), env.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("open secret file: %w", err)
	}

	entries := map[string]string{}
	if err = json.Unmarshal(plaintext, &entries); err != nil {
		return nil, nil, fmt.Errorf("decode secret entries: %w", err)
	}

	return entries, env.Salt, nil
}

// save encrypts entries and replaces the file atomically.
func (f *FileStore) save(entries map[string]string, salt []byte) error {
	if salt == nil {
		var err error
		if salt, err = newSalt(); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
	}

	plaintext, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode secret entries: %w", err)
	}

	data, err := seal(f.deriver.derive(f.passphrase, salt), plaintext)
	if err != nil {
		return fmt.Errorf("seal secret file: %w", err)
	}

	raw, err := json.Marshal(fileEnvelope{Version: 1, Salt: salt, Data: data})
	if err != nil {
		return fmt.Errorf("encode secret file: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create secret dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".secret-*")
	if err != nil {
		return fmt.Errorf("create temp secret file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write secret file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close secret file: %w", err)
	}

	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace secret file: %w", err)
	}

	return nil
}
