// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secret

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastDeriver keeps Argon2id cheap in tests.
var fastDeriver = keyDeriver{time: 1, memory: 1024, threads: 1, keyLen: 32}

func newTestFileStore(t *testing.T, path, passphrase string) *FileStore {
	t.Helper()
	s, err := NewFileStore(path, passphrase)
	require.NoError(t, err)
	s.deriver = fastDeriver
	return s
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "secrets", "token.enc")
	s := newTestFileStore(t, path, "correct horse")

	_, err := s.Get(ctx, "submittyToken", "submittyToken")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "submittyToken", "submittyToken", "tok-1"))
	require.NoError(t, s.Set(ctx, "other", "acc", "x"))

	v, err := s.Get(ctx, "submittyToken", "submittyToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	// a second store with the same passphrase reads the same file
	reopened := newTestFileStore(t, path, "correct horse")
	v, err = reopened.Get(ctx, "other", "acc")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	require.NoError(t, s.Delete(ctx, "submittyToken", "submittyToken"))
	_, err = s.Get(ctx, "submittyToken", "submittyToken")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err = s.Get(ctx, "other", "acc")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestFileStore_FileDoesNotContainPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	s := newTestFileStore(t, path, "pw")

	require.NoError(t, s.Set(context.Background(), "svc", "acc", "super-secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-token")
}

func TestFileStore_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token.enc")

	require.NoError(t, newTestFileStore(t, path, "right").Set(ctx, "svc", "acc", "tok"))

	_, err := newTestFileStore(t, path, "wrong").Get(ctx, "svc", "acc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := newTestFileStore(t, path, "pw").Get(context.Background(), "svc", "acc")
	assert.Error(t, err)
}

func TestFileStore_DeleteMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	s := newTestFileStore(t, path, "pw")

	require.NoError(t, s.Delete(context.Background(), "svc", "acc"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "delete of a missing entry must not create the file")
}

func TestSealOpen(t *testing.T) {
	salt, err := newSalt()
	require.NoError(t, err)
	key := fastDeriver.derive("pw", salt)

	blob, err := seal(key, []byte("payload"))
	require.NoError(t, err)

	plain, err := open(key, blob)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))

	_, err = open(key, blob[:4])
	assert.ErrorIs(t, err, errCiphertextTooShort)

	_, err = open(fastDeriver.derive("other", salt), blob)
	assert.Error(t, err)
}
