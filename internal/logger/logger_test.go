// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(line), &entry))
	return entry
}

func TestNew_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	New("submitty-host", &buf).Info().Str("base_url", "https://example.submitty.edu").Msg("logged in")

	entry := decode(t, buf.Bytes())
	assert.Equal(t, "submitty-host", entry["role"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "logged in", entry["message"])
	assert.Equal(t, "https://example.submitty.edu", entry["base_url"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "logger")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New("submitty-host", &buf)
	bridgeLog := root.Component("bridge")

	bridgeLog.Warn().Msg("bridge outbound queue full, message dropped")
	root.Info().Msg("host stopped")

	sc := bufio.NewScanner(&buf)
	require.True(t, sc.Scan())
	first := decode(t, sc.Bytes())
	assert.Equal(t, "bridge", first["component"])
	assert.Equal(t, "submitty-host", first["role"])

	require.True(t, sc.Scan())
	second := decode(t, sc.Bytes())
	assert.NotContains(t, second, "component", "Component must not tag the parent")

	assert.NotSame(t, root, root.GetChildLogger())
}

func TestNewFileLogger(t *testing.T) {
	t.Run("appends across runs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sidebar.log")

		for _, msg := range []string{"sidebar started", "sidebar stopped"} {
			l, closeFn := NewFileLogger("submitty-sidebar", path)
			l.Info().Msg(msg)
			require.NoError(t, closeFn())
		}

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		var messages []string
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			entry := decode(t, sc.Bytes())
			assert.Equal(t, "submitty-sidebar", entry["role"])
			messages = append(messages, entry["message"].(string))
		}
		assert.Equal(t, []string{"sidebar started", "sidebar stopped"}, messages)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("unopenable path discards", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "sidebar.log")

		l, closeFn := NewFileLogger("submitty-sidebar", path)
		require.NotNil(t, l)
		l.Error().Msg("nowhere to go")
		assert.NoError(t, closeFn())

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "unknown keeps previous", level: "verbose", want: zerolog.WarnLevel},
		{name: "empty keeps previous", level: "", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetLevel_FiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	l := New("submitty-sidebar", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	SetLevel("warn")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	l := New("submitty-host", &buf).Component("http")
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("request")
	assert.Equal(t, "http", decode(t, buf.Bytes())["component"])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	l := New("submitty-host", &buf)
	traced := &Logger{l.With().Str("trace_id", "trace-1").Logger()}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req = req.WithContext(traced.WithContext(req.Context()))

	FromRequest(req).Info().Msg("served")
	assert.Equal(t, "trace-1", decode(t, buf.Bytes())["trace_id"])
}
