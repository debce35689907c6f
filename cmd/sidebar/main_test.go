// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{
			name: "defaults",
			args: nil,
			want: options{hostURL: defaultHostURL, logLevel: "info", connectTimeout: 5 * time.Second},
		},
		{
			name: "overrides",
			args: []string{"-u", "ws://127.0.0.1:9000/ws", "--log-file", "/tmp/s.log", "--log-level", "debug", "--connect-timeout", "2s"},
			want: options{hostURL: "ws://127.0.0.1:9000/ws", logFile: "/tmp/s.log", logLevel: "debug", connectTimeout: 2 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SIDEBAR_HOST_URL", "")
			t.Setenv("SIDEBAR_LOG_FILE", "")
			t.Setenv("SIDEBAR_LOG_LEVEL", "")

			var got options
			cmd := newRootCmd(func(_ context.Context, opts options) error {
				got = opts
				return nil
			})
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCmd_EnvDefaults(t *testing.T) {
	t.Setenv("SIDEBAR_HOST_URL", "ws://host.internal/ws")
	t.Setenv("SIDEBAR_LOG_LEVEL", "warn")

	var got options
	cmd := newRootCmd(func(_ context.Context, opts options) error {
		got = opts
		return nil
	})
	cmd.SetArgs(nil)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "ws://host.internal/ws", got.hostURL)
	assert.Equal(t, "warn", got.logLevel)
}

func TestRootCmd_RejectsArgsAndPropagatesErrors(t *testing.T) {
	called := false
	cmd := newRootCmd(func(context.Context, options) error {
		called = true
		return errors.New("boom")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
	assert.False(t, called)

	cmd.SetArgs(nil)
	assert.EqualError(t, cmd.ExecuteContext(context.Background()), "boom")
	assert.True(t, called)
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(func(context.Context, options) error {
		t.Fatal("run must not be called for --version")
		return nil
	})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "dev (commit: unknown")
}
