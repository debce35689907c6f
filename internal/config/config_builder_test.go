// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields keep the earlier value.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{HTTPAddress: "127.0.0.1:9999"},
		Bridge: Bridge{QueueSize: 4},
	})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 4, cfg.Bridge.QueueSize)
	assert.Equal(t, DefaultBridgeTimeout, cfg.Bridge.RequestTimeout)
	assert.Equal(t, DefaultSecretService, cfg.Secret.Service)
}

// ── withFlags / withFile ──────────────────────────────────────────────────────

func TestWithFlags_RecordsParseError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFile_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withFile()
	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithFile_MissingFileRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: filepath.Join(t.TempDir(), "missing.json")})

	b.withFile()
	require.Error(t, b.err)
}

// ── GetStructuredConfig / GetHostConfig ───────────────────────────────────────

// TestGetStructuredConfig_Priority verifies defaults < env < flags < file.
func TestGetStructuredConfig_Priority(t *testing.T) {
	p := writeFile(t, "config.yaml", "bridge:\n  queue_size: 7\n")
	setEnvVars(t, map[string]string{
		"BRIDGE_QUEUE_SIZE":      "100",
		"BRIDGE_REQUEST_TIMEOUT": "20s",
		"SERVER_ADDRESS":         "localhost:1111",
	})

	cfg, err := GetStructuredConfig([]string{"-a", "localhost:2222", "-c", p})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Bridge.QueueSize)
	assert.Equal(t, 20*time.Second, cfg.Bridge.RequestTimeout)
	assert.Equal(t, "localhost:2222", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultPromptTimeout, cfg.Bridge.PromptTimeout)
}

func TestGetHostConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetHostConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultBridgeTimeout, cfg.Bridge.RequestTimeout)
	assert.Equal(t, DefaultPromptTimeout, cfg.Bridge.PromptTimeout)
	assert.Equal(t, DefaultQueueSize, cfg.Bridge.QueueSize)
	assert.Equal(t, SecretBackendKeyring, cfg.Secret.Backend)
	assert.Equal(t, "submittyToken", cfg.Secret.Service)
	assert.Equal(t, "submittyToken", cfg.Secret.Account)
	assert.False(t, cfg.App.Production)
}

func TestGetHostConfig_NormalizesBaseURL(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetHostConfig([]string{"-base-url", " https://example.submitty.edu/ "})
	require.NoError(t, err)
	assert.Equal(t, "https://example.submitty.edu", cfg.Adapter.BaseURL)
}

func TestGetHostConfig_InvalidFlags(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetHostConfig([]string{"-queue-size", "x"})
	require.Error(t, err)
	assert.Nil(t, cfg)
}
