// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the sidebar
// host. It is populated by merging defaults, environment variables,
// command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings: build mode, dev server and version.
	App App `envPrefix:"APP_"`

	// Server holds the address the host listens on for the webview
	// document and the bridge endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the outbound Submitty HTTP client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Bridge holds message bridge timeouts and queue bounds.
	Bridge Bridge `envPrefix:"BRIDGE_"`

	// Storage holds the location of the local settings database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Secret selects and configures the token store backend.
	Secret Secret `envPrefix:"SECRET_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Production switches the webview document to the nonce-based CSP.
	// Env: APP_PRODUCTION
	Production bool `env:"PRODUCTION"`

	// DevServerAddress is the host:port of the local UI dev server allowed
	// by the development CSP.
	// Env: APP_DEV_SERVER_ADDRESS
	DevServerAddress string `env:"DEV_SERVER_ADDRESS"`

	// Version is reported by /healthz.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is one of debug, info, warn, error.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds inbound listener settings.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds outbound Submitty client settings.
type Adapter struct {
	// BaseURL is an optional initial Submitty base URL. The persisted
	// setting takes precedence once the user has logged in.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound HTTP request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Bridge holds message bridge settings.
type Bridge struct {
	// RequestTimeout is the default timeout of correlated requests.
	// Env: BRIDGE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PromptTimeout bounds how long the host waits for the user to answer
	// a credential prompt.
	// Env: BRIDGE_PROMPT_TIMEOUT
	PromptTimeout time.Duration `env:"PROMPT_TIMEOUT"`

	// QueueSize is the capacity of the outbound queue held until the
	// transport is ready.
	// Env: BRIDGE_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// Storage holds local persistence settings.
type Storage struct {
	// SettingsDSN is the SQLite DSN of the settings database.
	// Env: STORAGE_SETTINGS_DSN
	SettingsDSN string `env:"SETTINGS_DSN"`
}

// Secret backends.
const (
	SecretBackendKeyring = "keyring"
	SecretBackendFile    = "file"
)

// Secret configures the token store.
type Secret struct {
	// Backend is "keyring" (OS keychain) or "file" (encrypted file).
	// Env: SECRET_BACKEND
	Backend string `env:"BACKEND"`

	// Service and Account address the token entry.
	// Env: SECRET_SERVICE, SECRET_ACCOUNT
	Service string `env:"SERVICE"`
	Account string `env:"ACCOUNT"`

	// FilePath and FilePassphrase configure the "file" backend.
	// Env: SECRET_FILE_PATH, SECRET_FILE_PASSPHRASE
	FilePath       string `env:"FILE_PATH"`
	FilePassphrase string `env:"FILE_PASSPHRASE"`
}

// Workers holds background worker settings.
type Workers struct {
	// ExpiryCheckInterval is how often the stored token's expiry is checked.
	// Env: WORKERS_EXPIRY_CHECK_INTERVAL
	ExpiryCheckInterval time.Duration `env:"EXPIRY_CHECK_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from all sources
// in priority order (later sources override non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags from args
//  4. JSON or YAML file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
