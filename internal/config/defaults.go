// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied before any other source.
const (
	DefaultHTTPAddress         = "localhost:7420"
	DefaultDevServerAddress    = "localhost:5173"
	DefaultShutdownTimeout     = 5 * time.Second
	DefaultAdapterTimeout      = 30 * time.Second
	DefaultBridgeTimeout       = 10 * time.Second
	DefaultPromptTimeout       = 5 * time.Minute
	DefaultQueueSize           = 256
	DefaultSettingsDSN         = "submitty-sidebar.db"
	DefaultSecretService       = "submittyToken"
	DefaultSecretAccount       = "submittyToken"
	DefaultExpiryCheckInterval = time.Minute
	DefaultLogLevel            = "debug"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			DevServerAddress: DefaultDevServerAddress,
			Version:          "dev",
			LogLevel:         DefaultLogLevel,
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultAdapterTimeout,
		},
		Bridge: Bridge{
			RequestTimeout: DefaultBridgeTimeout,
			PromptTimeout:  DefaultPromptTimeout,
			QueueSize:      DefaultQueueSize,
		},
		Storage: Storage{
			SettingsDSN: DefaultSettingsDSN,
		},
		Secret: Secret{
			Backend: SecretBackendKeyring,
			Service: DefaultSecretService,
			Account: DefaultSecretAccount,
		},
		Workers: Workers{
			ExpiryCheckInterval: DefaultExpiryCheckInterval,
		},
	}
}
