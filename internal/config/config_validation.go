// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/submitty-sidebar/internal/validators"
)

func (cfg *HostConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.BaseURL != "" {
		normalized, err := validators.BaseURL(cfg.Adapter.BaseURL)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
		}
		cfg.Adapter.BaseURL = normalized
	}

	if cfg.Bridge.RequestTimeout <= 0 || cfg.Bridge.PromptTimeout <= 0 || cfg.Bridge.QueueSize <= 0 {
		return ErrInvalidBridgeConfigs
	}

	if cfg.Storage.SettingsDSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Secret.Backend {
	case SecretBackendKeyring:
	case SecretBackendFile:
		if cfg.Secret.FilePath == "" || cfg.Secret.FilePassphrase == "" {
			return fmt.Errorf("%w: file backend needs a path and a passphrase", ErrInvalidSecretConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidSecretConfigs, cfg.Secret.Backend)
	}
	if cfg.Secret.Service == "" || cfg.Secret.Account == "" {
		return ErrInvalidSecretConfigs
	}

	if cfg.Workers.ExpiryCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
