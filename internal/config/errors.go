// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [HostConfig.validate] when a configuration
// group is incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates a missing listen address or
	// shutdown timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates a malformed base URL or a zero
	// request timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidBridgeConfigs indicates non-positive bridge timeouts or
	// queue size.
	ErrInvalidBridgeConfigs = errors.New("invalid bridge configuration")
	// ErrInvalidStorageConfigs indicates an empty settings DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecretConfigs indicates an unknown backend or an incomplete
	// file backend.
	ErrInvalidSecretConfigs = errors.New("invalid secret store configuration")
	// ErrInvalidWorkerConfigs indicates a zero expiry check interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnsupportedFileFormat is returned for config files that are
	// neither JSON nor YAML.
	ErrUnsupportedFileFormat = errors.New("unsupported config file format")
)
