// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// HostConfig is the validated configuration view used by cmd/host.
type HostConfig struct {
	App     App
	Server  Server
	Adapter Adapter
	Bridge  Bridge
	Storage Storage
	Secret  Secret
	Workers Workers
}

// GetHostConfig builds the structured config from args and the environment
// and validates the host view of it.
func GetHostConfig(args []string) (*HostConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	hostCfg := &HostConfig{
		App:     cfg.App,
		Server:  cfg.Server,
		Adapter: cfg.Adapter,
		Bridge:  cfg.Bridge,
		Storage: cfg.Storage,
		Secret:  cfg.Secret,
		Workers: cfg.Workers,
	}

	return hostCfg, hostCfg.validate()
}
