// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors StructuredConfig with snake_case keys shared by the
// JSON and YAML formats.
type fileConfig struct {
	App struct {
		Production       bool   `json:"production" yaml:"production"`
		DevServerAddress string `json:"dev_server_address" yaml:"dev_server_address"`
		Version          string `json:"version" yaml:"version"`
		LogLevel         string `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Bridge struct {
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		PromptTimeout  Duration `json:"prompt_timeout" yaml:"prompt_timeout"`
		QueueSize      int      `json:"queue_size" yaml:"queue_size"`
	} `json:"bridge" yaml:"bridge"`

	Storage struct {
		SettingsDSN string `json:"settings_dsn" yaml:"settings_dsn"`
	} `json:"storage" yaml:"storage"`

	Secret struct {
		Backend        string `json:"backend" yaml:"backend"`
		Service        string `json:"service" yaml:"service"`
		Account        string `json:"account" yaml:"account"`
		FilePath       string `json:"file_path" yaml:"file_path"`
		FilePassphrase string `json:"file_passphrase" yaml:"file_passphrase"`
	} `json:"secret" yaml:"secret"`

	Workers struct {
		ExpiryCheckInterval Duration `json:"expiry_check_interval" yaml:"expiry_check_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded
// as YAML, .json (or no extension) as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, filepath.Ext(path))
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Production:       fc.App.Production,
			DevServerAddress: fc.App.DevServerAddress,
			Version:          fc.App.Version,
			LogLevel:         fc.App.LogLevel,
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Bridge: Bridge{
			RequestTimeout: time.Duration(fc.Bridge.RequestTimeout),
			PromptTimeout:  time.Duration(fc.Bridge.PromptTimeout),
			QueueSize:      fc.Bridge.QueueSize,
		},
		Storage: Storage{
			SettingsDSN: fc.Storage.SettingsDSN,
		},
		Secret: Secret{
			Backend:        fc.Secret.Backend,
			Service:        fc.Secret.Service,
			Account:        fc.Secret.Account,
			FilePath:       fc.Secret.FilePath,
			FilePassphrase: fc.Secret.FilePassphrase,
		},
		Workers: Workers{
			ExpiryCheckInterval: time.Duration(fc.Workers.ExpiryCheckInterval),
		},
	}
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// as well as from integer nanoseconds, in both JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ns))
	return nil
}
