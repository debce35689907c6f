// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments (without the program name).
//
// Flags:
//
//	-a               listen address in format [host]:[port]
//	-c/-config       JSON or YAML config file path
//	-d               settings database DSN
//	-base-url        initial Submitty base URL
//	-request-timeout outbound HTTP timeout (e.g. "30s")
//	-bridge-timeout  default correlated request timeout (e.g. "10s")
//	-prompt-timeout  credential prompt timeout (e.g. "5m")
//	-queue-size      outbound bridge queue capacity
//	-secret-backend  keyring or file
//	-secret-file     encrypted token file path (file backend)
//	-production      serve the production CSP
//	-dev-server      dev server host:port for the development CSP
//	-log-level       debug, info, warn or error
//	-expiry-interval token expiry check interval (e.g. "1m")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("submitty-host", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress  NetAddress
		configPath     string
		settingsDSN    string
		baseURL        string
		requestTimeout time.Duration
		bridgeTimeout  time.Duration
		promptTimeout  time.Duration
		queueSize      int
		secretBackend  string
		secretFile     string
		production     bool
		devServer      string
		logLevel       string
		expiryInterval time.Duration
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&configPath, "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&settingsDSN, "d", "", "Settings database DSN")
	fs.StringVar(&baseURL, "base-url", "", "Initial Submitty base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")
	fs.DurationVar(&bridgeTimeout, "bridge-timeout", 0, "Bridge request timeout (e.g., 10s)")
	fs.DurationVar(&promptTimeout, "prompt-timeout", 0, "Credential prompt timeout (e.g., 5m)")
	fs.IntVar(&queueSize, "queue-size", 0, "Outbound bridge queue capacity")
	fs.StringVar(&secretBackend, "secret-backend", "", "Token store backend: keyring or file")
	fs.StringVar(&secretFile, "secret-file", "", "Encrypted token file path")
	fs.BoolVar(&production, "production", false, "Serve the production CSP")
	fs.StringVar(&devServer, "dev-server", "", "Dev server host:port")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&expiryInterval, "expiry-interval", 0, "Token expiry check interval (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Production:       production,
			DevServerAddress: devServer,
			LogLevel:         logLevel,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Bridge: Bridge{
			RequestTimeout: bridgeTimeout,
			PromptTimeout:  promptTimeout,
			QueueSize:      queueSize,
		},
		Storage: Storage{
			SettingsDSN: settingsDSN,
		},
		Secret: Secret{
			Backend:  secretBackend,
			FilePath: secretFile,
		},
		Workers: Workers{
			ExpiryCheckInterval: expiryInterval,
		},
		FilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// The host must be "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
