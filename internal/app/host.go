// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/MKhiriev/submitty-sidebar/internal/adapter"
	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/config"
	myHTTP "github.com/MKhiriev/submitty-sidebar/internal/handler/http"
	"github.com/MKhiriev/submitty-sidebar/internal/host"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/secret"
	"github.com/MKhiriev/submitty-sidebar/internal/server"
	"github.com/MKhiriev/submitty-sidebar/internal/session"
	"github.com/MKhiriev/submitty-sidebar/internal/settings"
	"github.com/MKhiriev/submitty-sidebar/internal/transport"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
	"github.com/MKhiriev/submitty-sidebar/internal/validators"
	"github.com/MKhiriev/submitty-sidebar/internal/webview"
	"github.com/MKhiriev/submitty-sidebar/internal/workers"
	"github.com/MKhiriev/submitty-sidebar/models"
)

const (
	webSocketPath = "/ws"
	documentTitle = "Submitty"
)

// Host is the sidebar host process.
type Host struct {
	db         *settings.DB
	endpoint   *transport.Endpoint
	bridge     *bridge.Bridge
	session    *session.Manager
	controller *host.Controller
	server     *server.Server
	workers    *workers.Workers

	logger *logger.Logger
}

// NewHost wires every component from cfg. Nothing runs until Run.
func NewHost(ctx context.Context, cfg *config.HostConfig, build models.AppBuildInfo, log *logger.Logger) (*Host, error) {
	db, err := settings.Open(ctx, cfg.Storage.SettingsDSN, log.Component("settings"))
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	repo := settings.NewRepository(db, log.Component("settings"))

	if err = seedBaseURL(ctx, repo, cfg.Adapter.BaseURL); err != nil {
		_ = db.Close()
		return nil, err
	}

	secrets, err := secret.New(secret.Options{
		Backend:        cfg.Secret.Backend,
		FilePath:       cfg.Secret.FilePath,
		FilePassphrase: cfg.Secret.FilePassphrase,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create secret store: %w", err)
	}

	var origins []string
	if !cfg.App.Production && cfg.App.DevServerAddress != "" {
		origins = append(origins, "http://"+cfg.App.DevServerAddress)
	}
	endpoint := transport.NewEndpoint(log.Component("endpoint"), transport.WithAllowedOrigins(origins...))

	b := bridge.New(endpoint.Acquire, log.Component("bridge"),
		bridge.WithRequestTimeout(cfg.Bridge.RequestTimeout),
		bridge.WithQueueSize(cfg.Bridge.QueueSize),
		bridge.WithIDGenerator(utils.NewUUIDGenerator().Generate),
	)

	var sess *session.Manager
	api := adapter.NewSubmittyClient(log.Component("adapter"),
		adapter.WithBaseURL(cfg.Adapter.BaseURL),
		adapter.WithTimeout(cfg.Adapter.RequestTimeout),
		adapter.WithTokenSource(func() string { return sess.Token() }),
	)
	sess = session.NewManager(secrets, repo, api,
		host.NewBridgePrompter(b, cfg.Bridge.PromptTimeout),
		log.Component("session"),
		session.WithSecretAddress(cfg.Secret.Service, cfg.Secret.Account),
	)

	controller := host.NewController(b, sess, api, host.NewBridgeNotifier(b, log), log.Component("controller"))

	handler := myHTTP.NewHandler(endpoint, sess, webview.Options{
		Production:    cfg.App.Production,
		DevServer:     cfg.App.DevServerAddress,
		WebSocketPath: webSocketPath,
		Title:         documentTitle,
	}, build, log.Component("http"))

	srv, err := server.NewServer(handler.Init(), cfg.Server, log.Component("server"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create server: %w", err)
	}

	expiry := workers.NewExpiryWatcher(sess, cfg.Workers.ExpiryCheckInterval, log,
		workers.WithOnExpired(controller.Reprompt),
	)

	return &Host{
		db:         db,
		endpoint:   endpoint,
		bridge:     b,
		session:    sess,
		controller: controller,
		server:     srv,
		workers:    workers.NewWorkers(expiry),
		logger:     log,
	}, nil
}

// Run serves until ctx is cancelled, then releases every resource.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.controller.Start()

	var wg sync.WaitGroup
	wg.Go(func() {
		if err := h.bridge.Acquire(ctx); err != nil && !errors.Is(err, context.Canceled) {
			h.logger.Warn().Err(err).Msg("bridge degraded")
		}
	})
	wg.Go(func() {
		h.workers.Run(ctx)
	})

	err := h.server.Run(ctx)
	cancel()

	h.controller.Stop()
	h.bridge.Dispose()
	if closeErr := h.endpoint.Close(); closeErr != nil {
		h.logger.Debug().Err(closeErr).Msg("close endpoint")
	}
	wg.Wait()

	if closeErr := h.db.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close settings: %w", closeErr))
	}
	return err
}

// Ready is closed once the HTTP listener is bound.
func (h *Host) Ready() <-chan struct{} {
	return h.server.Ready()
}

func (h *Host) Addr() net.Addr {
	return h.server.Addr()
}

// seedBaseURL stores the configured base URL when none was persisted yet.
func seedBaseURL(ctx context.Context, repo *settings.Repository, baseURL string) error {
	if baseURL == "" {
		return nil
	}

	current, err := repo.BaseURL(ctx)
	if err != nil {
		return fmt.Errorf("read base url: %w", err)
	}
	if current != "" {
		return nil
	}

	normalized, err := validators.BaseURL(baseURL)
	if err != nil {
		return fmt.Errorf("configured base url: %w", err)
	}
	return repo.SetBaseURL(ctx, normalized)
}
