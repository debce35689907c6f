// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/submitty-sidebar/internal/app"
	"github.com/MKhiriev/submitty-sidebar/internal/config"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("submitty-host")
	cfg, err := config.GetHostConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	logger.SetLevel(cfg.App.LogLevel)

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).WithFallbackVersion(cfg.App.Version)

	log.Debug().Str("address", cfg.Server.HTTPAddress).Bool("production", cfg.App.Production).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	host, err := app.NewHost(ctx, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create host")
	}

	if err = host.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("host run error")
	}
	log.Info().Msg("host stopped")
}

func printBuildInfo() {
	fmt.Printf("submitty-host %s\n", models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
