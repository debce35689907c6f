// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/submitty-sidebar/internal/app"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/models"
)

var (
	buildVersion = "dev"
	buildDate    = "unknown"
	buildCommit  = "unknown"
)

const defaultHostURL = "ws://localhost:7420/ws"

type options struct {
	hostURL        string
	logFile        string
	logLevel       string
	connectTimeout time.Duration
}

type runFunc func(ctx context.Context, opts options) error

func newRootCmd(run runFunc) *cobra.Command {
	opts := options{}
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cmd := &cobra.Command{
		Use:   "submitty-sidebar",
		Short: "Terminal sidebar for Submitty courses and grades",
		Long: `Terminal sidebar for Submitty.

Connects to a running submitty host, shows your courses and lets you look up
grades. The host keeps the session; log in from the sidebar when it asks.`,
		Version:       build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.hostURL, "url", "u", envOr("SIDEBAR_HOST_URL", defaultHostURL), "WebSocket URL of the host bridge endpoint")
	cmd.Flags().StringVar(&opts.logFile, "log-file", os.Getenv("SIDEBAR_LOG_FILE"), "log file (default: sidebar.log next to the executable)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", envOr("SIDEBAR_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	cmd.Flags().DurationVar(&opts.connectTimeout, "connect-timeout", app.DefaultConnectTimeout, "how long to wait for the host")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	return cmd
}

func runSidebar(ctx context.Context, opts options) error {
	log, closeLog := logger.NewFileLogger("submitty-sidebar", opts.logFile)
	defer func() { _ = closeLog() }()
	logger.SetLevel(opts.logLevel)

	return app.NewSidebar(opts.hostURL, opts.connectTimeout, log).Run(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd(runSidebar).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
