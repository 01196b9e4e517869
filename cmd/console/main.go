/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/edgeview/pkg/cli"
	"github.com/carverauto/edgeview/pkg/config"
	"github.com/carverauto/edgeview/pkg/consoleapi"
	"github.com/carverauto/edgeview/pkg/consoleclient"
	"github.com/carverauto/edgeview/pkg/lifecycle"
	"github.com/carverauto/edgeview/pkg/logger"
	"github.com/carverauto/edgeview/pkg/natsutil"
	"github.com/carverauto/edgeview/pkg/reconcile"
	"github.com/carverauto/edgeview/pkg/session"
	"github.com/carverauto/edgeview/pkg/version"
)

const metricsShutdownTimeout = 5 * time.Second

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/edgeview/console.json", "Path to console config file (JSON or YAML)")
	headless := flag.Bool("headless", false, "Serve the API without the terminal UI")
	deviceID := flag.String("device", "", "Device to select on startup")
	modelID := flag.String("model", "", "Model to load on startup (requires -device)")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := os.Stat(*configPath); errors.Is(err, os.ErrNotExist) {
		*configPath = ""
	}

	cfg := config.DefaultConsoleConfig()
	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	interactive := !*headless && cli.IsInputFromTerminal()

	consoleLogger, err := lifecycle.CreateComponentLogger("console", loggerConfig(cfg.Logging, interactive))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	startMetrics(ctx, cfg.Logging, consoleLogger)
	defer stopMetrics(consoleLogger)

	client, err := consoleclient.New(consoleclient.Config{
		BaseURL:   cfg.BackendURL,
		StreamURL: cfg.StreamURL,
		APIKey:    cfg.APIKey,
		Timeout:   time.Duration(cfg.RequestTimeout),
		Logger:    lifecycle.Child(consoleLogger, "backend"),
	})
	if err != nil {
		return err
	}

	deps := session.Dependencies{
		Configs:   client,
		Processor: client,
		History:   client,
		Stream:    client,
		Devices:   client,
		AppConfig: client,
	}

	if cfg.NATS.Enabled() {
		publisher, nc, err := natsutil.Connect(ctx, cfg.NATS, lifecycle.Child(consoleLogger, "events"))
		if err != nil {
			return err
		}
		defer nc.Close()

		deps.Publisher = publisher
	}

	controller := session.New(deps, lifecycle.Child(consoleLogger, "session"),
		session.WithPlaybackInterval(time.Duration(cfg.PlaybackInterval)),
		session.WithTelemetryCapacity(cfg.TelemetryCapacity),
		session.WithReconcileOptions(reconcile.WithSettleDelay(time.Duration(cfg.SettleDelay))),
	)

	if err := preselect(ctx, controller, *deviceID, *modelID); err != nil {
		return err
	}

	server := consoleapi.NewServer(controller, lifecycle.Child(consoleLogger, "api"),
		consoleapi.WithCORS(cfg.CORS),
		consoleapi.WithAPIKey(cfg.APIKey),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return controller.Run(ctx)
	})

	g.Go(func() error {
		return server.Start(ctx, cfg.ListenAddr)
	})

	if interactive {
		g.Go(func() error {
			// quitting the UI stops the whole console
			defer stop()

			return cli.Run(ctx, controller, lifecycle.Child(consoleLogger, "tui"))
		})
	}

	consoleLogger.Info().
		Str("backend_url", cfg.BackendURL).
		Str("listen_addr", cfg.ListenAddr).
		Bool("interactive", interactive).
		Bool("events", cfg.NATS.Enabled()).
		Msg("Console started")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	consoleLogger.Info().Msg("Console stopped")

	return nil
}

// loggerConfig keeps log lines off the terminal while the UI owns it.
func loggerConfig(cfg *logger.Config, interactive bool) *logger.Config {
	if cfg == nil {
		cfg = logger.DefaultConfig()
	}

	if interactive && (cfg.Output == "" || cfg.Output == "stdout" || cfg.Output == "stderr") {
		out := *cfg
		out.Output = filepath.Join(os.TempDir(), "edgeview-console.log")

		return &out
	}

	return cfg
}

func startMetrics(ctx context.Context, cfg *logger.Config, log logger.Logger) {
	if cfg == nil {
		cfg = logger.DefaultConfig()
	}

	if cfg.Metrics != nil && version.Get().Version != "dev" {
		cfg.Metrics.ServiceVersion = version.Get().Version
	}

	if _, err := logger.InitializeMetrics(ctx, cfg.Metrics); err != nil {
		if !errors.Is(err, logger.ErrOTelMetricsDisabled) {
			log.Warn().Err(err).Msg("Metrics exporter unavailable")
		}

		return
	}

	log.Info().Str("endpoint", cfg.Metrics.Endpoint).Msg("Metrics exporter started")
}

func stopMetrics(log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()

	if err := logger.ShutdownMetrics(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush metrics")
	}
}

func preselect(ctx context.Context, controller *session.Controller, deviceID, modelID string) error {
	if deviceID == "" {
		return nil
	}

	if err := controller.SelectDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("select device %s: %w", deviceID, err)
	}

	if modelID == "" {
		return nil
	}

	if err := controller.SelectModel(ctx, modelID); err != nil {
		return fmt.Errorf("load model %s: %w", modelID, err)
	}

	return nil
}
