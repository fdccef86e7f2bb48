// SPDX-License-Identifier: MIT
// Package: bedrock/cmd/bedrock
//
// root.go - root command, configuration and shared runtime.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bedrock/config"
	"github.com/katalvlaran/bedrock/internal/logging"
	"github.com/katalvlaran/bedrock/pool"
)

// app is the state shared by the subcommands once configuration is loaded.
type app struct {
	configPath string
	workers    int
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bedrock",
		Short:         "Parallel breadth-first search on a shared worker pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "worker pool size (default: config, then one per CPU)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newBenchCmd(a), newTraverseCmd(a))
	return root
}

// load resolves configuration: file, environment, then flags.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// startPool creates the worker pool and, when enabled, the metrics endpoint.
// The returned stop function shuts both down.
func (a *app) startPool() (*pool.Pool, func()) {
	var (
		metrics *pool.Metrics
		srv     *http.Server
	)
	if a.cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		metrics = pool.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv = &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", slog.String("addr", srv.Addr), slog.Any("error", err))
			}
		}()
		a.logger.Info("serving metrics", slog.String("addr", srv.Addr))
	}

	p := pool.New(a.cfg.ResolveWorkers(),
		pool.WithName("bedrock"),
		pool.WithLogger(a.logger),
		pool.WithMetrics(metrics),
	)
	return p, func() {
		p.Shutdown()
		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}
	}
}
