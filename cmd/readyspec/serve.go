package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/readyspec/analysis"
	"github.com/c360studio/readyspec/catalog"
	"github.com/c360studio/readyspec/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Long: `Serve exposes the analysis engine over HTTP (and NATS request/reply when
nats.url is configured). With catalog.watch enabled the catalog file is
hot-reloaded on change; a broken edit keeps the last good catalog active.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(opts.logLevel)
			cfg, err := loadConfig(opts, logger)
			if err != nil {
				return err
			}

			engine, err := buildEngine(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Catalog.Watch {
				watcher, err := catalog.NewWatcher(engine.Catalogs(), logger)
				if err != nil {
					return fmt.Errorf("start catalog watcher: %w", err)
				}
				defer watcher.Close()
				watcher.Start(ctx)
			}

			srv := server.New(engine, cfg.Server.Addr, cfg.Server.Prefix, logger)

			if cfg.NATS.URL != "" {
				responder, err := startResponder(cfg.NATS.URL, cfg.NATS.Subject, engine, srv.Metrics(), logger)
				if err != nil {
					return err
				}
				defer responder.Close()
			}

			return srv.Run(ctx)
		},
	}
}

func startResponder(url, subject string, engine *analysis.Engine, metrics *server.Metrics, logger *slog.Logger) (*server.Responder, error) {
	conn, err := nats.Connect(url, nats.Name(appName))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS %s: %w", url, err)
	}

	responder := server.NewResponder(conn, engine, metrics, subject, logger)
	if err := responder.Start(); err != nil {
		conn.Close()
		return nil, err
	}
	return responder, nil
}
