package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/docloc/config"
	"github.com/c360studio/docloc/metrics"
	"github.com/c360studio/docloc/publish"
	"github.com/c360studio/docloc/stats"
	"github.com/c360studio/docloc/watch"
)

func watchCmd(app *appContext) *cobra.Command {
	var (
		natsURL     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch catalogs and publish progress",
		Long: `Watch re-parses catalogs as translators save them, logs
translation progress, optionally publishes change events to NATS,
and optionally serves Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			url := natsURL
			if url == "" {
				url = app.cfg.NATS.URL
			}
			addr := metricsAddr
			if addr == "" {
				addr = app.cfg.Metrics.Addr
			}

			publisher := publish.New(nil)
			if url != "" {
				var err error
				publisher, err = publish.Connect(url)
				if err != nil {
					return err
				}
				slog.Info("Publishing catalog events", "url", url, "subject", publish.SubjectPrefix+".*")
			}
			defer publisher.Close()

			var collector *metrics.Collector
			if addr != "" {
				collector = metrics.NewCollector()
				server := &http.Server{Addr: addr, Handler: collector.Handler()}
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						slog.Error("Metrics server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
				slog.Info("Serving metrics", "addr", addr)
			}

			watcher, err := watch.New(watch.Config{
				Root:          app.cfg.Project.Root,
				Globs:         app.cfg.Catalogs.Globs,
				DebounceDelay: config.WatchDebounce,
				Logger:        slog.Default(),
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer watcher.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-watcher.Events():
					if !ok {
						return nil
					}
					handleEvent(ev, publisher, collector)
				}
			}
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "Publish catalog events to this NATS server")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	return cmd
}

func handleEvent(ev watch.Event, publisher *publish.Publisher, collector *metrics.Collector) {
	switch {
	case ev.Operation == watch.OpDelete:
		slog.Info("Catalog removed", "path", ev.Path)
		if collector != nil {
			collector.Forget(ev.Path)
		}
	case ev.Err != nil:
		slog.Warn("Catalog changed but does not parse", "path", ev.Path, "error", ev.Err)
	default:
		st := stats.Collect(ev.File)
		slog.Info("Catalog updated", "path", ev.Path, "progress", st.String())
		if collector != nil {
			collector.Observe(ev.Path, st)
		}
	}

	if err := publisher.PublishChange(context.Background(), ev); err != nil {
		slog.Warn("Failed to publish catalog event", "path", ev.Path, "error", err)
	}
}
