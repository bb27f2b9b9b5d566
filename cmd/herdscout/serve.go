package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/herdscout/herdscout/api"
	"github.com/herdscout/herdscout/browser"
	"github.com/herdscout/herdscout/cache"
	"github.com/herdscout/herdscout/config"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search API server",
	Long: `Run a long-lived HTTP API exposing the searches. One browser session is
shared across requests and discovered form schemas are cached briefly, unlike
one-shot CLI runs which rediscover everything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		initLogger(cfg.Log)
		slog.Info("herdscout serving",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
			"mode", cfg.Server.Mode,
			"baseURL", cfg.Site.BaseURL,
		)

		session, err := browser.NewSession(cfg.Browser)
		if err != nil {
			slog.Error("failed to launch browser", "error", err)
			return err
		}
		defer session.Close()

		svc := search.NewCached(
			search.New(session, cfg.Site, cfg.Browser.Proxy),
			cache.New(cfg.Cache.SchemaTTL),
		)

		startTime := time.Now()
		router := api.NewRouter(svc, cfg, startTime)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			slog.Info("HTTP server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("HTTP server error", "error", err)
				os.Exit(1)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		// Give in-flight requests 5 seconds to complete.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("HTTP server forced shutdown", "error", err)
		} else {
			slog.Info("HTTP server drained gracefully")
		}

		// session.Close() runs via defer and kills Chrome.
		slog.Info("herdscout stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
