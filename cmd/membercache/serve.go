package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-member-cache/internal/config"
	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/pkg/di"
)

func serveCmd() *cobra.Command {
	var (
		listenAddr string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the member HTTP API configured from MEMBERCACHE_* environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.HTTPAddr = listenAddr
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid serve flags: %w", err)
			}
			logging.InitStructured(cfg.Log.Format, cfg.Log.Level)
			gin.SetMode(gin.ReleaseMode)

			container, err := di.NewContainer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			httpServer := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           container.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logging.Op().Info("membercache started", "addr", cfg.HTTPAddr, "cache_backend", cfg.Cache.Backend, "db_driver", cfg.DB.Driver)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logging.Op().Info("shutdown signal received", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown membercache: %w", err)
				}
				return nil
			case err := <-errCh:
				return fmt.Errorf("membercache server error: %w", err)
			}
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides MEMBERCACHE_HTTP_ADDR)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (overrides MEMBERCACHE_LOG_LEVEL)")

	return cmd
}
