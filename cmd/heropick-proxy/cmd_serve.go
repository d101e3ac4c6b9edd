package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"heropick/internal/config"
	"heropick/internal/marvel"
	"heropick/internal/server"
)

const shutdownTimeout = 5 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.ParseServerEnv()
	if err != nil {
		return err
	}

	logger.Info("keys loaded",
		"public_prefix", keyPrefix(cfg.PublicKey),
		"private_loaded", cfg.PrivateKey != "")
	if !cfg.HasCredentials() {
		logger.Warn("MARVEL_PUBLIC or MARVEL_PRIVATE missing, searches will fail with 500")
	}

	upstream := marvel.New(marvel.Config{
		BaseURL:    cfg.UpstreamBaseURL,
		PublicKey:  cfg.PublicKey,
		PrivateKey: cfg.PrivateKey,
		Timeout:    cfg.UpstreamTimeout,
		Rate:       rate.Limit(cfg.UpstreamRate),
		Burst:      cfg.UpstreamBurst,
	}, nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(upstream, server.Options{
		SearchLimit: cfg.SearchLimit,
		Logger:      logger,
		Metrics:     server.NewMetrics(reg),
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("proxy listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// keyPrefix shows enough of a key to tell which one is loaded
func keyPrefix(key string) string {
	if len(key) > 6 {
		return key[:6]
	}
	return key
}
