package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"wifi-agent/internal/di"
	"wifi-agent/internal/infrastructure/env"
	"wifi-agent/internal/infrastructure/wireless"
	"wifi-agent/internal/transport/httpapi"
	"wifi-agent/internal/transport/stdio"
)

func main() {
	envService := env.NewEnvService()

	var (
		transport      string
		listenAddr     string
		logLevel       string
		commandTimeout time.Duration
		noMetrics      bool
	)
	pflag.StringVar(&transport, "transport", envService.GetWithDefault("WIFI_TRANSPORT", "http"), "transport binding: http or stdio")
	pflag.StringVar(&listenAddr, "listen", envService.GetWithDefault("WIFI_HTTP_ADDR", ":8090"), "HTTP listen address")
	pflag.StringVar(&logLevel, "log-level", envService.GetWithDefault("WIFI_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	pflag.DurationVar(&commandTimeout, "command-timeout", envService.GetDuration("WIFI_COMMAND_TIMEOUT", wireless.DefaultCommandTimeout), "timeout for one diagnostic command")
	pflag.BoolVar(&noMetrics, "no-metrics", false, "disable the Prometheus /metrics endpoint")
	pflag.Parse()

	cfg := di.DefaultConfig()
	cfg.LogLevel = logLevel
	cfg.CommandTimeout = commandTimeout
	cfg.EnableMetrics = !noMetrics

	container, err := di.NewContainer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch transport {
	case "stdio":
		err = runStdio(ctx, container)
	case "http":
		err = runHTTP(ctx, container, listenAddr)
	default:
		err = fmt.Errorf("unknown transport %q (want http or stdio)", transport)
	}
	if err != nil {
		container.Logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func runStdio(ctx context.Context, container *di.Container) error {
	container.Logger.Info("serving stdio transport")
	server := stdio.NewServer(container.Dispatcher, container.Logger, os.Stdin, os.Stdout)
	return server.Run(ctx)
}

func runHTTP(ctx context.Context, container *di.Container, addr string) error {
	var metricsHandler http.Handler
	if container.Metrics != nil {
		metricsHandler = container.Metrics.Handler()
	}
	api := httpapi.NewServer(container.Dispatcher, container.Logger, metricsHandler)

	server := &http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("serving HTTP transport", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		container.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}
}
