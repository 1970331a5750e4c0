package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/api"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/admin"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/config"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/data"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/metrics"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/mock"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Server.SlogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	servers := make([]*http.Server, 0, 3)

	// Local fake upstream for development without network access
	if cfg.Upstream.Mock {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("starting mock upstream: %w", err)
		}
		mockServer := &http.Server{Handler: mock.NewServer().Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := mockServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("mock upstream failed", slog.Any("error", err))
			}
		}()
		servers = append(servers, mockServer)
		cfg.Upstream.BaseURL = mock.BaseURL(listener.Addr().String())
		logger.Info("using mock upstream", slog.String("base_url", cfg.Upstream.BaseURL))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMetrics := metrics.NewPrometheusMetrics(registry)

	// 1. Create the shared upstream client
	client, err := data.NewQuidaxClient(data.ClientConfig{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating quidax client: %w", err)
	}

	// 2. Create trade service (fetches and unwraps upstream envelopes)
	tradeService := service.NewTradeService(client, promMetrics, logger)

	// 3. Create API handler and servers
	apiServer := api.NewAPIHandler(tradeService, logger).NewServer(cfg.Server.Host, cfg.Server.Port)
	adminServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.AdminPort),
		Handler:           admin.NewRouter(registry, api.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}
	servers = append(servers, apiServer, adminServer)

	errCh := make(chan error, 2)
	for _, srv := range []*http.Server{apiServer, adminServer} {
		go func(srv *http.Server) {
			logger.Info("server listening", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listening on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	logger.Info("trades feed started",
		slog.String("endpoint", "GET /api/v1/feeds/{market}/trades"),
		slog.String("upstream", cfg.Upstream.BaseURL),
		slog.Duration("upstream_timeout", cfg.Upstream.Timeout))

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal, stopping services")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(srv *http.Server) {
			defer wg.Done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("error shutting down http server", slog.String("address", srv.Addr), slog.Any("error", err))
			}
		}(srv)
	}
	wg.Wait()

	return runErr
}
