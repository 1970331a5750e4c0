package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/model"
	"github.com/gin-gonic/gin"
)

// This file serves as the main entry point for the API package. It defines the APIHandler struct and its dependencies.
// The package structure is as follows:
// - api.go: Main API handler, routing and server construction (this file)
// - handler.go: HTTP request handlers
// - middleware.go: Middleware functions

// Constants
const (
	DefaultTimeout      = 30 * time.Second
	ServiceVersion      = "1.0.0"
	ServiceName         = "quidax-trades-feed"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
	TradesRoute         = "/api/v1/feeds/:market/trades"
)

// TradeService is an interface defining the method to fetch trades for a market.
// Implementations absorb every failure and return an empty slice instead.
type TradeService interface {
	FetchTrades(ctx context.Context, market string) []model.Trade
}

// APIHandler handles HTTP requests using Gin framework
type APIHandler struct {
	tradeService TradeService
	logger       *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(tradeService TradeService, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		tradeService: tradeService,
		logger:       logger,
	}
}

// NewServer wraps the routes in an http.Server listening on host:port
func (h *APIHandler) NewServer(host, port string) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           h.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes() *gin.Engine {
	// Set Gin to release mode for production
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(h.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// API routes
	router.GET(TradesRoute, h.GetTradesForMarket)
	router.GET("/health", h.HealthCheck)

	return router
}
