package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/model"
	"github.com/gin-gonic/gin"
)

// GetTradesForMarket handles GET /api/v1/feeds/:market/trades requests.
// The market is forwarded verbatim and the response is always 200.
func (h *APIHandler) GetTradesForMarket(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	market := c.Param("market")

	trades := h.tradeService.FetchTrades(ctx, market)
	if trades == nil {
		trades = []model.Trade{}
	}

	h.logger.Debug("served trades",
		slog.String("request_id", requestID(c)),
		slog.String("market", market),
		slog.Int("count", len(trades)),
	)

	c.JSON(http.StatusOK, trades)
}

// HealthCheck handles GET /health requests
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

func requestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDContextKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}
