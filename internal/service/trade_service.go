package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/metrics"
	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/model"
)

// TradeSource fetches the raw trades envelope for a market
type TradeSource interface {
	GetTrades(ctx context.Context, market string) (*model.Envelope, error)
}

// errNoData marks a successful envelope without a trade list
var errNoData = errors.New("envelope has no data")

// fetchResult keeps the reason behind an empty list until the public boundary
type fetchResult struct {
	trades  []model.Trade
	outcome string
	err     error
}

// TradeService fetches recent trades for the API and never fails
type TradeService struct {
	source  TradeSource
	metrics *metrics.Prometheus
	logger  *slog.Logger
}

// NewTradeService creates a new trade service
func NewTradeService(source TradeSource, m *metrics.Prometheus, logger *slog.Logger) *TradeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TradeService{
		source:  source,
		metrics: m,
		logger:  logger,
	}
}

// FetchTrades returns the market's recent trades exactly as the exchange sent them,
// or an empty slice when the upstream call fails or the envelope is not a success.
func (ts *TradeService) FetchTrades(ctx context.Context, market string) []model.Trade {
	start := time.Now()
	result := ts.fetch(ctx, market)
	ts.metrics.ObserveFetch(result.outcome, time.Since(start), len(result.trades))

	if result.err != nil {
		ts.logger.Warn("returning empty trade list",
			"market", market,
			"outcome", result.outcome,
			"error", result.err)
		return []model.Trade{}
	}

	if ts.logger.Enabled(ctx, slog.LevelDebug) && len(result.trades) > 0 {
		if latest, err := result.trades[0].Summary(); err == nil {
			ts.logger.Debug("fetched trades",
				"market", market,
				"count", len(result.trades),
				"first_trade_id", latest.ID,
				"first_trade_at", latest.CreatedAt)
		}
	}

	return result.trades
}

func (ts *TradeService) fetch(ctx context.Context, market string) fetchResult {
	envelope, err := ts.source.GetTrades(ctx, market)
	if err != nil {
		return fetchResult{
			outcome: metrics.OutcomeUpstreamError,
			err:     fmt.Errorf("failed to get trades for market %s: %w", market, err),
		}
	}

	if !envelope.Succeeded() {
		status := "<nil>"
		if envelope != nil {
			status = fmt.Sprintf("%q (%s)", envelope.Status, envelope.Message)
		}
		return fetchResult{
			outcome: metrics.OutcomeBadStatus,
			err:     fmt.Errorf("upstream status %s for market %s", status, market),
		}
	}

	if envelope.Data == nil {
		return fetchResult{
			outcome: metrics.OutcomeNoData,
			err:     fmt.Errorf("market %s: %w", market, errNoData),
		}
	}

	return fetchResult{
		trades:  envelope.Data,
		outcome: metrics.OutcomeSuccess,
	}
}
