package mock

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// GeneratorConfig holds configuration for the fake trades feed
type GeneratorConfig struct {
	BasePrices map[string]float64
	Volatility float64
	TradesPer  int
	Seed       int64
}

// DefaultGeneratorConfig returns a sensible default configuration
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		BasePrices: map[string]float64{
			"btcngn":  95000000.0,
			"ethngn":  5200000.0,
			"usdtngn": 1550.0,
		},
		Volatility: 0.01, // 1% volatility
		TradesPer:  20,
	}
}

// Server serves a fake version of the public trades endpoint
type Server struct {
	config    GeneratorConfig
	basePrice map[string]float64
	tradeID   int64
	rng       *rand.Rand
	mu        sync.Mutex
}

type amount struct {
	Unit   string `json:"unit"`
	Amount string `json:"amount"`
}

type market struct {
	ID        string `json:"id"`
	BaseUnit  string `json:"base_unit"`
	QuoteUnit string `json:"quote_unit"`
}

type trade struct {
	ID        int64  `json:"id"`
	Price     amount `json:"price"`
	Volume    amount `json:"volume"`
	Total     amount `json:"total"`
	Side      string `json:"side"`
	Market    market `json:"market"`
	CreatedAt string `json:"created_at"`
}

type envelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    []trade `json:"data"`
}

// NewServer creates a fake trades server with default config
func NewServer() *Server {
	return NewServerWithConfig(DefaultGeneratorConfig())
}

// NewServerWithConfig creates a fake trades server with custom config
func NewServerWithConfig(config GeneratorConfig) *Server {
	// Copy base prices so the random walk does not touch the caller's map
	basePrice := make(map[string]float64, len(config.BasePrices))
	for k, v := range config.BasePrices {
		basePrice[k] = v
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.TradesPer <= 0 {
		config.TradesPer = DefaultGeneratorConfig().TradesPer
	}

	return &Server{
		config:    config,
		basePrice: basePrice,
		tradeID:   1,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Handler returns the router for the fake API, rooted at /api/v1/trades
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/trades/{market}", s.handleTrades).Methods(http.MethodGet)
	return r
}

// BaseURL returns the trades prefix for a fake server listening on host
func BaseURL(host string) string {
	return "http://" + host + "/api/v1/trades/"
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	market := mux.Vars(r)["market"]

	resp, status := s.Trades(market)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Trades builds the envelope for a market, newest trade first
func (s *Server) Trades(marketID string) (envelope, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.basePrice[marketID]
	if !ok {
		return envelope{Status: "error", Message: "Market not found"}, http.StatusNotFound
	}

	base, quote := splitMarket(marketID)
	now := time.Now().UTC()
	trades := make([]trade, 0, s.config.TradesPer)

	for i := 0; i < s.config.TradesPer; i++ {
		t := s.generateRandomTrade(price, base, quote, marketID, now.Add(-time.Duration(i)*time.Second))
		trades = append(trades, t)
		price, _ = strconv.ParseFloat(t.Price.Amount, 64)
	}
	s.basePrice[marketID] = price

	return envelope{Status: "success", Message: "Successful", Data: trades}, http.StatusOK
}

func (s *Server) generateRandomTrade(price float64, base, quote, marketID string, at time.Time) trade {
	priceVariation := s.rng.NormFloat64() * s.config.Volatility * price
	tradePrice := price + priceVariation

	// Ensure price doesn't go negative
	if tradePrice <= 0 {
		tradePrice = price * 0.99
	}

	volume := 0.001 + s.rng.Float64()*0.5
	side := "buy"
	if s.rng.Intn(2) == 1 {
		side = "sell"
	}

	t := trade{
		ID:        s.tradeID,
		Price:     amount{Unit: quote, Amount: strconv.FormatFloat(tradePrice, 'f', 2, 64)},
		Volume:    amount{Unit: base, Amount: strconv.FormatFloat(volume, 'f', 6, 64)},
		Total:     amount{Unit: quote, Amount: strconv.FormatFloat(tradePrice*volume, 'f', 2, 64)},
		Side:      side,
		Market:    market{ID: marketID, BaseUnit: base, QuoteUnit: quote},
		CreatedAt: at.Format(time.RFC3339),
	}
	s.tradeID++
	return t
}

// splitMarket splits identifiers such as "btcngn" or "usdtngn" on the quote unit
func splitMarket(id string) (string, string) {
	for _, quote := range []string{"ngn", "usdt", "btc", "ghs"} {
		if strings.HasSuffix(id, quote) && len(id) > len(quote) {
			return strings.TrimSuffix(id, quote), quote
		}
	}
	if len(id) > 3 {
		return id[:len(id)-3], id[len(id)-3:]
	}
	return id, ""
}
