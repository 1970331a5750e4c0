package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/model"
)

// ErrNullEnvelope is returned when the upstream body decodes to JSON null
var ErrNullEnvelope = errors.New("upstream returned a null envelope")

// ClientConfig holds configuration for the Quidax trades client
type ClientConfig struct {
	// BaseURL is the trades endpoint prefix; the market is appended to it.
	BaseURL string

	// Timeout bounds a single upstream request, including reading the body.
	Timeout time.Duration

	// Logger is the structured logger for the client.
	Logger *slog.Logger

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
}

// ClientConfigDefaults returns a config with default values
func ClientConfigDefaults() ClientConfig {
	return ClientConfig{
		BaseURL: "https://app.quidax.io/api/v1/trades/",
		Timeout: 10 * time.Second,
		Logger:  slog.Default(),
	}
}

// StatusError is returned when the upstream answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected upstream status (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("unexpected upstream status (HTTP %d): %s", e.StatusCode, e.Body)
}

// QuidaxClient fetches public trades from the Quidax API.
// One client is built at start-up and shared by all requests.
type QuidaxClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewQuidaxClient creates a client from config, filling unset fields with defaults
func NewQuidaxClient(config ClientConfig) (*QuidaxClient, error) {
	applyDefaults(&config, ClientConfigDefaults())

	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &QuidaxClient{
		baseURL:    ensureTrailingSlash(config.BaseURL),
		httpClient: httpClient,
		logger:     config.Logger.With("component", "quidax-client"),
	}, nil
}

func applyDefaults(config *ClientConfig, defaults ClientConfig) {
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
}

func ensureTrailingSlash(base string) string {
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

// TradesURL builds the upstream URL for a market
func (c *QuidaxClient) TradesURL(market string) string {
	return c.baseURL + url.PathEscape(market)
}

// GetTrades issues a single GET for the market's recent trades and decodes the envelope.
// It does not interpret the envelope status.
func (c *QuidaxClient) GetTrades(ctx context.Context, market string) (*model.Envelope, error) {
	endpoint := c.TradesURL(market)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	var envelope *model.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if envelope == nil {
		return nil, ErrNullEnvelope
	}

	c.logger.Debug("fetched trades envelope",
		"market", market,
		"status", envelope.Status,
		"count", len(envelope.Data))

	return envelope, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
