package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OnuegbuUdochukwu/Quidax-public-trades-feed/internal/metrics"
)

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg)
	m.ObserveFetch(metrics.OutcomeBadStatus, time.Millisecond, 0)

	router := NewRouter(reg, "quidax-trades-feed")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tradesfeed_upstream_fetches_total{outcome="bad_status"} 1`)
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(prometheus.NewRegistry(), "quidax-trades-feed")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "quidax-trades-feed", body["service"])
}

func TestMethodNotAllowed(t *testing.T) {
	router := NewRouter(prometheus.NewRegistry(), "quidax-trades-feed")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
