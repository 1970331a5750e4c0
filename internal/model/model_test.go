package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradePassThrough(t *testing.T) {
	raw := `{"id":1234,"price":{"amount":"45000000.0","unit":"ngn"},"volume":{"amount":"0.01","unit":"btc"},"side":"buy","created_at":"2024-01-02T10:00:00Z","extra":[1,2,3]}`

	var trade Trade
	require.NoError(t, json.Unmarshal([]byte(raw), &trade))

	out, err := json.Marshal(trade)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestTradeZeroValueMarshalsNull(t *testing.T) {
	out, err := json.Marshal(Trade{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNewTradeCopiesInput(t *testing.T) {
	raw := []byte(`{"id":1}`)
	trade := NewTrade(raw)
	raw[1] = 'X'

	assert.Equal(t, `{"id":1}`, string(trade.Raw()))
}

func TestTradeSummary(t *testing.T) {
	trade := NewTrade([]byte(`{"id":"99","side":"sell","created_at":"2024-01-02T10:00:00Z","price":"1"}`))

	summary, err := trade.Summary()
	require.NoError(t, err)
	assert.Equal(t, "99", summary.ID)
	assert.Equal(t, "sell", summary.Side)
	assert.Equal(t, "2024-01-02T10:00:00Z", summary.CreatedAt)

	_, err = Trade{}.Summary()
	assert.Error(t, err)
}

func TestEnvelopeSucceeded(t *testing.T) {
	tests := []struct {
		name     string
		envelope *Envelope
		want     bool
	}{
		{name: "nil envelope", envelope: nil, want: false},
		{name: "success", envelope: &Envelope{Status: "success"}, want: true},
		{name: "error", envelope: &Envelope{Status: "error"}, want: false},
		{name: "case sensitive", envelope: &Envelope{Status: "Success"}, want: false},
		{name: "empty status", envelope: &Envelope{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.envelope.Succeeded())
		})
	}
}

func TestEnvelopeDecode(t *testing.T) {
	body := `{"status":"success","message":"Successful","data":[{"id":1},{"id":2}]}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Successful", env.Message)
	require.Len(t, env.Data, 2)
	assert.Equal(t, `{"id":1}`, string(env.Data[0].Raw()))
	assert.Equal(t, `{"id":2}`, string(env.Data[1].Raw()))
}
