package model

import (
	"encoding/json"
	"errors"
)

// StatusSuccess is the only envelope status under which the trade list is used
const StatusSuccess = "success"

// Trade represents a single trade as returned by the exchange.
// The raw JSON object is kept as received so every field is passed through.
type Trade struct {
	raw json.RawMessage
}

// NewTrade wraps a raw JSON trade object
func NewTrade(raw []byte) Trade {
	return Trade{raw: append(json.RawMessage(nil), raw...)}
}

// Raw returns the trade exactly as it was received
func (t Trade) Raw() json.RawMessage {
	return t.raw
}

// MarshalJSON emits the trade as received
func (t Trade) MarshalJSON() ([]byte, error) {
	if len(t.raw) == 0 {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// UnmarshalJSON keeps a copy of the raw trade object
func (t *Trade) UnmarshalJSON(data []byte) error {
	if t == nil {
		return errors.New("model.Trade: UnmarshalJSON on nil pointer")
	}
	t.raw = append(t.raw[:0], data...)
	return nil
}

// TradeSummary is a read-only view over the fields we log
type TradeSummary struct {
	ID        any    `json:"id"`
	Side      string `json:"side"`
	CreatedAt string `json:"created_at"`
}

// Summary decodes the loggable fields of the trade
func (t Trade) Summary() (TradeSummary, error) {
	var s TradeSummary
	if len(t.raw) == 0 {
		return s, errors.New("empty trade")
	}
	err := json.Unmarshal(t.raw, &s)
	return s, err
}

// Envelope is the exchange response wrapper
type Envelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Data    []Trade `json:"data"`
}

// Succeeded reports whether the envelope carries a usable trade list
func (e *Envelope) Succeeded() bool {
	return e != nil && e.Status == StatusSuccess
}
