package market

import (
	"context"
	"math"
	"strings"
	"time"
)

// PricePoint is a single element of a price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Quote is the normalized shape returned for any ticker lookup.
// It is constructed fresh per request and never mutated afterwards.
// Synthetic marks price/name fields produced by the fallback path;
// HistorySynthetic marks a fabricated history under an otherwise live quote.
type Quote struct {
	Symbol           string       `json:"ticker"`
	Name             string       `json:"name"`
	Price            float64      `json:"current_price"`
	PreviousClose    float64      `json:"previous_close"`
	ChangePercent    float64      `json:"change_24h_percent"`
	MarketCap        int64        `json:"market_cap,omitempty"`
	Volume           int64        `json:"volume,omitempty"`
	Currency         string       `json:"currency"`
	History          []PricePoint `json:"price_history"`
	Synthetic        bool         `json:"synthetic"`
	HistorySynthetic bool         `json:"history_synthetic"`
}

// Snapshot is the live view of a symbol as reported by a data provider.
type Snapshot struct {
	Symbol        string
	Name          string
	Price         float64
	PreviousClose float64
	MarketCap     int64
	Volume        int64
	Currency      string
}

// Provider exposes live market data for a single symbol.
type Provider interface {
	Name() string
	Snapshot(ctx context.Context, symbol string) (Snapshot, error)
	History(ctx context.Context, symbol string, days int) ([]PricePoint, error)
}

// Trend biases the drift of a synthetic series.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// ParseTrend is case-insensitive and defaults to FLAT.
func ParseTrend(s string) Trend {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return TrendUp
	case "DOWN":
		return TrendDown
	default:
		return TrendFlat
	}
}

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "UP"
	case TrendDown:
		return "DOWN"
	default:
		return "FLAT"
	}
}

// drift is the total relative move across a whole synthetic window.
func (t Trend) drift() float64 {
	switch t {
	case TrendUp:
		return 0.05
	case TrendDown:
		return -0.05
	default:
		return 0.01
	}
}

// Forecast is the optional hint from the analysis step. It only shapes
// synthetic series, never live data.
type Forecast struct {
	Trend      Trend
	Volatility float64 // 0..100
}

// DefaultForecast is used when the analysis step supplied no hint.
var DefaultForecast = Forecast{Trend: TrendFlat, Volatility: 50}

func (f Forecast) clamp() Forecast {
	if f.Volatility < 0 {
		f.Volatility = 0
	}
	if f.Volatility > 100 {
		f.Volatility = 100
	}
	return f
}

// NormalizeSymbol uppercases the symbol and, for the crypto asset class,
// appends the -USD pairing when absent. Idempotent.
func NormalizeSymbol(symbol, assetClass string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.EqualFold(strings.TrimSpace(assetClass), "crypto") && !strings.HasSuffix(s, "-USD") {
		s += "-USD"
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
