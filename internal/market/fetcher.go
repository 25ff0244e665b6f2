package market

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"stonkgaze/internal/logging"
	"stonkgaze/internal/metrics"
)

const historyDays = 7

// Fetcher resolves quotes with bounded retries against a live provider
// and a total fallback path. Fetch never fails: every failure mode
// degrades to a synthetic quote.
type Fetcher struct {
	Provider Provider
	// MaxRetries is the number of extra live attempts after the first.
	// Negative means the default of 2.
	MaxRetries int
	// Sleep is called between failed attempts. Nil means time.Sleep.
	Sleep func(time.Duration)
	// Rand drives jitter on fallback quotes and synthetic series.
	// Nil means a time-seeded source.
	Rand *rand.Rand
}

// fetchState makes the retry/fallback control flow explicit: the fetcher
// attempts the live provider up to maxAttempts times, transitions to
// fallback exactly once on exhaustion, and is done after either path.
type fetchState int

const (
	stateAttempting fetchState = iota
	stateFallback
	stateDone
)

func (f *Fetcher) maxAttempts() int {
	if f.MaxRetries < 0 {
		return 3
	}
	return f.MaxRetries + 1
}

func (f *Fetcher) sleep(d time.Duration) {
	if f.Sleep != nil {
		f.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (f *Fetcher) rng() *rand.Rand {
	if f.Rand != nil {
		return f.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Fetch returns a populated Quote for the symbol, live if obtainable,
// synthetic otherwise. The forecast hint only shapes synthetic series.
func (f *Fetcher) Fetch(ctx context.Context, symbol, assetClass string, forecast *Forecast) Quote {
	metrics.QuoteFetches.Inc()

	normalized := NormalizeSymbol(symbol, assetClass)
	fc := DefaultForecast
	if forecast != nil {
		fc = forecast.clamp()
	}

	var (
		q       Quote
		attempt = 1
		max     = f.maxAttempts()
		state   = stateAttempting
	)
	if f.Provider == nil {
		state = stateFallback
	}
	for state != stateDone {
		switch state {
		case stateAttempting:
			snap, err := f.Provider.Snapshot(ctx, normalized)
			if err == nil && snap.Price > 0 {
				q = f.liveQuote(ctx, normalized, snap, fc)
				state = stateDone
				break
			}
			logging.L().WithFields(map[string]any{
				"symbol":  normalized,
				"attempt": attempt,
				"error":   errString(err),
			}).Warn("live quote attempt failed")
			if attempt >= max {
				state = stateFallback
				break
			}
			f.sleep(time.Duration(float64(attempt) * 0.5 * float64(time.Second)))
			attempt++
		case stateFallback:
			q = f.fallbackQuote(symbol, normalized, fc)
			state = stateDone
		}
	}
	return q
}

func (f *Fetcher) liveQuote(ctx context.Context, symbol string, snap Snapshot, fc Forecast) Quote {
	metrics.LiveQuotes.Inc()

	change := 0.0
	if snap.PreviousClose > 0 {
		change = (snap.Price - snap.PreviousClose) / snap.PreviousClose * 100
	}
	name := snap.Name
	if name == "" {
		name = symbol
	}
	currency := snap.Currency
	if currency == "" {
		currency = "USD"
	}
	q := Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         round2(snap.Price),
		PreviousClose: round2(snap.PreviousClose),
		ChangePercent: round2(change),
		MarketCap:     snap.MarketCap,
		Volume:        snap.Volume,
		Currency:      currency,
	}

	hist, err := f.Provider.History(ctx, symbol, historyDays)
	if err != nil || len(hist) == 0 {
		metrics.SyntheticHistories.Inc()
		logging.L().WithFields(map[string]any{
			"symbol": symbol,
			"error":  errString(err),
		}).Warn("history unavailable, substituting synthetic series")
		q.History = GenerateSeries(snap.Price, historyDays, fc.Trend, fc.Volatility, f.rng())
		q.HistorySynthetic = true
		return q
	}
	q.History = hist
	return q
}

func (f *Fetcher) fallbackQuote(original, normalized string, fc Forecast) Quote {
	metrics.FallbackQuotes.Inc()

	name, ref, ok := LookupFallback(normalized)
	if !ok {
		name, ref, ok = LookupFallback(strings.ToUpper(strings.TrimSpace(original)))
	}
	if !ok {
		name = strings.ToUpper(strings.TrimSpace(original))
		ref = SeedPrice(original)
	}
	logging.L().WithFields(map[string]any{
		"symbol":    normalized,
		"catalog":   ok,
		"reference": round2(ref),
	}).Info("serving synthetic quote")

	rng := f.rng()
	price := ref * (1 + (rng.Float64()*2-1)*0.02)
	change := (rng.Float64()*2 - 1) * 3
	return Quote{
		Symbol:           normalized,
		Name:             name,
		Price:            round2(price),
		PreviousClose:    round2(ref),
		ChangePercent:    round2(change),
		Currency:         "USD",
		History:          GenerateSeries(ref, historyDays, fc.Trend, fc.Volatility, rng),
		Synthetic:        true,
		HistorySynthetic: true,
	}
}

// Validate reports whether a symbol is known: catalogue hit (raw or
// crypto-suffixed) first, otherwise a single live existence check with
// no retry and no fallback-to-true.
func (f *Fetcher) Validate(ctx context.Context, symbol string) bool {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if _, _, ok := LookupFallback(s); ok {
		return true
	}
	if _, _, ok := LookupFallback(s + "-USD"); ok {
		return true
	}
	if f.Provider == nil {
		return false
	}
	snap, err := f.Provider.Snapshot(ctx, s)
	return err == nil && snap.Price > 0
}

func errString(err error) string {
	if err == nil {
		return "no usable price"
	}
	return err.Error()
}
