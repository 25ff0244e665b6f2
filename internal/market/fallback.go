package market

import (
	"hash/fnv"
	"math/rand"
)

// fallbackEntry is a static (display name, reference price) pair for a
// well-known symbol. Defined at process start, never mutated.
type fallbackEntry struct {
	Name  string
	Price float64
}

var fallbackCatalog = map[string]fallbackEntry{
	// Major equities
	"AAPL":  {"Apple Inc.", 178.50},
	"MSFT":  {"Microsoft Corporation", 412.30},
	"GOOGL": {"Alphabet Inc.", 141.80},
	"AMZN":  {"Amazon.com Inc.", 178.20},
	"NVDA":  {"NVIDIA Corporation", 118.40},
	"META":  {"Meta Platforms Inc.", 505.75},
	"TSLA":  {"Tesla Inc.", 248.90},
	"NFLX":  {"Netflix Inc.", 628.40},
	"DIS":   {"The Walt Disney Company", 96.15},
	"UBER":  {"Uber Technologies Inc.", 72.40},
	"LYFT":  {"Lyft Inc.", 14.85},
	"DASH":  {"DoorDash Inc.", 112.60},
	"RBLX":  {"Roblox Corporation", 38.25},
	"EA":    {"Electronic Arts Inc.", 138.70},
	"TTWO":  {"Take-Two Interactive Software", 152.30},
	"SONY":  {"Sony Group Corporation", 85.90},
	"SHOP":  {"Shopify Inc.", 64.20},
	"EBAY":  {"eBay Inc.", 52.35},
	"AMD":   {"Advanced Micro Devices", 155.10},
	"INTC":  {"Intel Corporation", 30.45},
	"PLTR":  {"Palantir Technologies", 24.60},
	"COIN":  {"Coinbase Global Inc.", 205.80},
	"HOOD":  {"Robinhood Markets Inc.", 18.95},
	"GME":   {"GameStop Corp.", 23.40},
	"AMC":   {"AMC Entertainment Holdings", 4.85},
	"SPY":   {"SPDR S&P 500 ETF Trust", 520.60},
	"QQQ":   {"Invesco QQQ Trust", 445.30},

	// Major crypto pairs
	"BTC-USD":  {"Bitcoin USD", 62450.00},
	"ETH-USD":  {"Ethereum USD", 3280.00},
	"SOL-USD":  {"Solana USD", 148.70},
	"DOGE-USD": {"Dogecoin USD", 0.14},
	"ADA-USD":  {"Cardano USD", 0.46},
	"XRP-USD":  {"XRP USD", 0.53},
}

// LookupFallback returns the catalogue entry for a symbol, if present.
func LookupFallback(symbol string) (name string, price float64, ok bool) {
	e, ok := fallbackCatalog[symbol]
	if !ok {
		return "", 0, false
	}
	return e.Name, e.Price, true
}

const (
	seedPriceMin = 20.00
	seedPriceMax = 420.69
)

// SeedPrice derives a deterministic pseudo-random reference price in
// [seedPriceMin, seedPriceMax) for a symbol absent from the catalogue.
// The generator is request-scoped and seeded from a hash of the symbol,
// so no shared random state is ever touched.
func SeedPrice(symbol string) float64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return seedPriceMin + rng.Float64()*(seedPriceMax-seedPriceMin)
}
