package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"stonkgaze/internal/config"
	"stonkgaze/internal/httpx"
	"stonkgaze/internal/logging"
	"stonkgaze/internal/market"
	"stonkgaze/internal/market/yahoo"
)

// fetch is a one-shot CLI: resolve a quote for a symbol and print it as
// JSON. Useful for poking the fallback path with the endpoint pointed at
// a dead host.
func main() {
	var symbol string
	var assetType string
	var trend string
	var volatility float64
	var timeout int
	var configPath string

	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "ticker symbol")
	flag.StringVar(&assetType, "asset", getenv("ASSET_TYPE", "stock"), "asset type: stock or crypto")
	flag.StringVar(&trend, "trend", "", "forecast trend: UP, DOWN or FLAT (optional)")
	flag.Float64Var(&volatility, "volatility", 50, "forecast volatility 0-100")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	logging.Init()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	provider := yahoo.New(
		yahoo.WithBaseURL(cfg.Market.Endpoint),
		yahoo.WithHTTPClient(httpClient.HTTP),
		yahoo.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
	)
	fetcher := &market.Fetcher{Provider: provider, MaxRetries: cfg.Market.MaxRetries}

	var fc *market.Forecast
	if trend != "" {
		fc = &market.Forecast{Trend: market.ParseTrend(trend), Volatility: volatility}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec+5)*time.Second)
	defer cancel()

	quote := fetcher.Fetch(ctx, symbol, assetType, fc)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(quote)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
