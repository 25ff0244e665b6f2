package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"

	"stonkgaze/internal/analysis"
	"stonkgaze/internal/config"
	"stonkgaze/internal/httpx"
	"stonkgaze/internal/ledger"
	"stonkgaze/internal/logging"
	"stonkgaze/internal/market"
	"stonkgaze/internal/market/yahoo"
)

func main() {
	_ = godotenv.Load()
	logging.Init()
	log := logging.L()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.WithError(err).Fatal("config")
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	var p market.Provider = yahoo.New(
		yahoo.WithBaseURL(cfg.Market.Endpoint),
		yahoo.WithHTTPClient(httpClient.HTTP),
		yahoo.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
	)
	if cfg.Market.MinRequestIntervalSec > 0 {
		p = &market.Throttle{P: p, Interval: time.Duration(cfg.Market.MinRequestIntervalSec) * time.Second}
	}
	if cfg.Market.CacheTTLSeconds > 0 {
		p = &market.Cache{
			P:        p,
			TTL:      time.Duration(cfg.Market.CacheTTLSeconds) * time.Second,
			MaxItems: cfg.Market.CacheMaxItems,
		}
	}
	fetcher := &market.Fetcher{Provider: p, MaxRetries: cfg.Market.MaxRetries}

	var engine *analysis.Engine
	if os.Getenv("GEMINI_API_KEY") != "" {
		client, err := genai.NewClient(context.Background(), nil)
		if err != nil {
			log.WithError(err).Warn("genai client unavailable; /api/analyze disabled")
		} else {
			engine = analysis.NewEngine(client, cfg.Analysis.Model)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set; /api/analyze disabled")
	}

	var book *ledger.Client
	if cfg.Ledger.URL != "" {
		book = ledger.New(cfg.Ledger.URL, cfg.Ledger.Token, httpClient.HTTP)
	} else {
		log.Warn("SHEETS_API_URL not set; /api/portfolio disabled")
	}

	s := &server{
		fetcher:    fetcher,
		engine:     engine,
		ledger:     book,
		trollLevel: cfg.Analysis.DefaultTrollLevel,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/analyze/demo", s.handleAnalyzeDemo)
	mux.HandleFunc("GET /api/ticker/{symbol}", s.handleTicker)
	mux.HandleFunc("POST /api/portfolio", s.handlePortfolio)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(withGzip(recoverPanic(limitBody(mux)))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
