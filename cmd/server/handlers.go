package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"stonkgaze/internal/analysis"
	"stonkgaze/internal/ledger"
	"stonkgaze/internal/logging"
	"stonkgaze/internal/market"
	"stonkgaze/internal/metrics"
)

const version = "1.0.0"

// minAnalyzeChars is the minimum amount of scraped text worth analyzing.
const minAnalyzeChars = 50

type server struct {
	fetcher    *market.Fetcher
	engine     *analysis.Engine
	ledger     *ledger.Client
	trollLevel int
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "vibing",
		"message": "StonkGaze API is running fr fr",
		"version": version,
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	aiState := "ready"
	if s.engine == nil {
		aiState = "disabled"
	}
	ledgerState := "ready"
	if s.ledger == nil {
		ledgerState = "disabled"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"ai_engine":        aiState,
		"market_connector": "ready",
		"ledger":           ledgerState,
	})
}

type analyzeRequest struct {
	WebpageText string `json:"webpage_text"`
	URL         string `json:"url,omitempty"`
	TrollLevel  *int   `json:"troll_level,omitempty"`
}

type analyzeResponse struct {
	Success    bool                     `json:"success"`
	Analysis   *analysis.Recommendation `json:"analysis,omitempty"`
	MarketData *market.Quote            `json:"market_data,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(strings.TrimSpace(req.WebpageText)) < minAnalyzeChars {
		httpError(w, http.StatusBadRequest, "webpage text too short, need at least 50 characters of content")
		return
	}
	level := s.trollLevel
	if req.TrollLevel != nil {
		level = *req.TrollLevel
	}
	s.analyze(w, r, req.WebpageText, level)
}

// handleAnalyzeDemo runs the pipeline on a hardcoded sample so the API can
// be exercised without the browser extension.
func (s *server) handleAnalyzeDemo(w http.ResponseWriter, r *http.Request) {
	s.analyze(w, r, sampleWebpageText, s.trollLevel)
}

func (s *server) analyze(w http.ResponseWriter, r *http.Request, text string, level int) {
	if s.engine == nil {
		httpError(w, http.StatusServiceUnavailable, "analysis engine is not configured")
		return
	}
	metrics.AnalysisRequests.Inc()

	rec, err := s.engine.Analyze(r.Context(), text, level)
	if err != nil {
		metrics.AnalysisFailures.WithLabelValues("model").Inc()
		logging.L().WithError(err).Error("analysis failed")
		writeJSON(w, http.StatusBadGateway, analyzeResponse{Success: false, Error: err.Error()})
		return
	}

	fc := market.DefaultForecast
	if rec.Forecast != nil {
		fc = market.Forecast{
			Trend:      market.ParseTrend(rec.Forecast.Trend),
			Volatility: rec.Forecast.Volatility,
		}
	}
	quote := s.fetcher.Fetch(r.Context(), rec.Ticker, rec.AssetType, &fc)
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Analysis: rec, MarketData: &quote})
}

func (s *server) handleTicker(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.PathValue("symbol"))
	if symbol == "" {
		httpError(w, http.StatusBadRequest, "missing symbol")
		return
	}
	assetType := r.URL.Query().Get("asset_type")
	if assetType == "" {
		assetType = "stock"
	}

	var fc *market.Forecast
	if t := r.URL.Query().Get("trend"); t != "" {
		vol, _ := strconv.ParseFloat(r.URL.Query().Get("volatility"), 64)
		if vol == 0 {
			vol = market.DefaultForecast.Volatility
		}
		fc = &market.Forecast{Trend: market.ParseTrend(t), Volatility: vol}
	}

	quote := s.fetcher.Fetch(r.Context(), symbol, assetType, fc)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": quote})
}

// ledgerActions the passthrough accepts. Anything else is rejected before
// touching the remote service.
var ledgerActions = map[string]bool{
	"user/init":   true,
	"portfolio":   true,
	"trade":       true,
	"leaderboard": true,
}

func (s *server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		httpError(w, http.StatusServiceUnavailable, "portfolio ledger is not configured")
		return
	}
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	action, _ := payload["action"].(string)
	if !ledgerActions[action] {
		httpError(w, http.StatusBadRequest, "unknown or missing action")
		return
	}
	delete(payload, "action")
	delete(payload, "token")

	raw, err := s.ledger.Do(r.Context(), action, payload)
	if err != nil {
		logging.L().WithError(err).WithField("action", action).Error("ledger call failed")
		httpError(w, http.StatusBadGateway, "ledger call failed")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// sampleWebpageText feeds the demo endpoint.
const sampleWebpageText = `
Breaking News: Massive Rainfall Expected Across Singapore This Weekend

The Meteorological Service Singapore (MSS) has issued a weather advisory warning residents
of heavy thunderstorms and potential flash floods. The wet weather is expected to persist
through Sunday, with some areas receiving up to 100mm of rainfall.

Commuters are advised to plan their journeys carefully and consider alternative transportation.
Several outdoor events have been cancelled or postponed due to the weather conditions.

Local umbrella retailers report a 300% surge in sales as Singaporeans rush to prepare for
the incoming storms. Food delivery services are also seeing increased demand as people
prefer to stay indoors.
`
