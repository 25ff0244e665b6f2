package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stonkgaze/internal/ledger"
	"stonkgaze/internal/market"
)

type downProvider struct{}

func (downProvider) Name() string { return "down" }

func (downProvider) Snapshot(context.Context, string) (market.Snapshot, error) {
	return market.Snapshot{}, errors.New("upstream down")
}

func (downProvider) History(context.Context, string, int) ([]market.PricePoint, error) {
	return nil, errors.New("upstream down")
}

func newTestServer() *server {
	return &server{
		fetcher: &market.Fetcher{
			Provider:   downProvider{},
			MaxRetries: 0,
			Sleep:      func(time.Duration) {},
		},
		trollLevel: 50,
	}
}

func testMux(s *server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/analyze/demo", s.handleAnalyzeDemo)
	mux.HandleFunc("GET /api/ticker/{symbol}", s.handleTicker)
	mux.HandleFunc("POST /api/portfolio", s.handlePortfolio)
	return mux
}

func TestHandleTicker_FallbackQuote(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/api/ticker/AAPL", http.NoBody)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool         `json:"success"`
		Data    market.Quote `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success {
		t.Fatalf("ticker endpoint must never fail, got %+v", body)
	}
	if !body.Data.Synthetic {
		t.Fatalf("provider is down, quote should be synthetic")
	}
	if body.Data.Name != "Apple Inc." {
		t.Fatalf("want catalogue name, got %q", body.Data.Name)
	}
	if len(body.Data.History) != 42 {
		t.Fatalf("want 42 history points, got %d", len(body.Data.History))
	}
}

func TestHandleTicker_CryptoAssetType(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/api/ticker/BTC?asset_type=crypto", http.NoBody)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var body struct {
		Data market.Quote `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Data.Symbol != "BTC-USD" {
		t.Fatalf("want normalized crypto symbol, got %q", body.Data.Symbol)
	}
}

func TestHandleAnalyze_TooShort(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"webpage_text": "too short"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for short input, got %d", rec.Code)
	}
}

func TestHandleAnalyze_BadJSON(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for malformed body, got %d", rec.Code)
	}
}

func TestHandleAnalyze_EngineDisabled(t *testing.T) {
	mux := testMux(newTestServer())

	text := strings.Repeat("market news ", 10)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"webpage_text": "`+text+`"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503 when engine is not configured, got %d", rec.Code)
	}
}

func TestHandlePortfolio_NotConfigured(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", strings.NewReader(`{"action": "portfolio", "user_id": "u1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503 without a ledger, got %d", rec.Code)
	}
}

func TestHandlePortfolio_UnknownAction(t *testing.T) {
	s := newTestServer()
	s.ledger = ledger.New("http://ledger.invalid", "", nil)
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", strings.NewReader(`{"action": "drop_tables"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown actions must be rejected locally, got %d", rec.Code)
	}
}

func TestHandlePortfolio_Passthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding upstream body: %v", err)
		}
		if body["action"] != "trade" {
			t.Errorf("want action trade, got %v", body["action"])
		}
		if body["token"] != "s3cret" {
			t.Errorf("client token must be injected server-side, got %v", body["token"])
		}
		w.Write([]byte(`{"success": true, "cash": 9500}`))
	}))
	defer upstream.Close()

	s := newTestServer()
	s.ledger = ledger.New(upstream.URL, "s3cret", nil)
	mux := testMux(s)

	// a token in the request body must not reach the ledger
	payload := `{"action": "trade", "token": "spoofed", "user_id": "u1", "ticker": "AAPL", "side": "buy", "qty": 1, "price": 178.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "9500") {
		t.Fatalf("ledger response should pass through, got %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("want healthy, got %q", body["status"])
	}
	if body["ai_engine"] != "disabled" {
		t.Fatalf("engine is nil, want disabled, got %q", body["ai_engine"])
	}
}

func TestHandleRoot(t *testing.T) {
	mux := testMux(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "vibing") {
		t.Fatalf("unexpected root body: %s", rec.Body.String())
	}
}
