package dataflows

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/quantfold/marketagent/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		PolygonAPIKey:  "test-key",
		PolygonBaseURL: baseURL,
		UserAgent:      "marketagent-test/1.0",
	}
}

func TestLastTrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/last/trade/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing apiKey query param")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":{"p":172.5,"s":100,"x":4,"t":1710000000000000000}}`))
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	trade, err := client.LastTrade(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("LastTrade: %v", err)
	}
	if trade.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", trade.Symbol)
	}
	if got := trade.Price.StringFixed(2); got != "172.50" {
		t.Errorf("expected price 172.50, got %s", got)
	}
	if trade.Size != 100 {
		t.Errorf("expected size 100, got %d", trade.Size)
	}
}

func TestLastTradeUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"NOT_FOUND","message":"Ticker not found."}`))
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	_, err := client.LastTrade(context.Background(), "ZZZZZ")
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if provErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", provErr.StatusCode)
	}
	if provErr.Message != "Ticker not found." {
		t.Errorf("expected provider message, got %q", provErr.Message)
	}
}

func TestCredentialMissingBeforeRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.PolygonAPIKey = ""
	client := NewPolygonClient(cfg)

	ctx := context.Background()
	if _, err := client.LastTrade(ctx, "AAPL"); !errors.Is(err, config.ErrCredentialMissing) {
		t.Errorf("LastTrade: expected ErrCredentialMissing, got %v", err)
	}
	if _, err := client.Aggregates(ctx, AggregatesRequest{Symbol: "AAPL", From: "2026-01-01", To: "2026-01-31"}); !errors.Is(err, config.ErrCredentialMissing) {
		t.Errorf("Aggregates: expected ErrCredentialMissing, got %v", err)
	}
	if _, err := client.TickerNews(ctx, "AAPL", 5); !errors.Is(err, config.ErrCredentialMissing) {
		t.Errorf("TickerNews: expected ErrCredentialMissing, got %v", err)
	}
	if _, err := client.Financials(ctx, "AAPL", 4); !errors.Is(err, config.ErrCredentialMissing) {
		t.Errorf("Financials: expected ErrCredentialMissing, got %v", err)
	}

	if hits.Load() != 0 {
		t.Errorf("expected no network requests without a credential, server saw %d", hits.Load())
	}
}

func TestAggregates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/aggs/ticker/AAPL/range/1/day/2026-01-01/2026-01-31" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[
			{"o":170.1,"h":173.0,"l":169.5,"c":172.5,"v":1000000,"vw":171.8,"t":1767225600000},
			{"o":172.6,"h":174.2,"l":171.9,"c":173.1,"v":900000,"vw":173.0,"t":1767312000000}
		]}`))
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	bars, err := client.Aggregates(context.Background(), AggregatesRequest{
		Symbol: "AAPL",
		From:   "2026-01-01",
		To:     "2026-01-31",
	})
	if err != nil {
		t.Fatalf("Aggregates: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if got := bars[0].Close.StringFixed(2); got != "172.50" {
		t.Errorf("expected first close 172.50, got %s", got)
	}
	if bars[1].Volume != 900000 {
		t.Errorf("expected second volume 900000, got %d", bars[1].Volume)
	}
}

func TestTickerNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ticker") != "AAPL" {
			t.Errorf("expected ticker query param AAPL, got %q", r.URL.Query().Get("ticker"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[
			{"title":"Apple ships something","article_url":"https://example.com/a","description":"Details inside.",
			 "published_utc":"2026-08-30T12:00:00Z","tickers":["AAPL"],"publisher":{"name":"Example Wire"}}
		]}`))
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	articles, err := client.TickerNews(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("TickerNews: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Source != "Example Wire" {
		t.Errorf("expected source Example Wire, got %s", articles[0].Source)
	}
	if articles[0].PublishedAt.IsZero() {
		t.Error("expected parsed publish time")
	}
}

func TestFinancials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vX/reference/financials" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[
			{"fiscal_period":"Q3","fiscal_year":"2026","financials":{"income_statement":{
				"revenues":{"value":85500000000},
				"net_income_loss":{"value":21400000000},
				"basic_earnings_per_share":{"value":1.42}}}}
		]}`))
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	reports, err := client.Financials(context.Background(), "AAPL", 1)
	if err != nil {
		t.Fatalf("Financials: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].FiscalPeriod != "Q3" {
		t.Errorf("expected fiscal period Q3, got %s", reports[0].FiscalPeriod)
	}
	if got := reports[0].EPS.StringFixed(2); got != "1.42" {
		t.Errorf("expected EPS 1.42, got %s", got)
	}
}

func TestInvalidSymbolRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := NewPolygonClient(testConfig(srv.URL))
	if _, err := client.LastTrade(context.Background(), "AA PL"); err == nil {
		t.Error("expected validation error for malformed symbol")
	}
	if hits.Load() != 0 {
		t.Errorf("expected validation before any request, server saw %d", hits.Load())
	}
}
