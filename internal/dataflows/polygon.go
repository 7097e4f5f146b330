package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/quantfold/marketagent/internal/config"
)

// ProviderError is a failed provider response (auth, rate limit, unknown
// symbol, malformed body). Callers at the tool boundary convert it into a
// textual result instead of propagating it.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("polygon: %s (status %d)", e.Message, e.StatusCode)
}

// PolygonClient is a thin pass-through over the Polygon REST API. It does
// not cache and performs exactly one attempt per call; error recovery is
// the caller's concern.
type PolygonClient struct {
	client *resty.Client
	apiKey string
}

func NewPolygonClient(cfg *config.Config) *PolygonClient {
	client := resty.New()
	client.SetBaseURL(cfg.PolygonBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", cfg.UserAgent)

	return &PolygonClient{
		client: client,
		apiKey: cfg.PolygonAPIKey,
	}
}

type polygonTradeResponse struct {
	Status  string `json:"status"`
	Results struct {
		Price     float64 `json:"p"`
		Size      float64 `json:"s"`
		Exchange  int     `json:"x"`
		Timestamp int64   `json:"t"`
	} `json:"results"`
}

// LastTrade returns the most recent trade for a symbol.
func (pc *PolygonClient) LastTrade(ctx context.Context, symbol string) (*LastTrade, error) {
	if pc.apiKey == "" {
		return nil, config.ErrCredentialMissing
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	resp, err := pc.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", pc.apiKey).
		Get("/v2/last/trade/" + symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last trade for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, newProviderError(resp)
	}

	var body polygonTradeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse last trade response: %w", err)
	}

	return &LastTrade{
		Symbol:    symbol,
		Price:     decimal.NewFromFloat(body.Results.Price),
		Size:      int64(body.Results.Size),
		Exchange:  body.Results.Exchange,
		Timestamp: time.Unix(0, body.Results.Timestamp),
	}, nil
}

type polygonAggsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
		VWAP      float64 `json:"vw"`
		Timestamp int64   `json:"t"`
	} `json:"results"`
}

// Aggregates returns OHLCV bars for a symbol over a date window.
func (pc *PolygonClient) Aggregates(ctx context.Context, req AggregatesRequest) ([]*AggregateBar, error) {
	if pc.apiKey == "" {
		return nil, config.ErrCredentialMissing
	}
	if err := ValidateSymbol(req.Symbol); err != nil {
		return nil, err
	}
	symbol := NormalizeSymbol(req.Symbol)

	multiplier := req.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	timespan := req.Timespan
	if timespan == "" {
		timespan = "day"
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 120
	}

	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/%d/%s/%s/%s",
		symbol, multiplier, timespan, req.From, req.To)

	resp, err := pc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"adjusted": "true",
			"sort":     "asc",
			"limit":    fmt.Sprintf("%d", limit),
			"apiKey":   pc.apiKey,
		}).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aggregates for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, newProviderError(resp)
	}

	var body polygonAggsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse aggregates response: %w", err)
	}

	bars := make([]*AggregateBar, 0, len(body.Results))
	for _, r := range body.Results {
		bars = append(bars, &AggregateBar{
			Symbol:    symbol,
			Open:      decimal.NewFromFloat(r.Open),
			High:      decimal.NewFromFloat(r.High),
			Low:       decimal.NewFromFloat(r.Low),
			Close:     decimal.NewFromFloat(r.Close),
			Volume:    int64(r.Volume),
			VWAP:      decimal.NewFromFloat(r.VWAP),
			Timestamp: time.UnixMilli(r.Timestamp),
		})
	}
	return bars, nil
}

type polygonNewsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title        string   `json:"title"`
		ArticleURL   string   `json:"article_url"`
		Description  string   `json:"description"`
		PublishedUTC string   `json:"published_utc"`
		Tickers      []string `json:"tickers"`
		Publisher    struct {
			Name string `json:"name"`
		} `json:"publisher"`
	} `json:"results"`
}

// TickerNews returns recent articles mentioning a symbol.
func (pc *PolygonClient) TickerNews(ctx context.Context, symbol string, limit int) ([]*NewsArticle, error) {
	if pc.apiKey == "" {
		return nil, config.ErrCredentialMissing
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)
	if limit <= 0 {
		limit = 10
	}

	resp, err := pc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ticker": symbol,
			"limit":  fmt.Sprintf("%d", limit),
			"apiKey": pc.apiKey,
		}).
		Get("/v2/reference/news")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, newProviderError(resp)
	}

	var body polygonNewsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	articles := make([]*NewsArticle, 0, len(body.Results))
	for _, r := range body.Results {
		published, _ := time.Parse(time.RFC3339, r.PublishedUTC)
		articles = append(articles, &NewsArticle{
			Title:       r.Title,
			Content:     r.Description,
			URL:         r.ArticleURL,
			Source:      r.Publisher.Name,
			PublishedAt: published,
			Tickers:     r.Tickers,
		})
	}
	return articles, nil
}

type polygonFinancialsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FiscalPeriod string `json:"fiscal_period"`
		FiscalYear   string `json:"fiscal_year"`
		Financials   struct {
			IncomeStatement struct {
				Revenues struct {
					Value float64 `json:"value"`
				} `json:"revenues"`
				NetIncomeLoss struct {
					Value float64 `json:"value"`
				} `json:"net_income_loss"`
				BasicEPS struct {
					Value float64 `json:"value"`
				} `json:"basic_earnings_per_share"`
			} `json:"income_statement"`
		} `json:"financials"`
	} `json:"results"`
}

// Financials returns condensed recent financial filings for a symbol.
func (pc *PolygonClient) Financials(ctx context.Context, symbol string, limit int) ([]*FinancialReport, error) {
	if pc.apiKey == "" {
		return nil, config.ErrCredentialMissing
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)
	if limit <= 0 {
		limit = 4
	}

	resp, err := pc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ticker": symbol,
			"limit":  fmt.Sprintf("%d", limit),
			"apiKey": pc.apiKey,
		}).
		Get("/vX/reference/financials")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financials for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, newProviderError(resp)
	}

	var body polygonFinancialsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse financials response: %w", err)
	}

	reports := make([]*FinancialReport, 0, len(body.Results))
	for _, r := range body.Results {
		reports = append(reports, &FinancialReport{
			Symbol:       symbol,
			FiscalPeriod: r.FiscalPeriod,
			FiscalYear:   r.FiscalYear,
			Revenues:     decimal.NewFromFloat(r.Financials.IncomeStatement.Revenues.Value),
			NetIncome:    decimal.NewFromFloat(r.Financials.IncomeStatement.NetIncomeLoss.Value),
			EPS:          decimal.NewFromFloat(r.Financials.IncomeStatement.BasicEPS.Value),
		})
	}
	return reports, nil
}

type polygonErrorBody struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newProviderError(resp *resty.Response) *ProviderError {
	var body polygonErrorBody
	msg := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Message != "" {
			msg = body.Message
		}
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &ProviderError{
		StatusCode: resp.StatusCode(),
		Message:    msg,
	}
}
