package tools

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/quantfold/marketagent/internal/config"
	"github.com/quantfold/marketagent/internal/dataflows"
	"github.com/quantfold/marketagent/internal/models"
)

// MarketDataSource is the provider surface the Polygon-backed tools need.
type MarketDataSource interface {
	LastTrade(ctx context.Context, symbol string) (*dataflows.LastTrade, error)
	Aggregates(ctx context.Context, req dataflows.AggregatesRequest) ([]*dataflows.AggregateBar, error)
	TickerNews(ctx context.Context, symbol string, limit int) ([]*dataflows.NewsArticle, error)
	Financials(ctx context.Context, symbol string, limit int) ([]*dataflows.FinancialReport, error)
}

// QuoteSource serves keyless delayed quotes.
type QuoteSource interface {
	GetQuote(symbol string) (*dataflows.QuoteSnapshot, error)
}

// ArticleFetcher downloads and extracts one article page.
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, articleURL string) (*dataflows.NewsArticle, error)
}

// NewToolkit wires the full tool set against live clients.
func NewToolkit(cfg *config.Config) []tool.BaseTool {
	polygon := dataflows.NewPolygonClient(cfg)
	yahoo := dataflows.NewYahooFinanceClient()
	scraper := dataflows.NewArticleScraperClient(cfg)

	return []tool.BaseTool{
		NewLastTradeTool(polygon),
		NewAggregatesTool(polygon),
		NewTickerNewsTool(polygon),
		NewFinancialsTool(polygon),
		NewQuoteSnapshotTool(yahoo),
		NewFetchArticleTool(scraper),
	}
}

// NewLastTradeTool reports the most recent trade for a symbol.
func NewLastTradeTool(src MarketDataSource) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_last_trade",
			Desc: "Get the most recent trade (latest price) for a stock ticker symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol, e.g. AAPL",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.LastTradeInput) (*models.LastTradeOutput, error) {
			trade, err := src.LastTrade(ctx, input.Symbol)
			if err != nil {
				return &models.LastTradeOutput{Error: err.Error()}, nil
			}
			return &models.LastTradeOutput{
				Symbol:    trade.Symbol,
				Price:     trade.Price.StringFixed(2),
				Size:      trade.Size,
				Timestamp: trade.Timestamp.Format(time.RFC3339),
			}, nil
		},
	)
}

// NewAggregatesTool reports OHLCV bars over a date window.
func NewAggregatesTool(src MarketDataSource) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_aggregates",
			Desc: "Get aggregated OHLCV price bars for a stock ticker over a date range",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol, e.g. AAPL",
					Required: true,
				},
				"multiplier": {
					Type:     "integer",
					Desc:     "Size of the timespan multiplier (default: 1)",
					Required: false,
				},
				"timespan": {
					Type:     "string",
					Desc:     "Bar resolution: minute, hour, day, week, month (default: day)",
					Required: false,
				},
				"from": {
					Type:     "string",
					Desc:     "Window start date, YYYY-MM-DD",
					Required: true,
				},
				"to": {
					Type:     "string",
					Desc:     "Window end date, YYYY-MM-DD",
					Required: true,
				},
				"limit": {
					Type:     "integer",
					Desc:     "Maximum number of bars to return (default: 120)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.AggregatesInput) (*models.AggregatesOutput, error) {
			bars, err := src.Aggregates(ctx, dataflows.AggregatesRequest{
				Symbol:     input.Symbol,
				Multiplier: input.Multiplier,
				Timespan:   input.Timespan,
				From:       input.From,
				To:         input.To,
				Limit:      input.Limit,
			})
			if err != nil {
				return &models.AggregatesOutput{Error: err.Error()}, nil
			}

			out := &models.AggregatesOutput{Symbol: dataflows.NormalizeSymbol(input.Symbol)}
			for _, bar := range bars {
				out.Bars = append(out.Bars, &models.AggregateBar{
					Date:   bar.Timestamp.Format("2006-01-02"),
					Open:   bar.Open.StringFixed(2),
					High:   bar.High.StringFixed(2),
					Low:    bar.Low.StringFixed(2),
					Close:  bar.Close.StringFixed(2),
					Volume: bar.Volume,
				})
			}
			return out, nil
		},
	)
}

// NewTickerNewsTool reports recent articles mentioning a symbol.
func NewTickerNewsTool(src MarketDataSource) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_ticker_news",
			Desc: "Get recent news articles about a stock ticker symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol, e.g. AAPL",
					Required: true,
				},
				"limit": {
					Type:     "integer",
					Desc:     "Maximum number of articles to return (default: 10)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.TickerNewsInput) (*models.TickerNewsOutput, error) {
			articles, err := src.TickerNews(ctx, input.Symbol, input.Limit)
			if err != nil {
				return &models.TickerNewsOutput{Error: err.Error()}, nil
			}

			out := &models.TickerNewsOutput{Symbol: dataflows.NormalizeSymbol(input.Symbol)}
			for _, a := range articles {
				out.Articles = append(out.Articles, &models.NewsItem{
					Title:       a.Title,
					URL:         a.URL,
					Source:      a.Source,
					PublishedAt: a.PublishedAt.Format("2006-01-02"),
					Summary:     truncate(a.Content, 400),
				})
			}
			return out, nil
		},
	)
}

// NewFinancialsTool reports recent financial filings for a symbol.
func NewFinancialsTool(src MarketDataSource) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_financials",
			Desc: "Get recent financial statement summaries (revenue, net income, EPS) for a stock ticker",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol, e.g. AAPL",
					Required: true,
				},
				"limit": {
					Type:     "integer",
					Desc:     "Maximum number of filings to return (default: 4)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.FinancialsInput) (*models.FinancialsOutput, error) {
			reports, err := src.Financials(ctx, input.Symbol, input.Limit)
			if err != nil {
				return &models.FinancialsOutput{Error: err.Error()}, nil
			}

			out := &models.FinancialsOutput{Symbol: dataflows.NormalizeSymbol(input.Symbol)}
			for _, r := range reports {
				out.Reports = append(out.Reports, &models.FinancialReport{
					FiscalPeriod: r.FiscalPeriod,
					FiscalYear:   r.FiscalYear,
					Revenues:     r.Revenues.StringFixed(0),
					NetIncome:    r.NetIncome.StringFixed(0),
					EPS:          r.EPS.StringFixed(2),
				})
			}
			return out, nil
		},
	)
}

// NewQuoteSnapshotTool reports a keyless delayed quote from Yahoo Finance.
func NewQuoteSnapshotTool(src QuoteSource) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_quote_snapshot",
			Desc: "Get a delayed quote snapshot (price, open, high, low, volume) for a stock ticker from Yahoo Finance",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol, e.g. AAPL",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.QuoteSnapshotInput) (*models.QuoteSnapshotOutput, error) {
			snap, err := src.GetQuote(input.Symbol)
			if err != nil {
				return &models.QuoteSnapshotOutput{Error: err.Error()}, nil
			}
			return &models.QuoteSnapshotOutput{
				Symbol: snap.Symbol,
				Price:  snap.Price.StringFixed(2),
				Open:   snap.Open.StringFixed(2),
				High:   snap.High.StringFixed(2),
				Low:    snap.Low.StringFixed(2),
				Volume: snap.Volume,
			}, nil
		},
	)
}

// NewFetchArticleTool downloads one news article and extracts its text.
func NewFetchArticleTool(src ArticleFetcher) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "fetch_news_article",
			Desc: "Download a news article by URL and extract its title and body text",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"url": {
					Type:     "string",
					Desc:     "The article URL, typically from get_ticker_news",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.FetchArticleInput) (*models.FetchArticleOutput, error) {
			article, err := src.FetchArticle(ctx, input.URL)
			if err != nil {
				return &models.FetchArticleOutput{Error: err.Error()}, nil
			}
			return &models.FetchArticleOutput{
				Title:       article.Title,
				Source:      article.Source,
				PublishedAt: article.PublishedAt.Format("2006-01-02"),
				Content:     truncate(article.Content, 4000),
			}, nil
		},
	)
}

// truncate cuts s to max runes. Byte slicing would split multi-byte
// characters, which news text routinely contains.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
