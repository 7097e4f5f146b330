package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
)

// LastTrade is the most recent trade reported for a symbol.
type LastTrade struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Size      int64           `json:"size"`
	Exchange  int             `json:"exchange"`
	Timestamp time.Time       `json:"timestamp"`
}

// AggregateBar is one OHLCV bar from an aggregates window.
type AggregateBar struct {
	Symbol    string          `json:"symbol"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	VWAP      decimal.Decimal `json:"vwap"`
	Timestamp time.Time       `json:"timestamp"`
}

// AggregatesRequest describes one aggregates window query.
type AggregatesRequest struct {
	Symbol     string `json:"symbol"`
	Multiplier int    `json:"multiplier"`
	Timespan   string `json:"timespan"`
	From       string `json:"from"`
	To         string `json:"to"`
	Limit      int    `json:"limit"`
}

// NewsArticle is one published article about a ticker.
type NewsArticle struct {
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Tickers     []string  `json:"tickers,omitempty"`
}

// FinancialReport is a condensed view of one filed financial statement.
type FinancialReport struct {
	Symbol       string          `json:"symbol"`
	FiscalPeriod string          `json:"fiscal_period"`
	FiscalYear   string          `json:"fiscal_year"`
	Revenues     decimal.Decimal `json:"revenues"`
	NetIncome    decimal.Decimal `json:"net_income"`
	EPS          decimal.Decimal `json:"eps"`
}

// QuoteSnapshot is the delayed quote picture for one symbol.
type QuoteSnapshot struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}
