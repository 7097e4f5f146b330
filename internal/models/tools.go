package models

// Tool input/output shapes. Inputs are unmarshalled from model-generated
// JSON arguments; outputs are serialized back into the transcript. Every
// output carries an Error field so provider failures come back as data,
// not faults.

type LastTradeInput struct {
	Symbol string `json:"symbol"`
}

type LastTradeOutput struct {
	Symbol    string `json:"symbol,omitempty"`
	Price     string `json:"price,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

type AggregatesInput struct {
	Symbol     string `json:"symbol"`
	Multiplier int    `json:"multiplier"`
	Timespan   string `json:"timespan"`
	From       string `json:"from"`
	To         string `json:"to"`
	Limit      int    `json:"limit"`
}

type AggregateBar struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume int64  `json:"volume"`
}

type AggregatesOutput struct {
	Symbol string          `json:"symbol,omitempty"`
	Bars   []*AggregateBar `json:"bars,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type TickerNewsInput struct {
	Symbol string `json:"symbol"`
	Limit  int    `json:"limit"`
}

type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Summary     string `json:"summary,omitempty"`
}

type TickerNewsOutput struct {
	Symbol   string      `json:"symbol,omitempty"`
	Articles []*NewsItem `json:"articles,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type FinancialsInput struct {
	Symbol string `json:"symbol"`
	Limit  int    `json:"limit"`
}

type FinancialReport struct {
	FiscalPeriod string `json:"fiscal_period"`
	FiscalYear   string `json:"fiscal_year"`
	Revenues     string `json:"revenues"`
	NetIncome    string `json:"net_income"`
	EPS          string `json:"eps"`
}

type FinancialsOutput struct {
	Symbol  string             `json:"symbol,omitempty"`
	Reports []*FinancialReport `json:"reports,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type QuoteSnapshotInput struct {
	Symbol string `json:"symbol"`
}

type QuoteSnapshotOutput struct {
	Symbol string `json:"symbol,omitempty"`
	Price  string `json:"price,omitempty"`
	Open   string `json:"open,omitempty"`
	High   string `json:"high,omitempty"`
	Low    string `json:"low,omitempty"`
	Volume int64  `json:"volume,omitempty"`
	Error  string `json:"error,omitempty"`
}

type FetchArticleInput struct {
	URL string `json:"url"`
}

type FetchArticleOutput struct {
	Title       string `json:"title,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Content     string `json:"content,omitempty"`
	Error       string `json:"error,omitempty"`
}
