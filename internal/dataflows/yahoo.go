package dataflows

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooFinanceClient serves delayed quote snapshots. Yahoo needs no API
// key, so it stays usable when the primary provider credential is absent
// or rate limited.
type YahooFinanceClient struct{}

func NewYahooFinanceClient() *YahooFinanceClient {
	return &YahooFinanceClient{}
}

// GetQuote gets current quote data for a symbol.
func (yf *YahooFinanceClient) GetQuote(symbol string) (*QuoteSnapshot, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data returned for %s", symbol)
	}

	return &QuoteSnapshot{
		Symbol:    symbol,
		Price:     decimal.NewFromFloat(q.RegularMarketPrice),
		Open:      decimal.NewFromFloat(q.RegularMarketOpen),
		High:      decimal.NewFromFloat(q.RegularMarketDayHigh),
		Low:       decimal.NewFromFloat(q.RegularMarketDayLow),
		Volume:    int64(q.RegularMarketVolume),
		Timestamp: time.Now(),
	}, nil
}
