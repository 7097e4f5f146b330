package dataflows

import (
	"fmt"
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]+$`)

// ValidateSymbol checks that a ticker symbol has a plausible shape before
// it is sent to the provider.
func ValidateSymbol(symbol string) error {
	s := strings.TrimSpace(strings.ToUpper(symbol))
	if s == "" {
		return fmt.Errorf("ticker symbol cannot be empty")
	}
	if len(s) > 10 {
		return fmt.Errorf("ticker symbol %q too long (max 10 characters)", symbol)
	}
	if !symbolPattern.MatchString(s) {
		return fmt.Errorf("invalid ticker symbol %q (use letters, numbers, dots, and hyphens only)", symbol)
	}
	return nil
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.TrimSpace(strings.ToUpper(symbol))
}
