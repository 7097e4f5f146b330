package dataflows

import "testing"

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "aapl", "BRK.B", "700.HK", " MSFT "}
	for _, s := range valid {
		if err := ValidateSymbol(s); err != nil {
			t.Errorf("ValidateSymbol(%q): unexpected error %v", s, err)
		}
	}

	invalid := []string{"", "   ", "WAYTOOLONGSYMBOL", "AA PL", "AAPL$"}
	for _, s := range invalid {
		if err := ValidateSymbol(s); err == nil {
			t.Errorf("ValidateSymbol(%q): expected error", s)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol(" aapl "); got != "AAPL" {
		t.Errorf("expected AAPL, got %q", got)
	}
}
