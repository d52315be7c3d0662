package feed

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAmount   float64
		wantCurrency string
		wantParsed   bool
	}{
		{"Simple euro price", "19.99 EUR", 19.99, "EUR", true},
		{"Integer amount", "20 USD", 20, "USD", true},
		{"Lowercase currency uppercased", "9.99 usd", 9.99, "USD", true},
		{"Leading and trailing whitespace", "  5.50 GBP  ", 5.5, "GBP", true},
		{"Free text", "free", 0, "", false},
		{"Price range", "10-20 EUR", 0, "", false},
		{"Empty string", "", 0, "", false},
		{"Currency only", "EUR", 0, "", false},
		{"Amount only", "19.99", 0, "", false},
		{"Four letter currency", "19.99 EURO", 0, "", false},
		{"Two letter currency", "19.99 EU", 0, "", false},
		{"Thousands separator", "1,299.00 EUR", 0, "", false},
		{"Currency before amount", "EUR 19.99", 0, "", false},
		{"Trailing garbage", "19.99 EUR approx", 0, "", false},
		{"No space between amount and code", "19.99EUR", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, currency := ParsePrice(tt.input)

			if !tt.wantParsed {
				if amount != nil || currency != nil {
					t.Errorf("ParsePrice(%q) = (%v, %v), want (nil, nil)", tt.input, amount, currency)
				}
				return
			}

			if amount == nil || currency == nil {
				t.Fatalf("ParsePrice(%q) = (%v, %v), want (%v, %q)", tt.input, amount, currency, tt.wantAmount, tt.wantCurrency)
			}
			if *amount != tt.wantAmount {
				t.Errorf("ParsePrice(%q) amount = %v, want %v", tt.input, *amount, tt.wantAmount)
			}
			if *currency != tt.wantCurrency {
				t.Errorf("ParsePrice(%q) currency = %q, want %q", tt.input, *currency, tt.wantCurrency)
			}
		})
	}
}
