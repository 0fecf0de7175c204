package usecase

import (
	"testing"

	"github.com/gamebites/backend/internal/domain"
)

func TestToUSD(t *testing.T) {
	table := domain.RateTable{
		domain.CurrencyUSD: 1,
		domain.CurrencyEUR: 0.5,
		domain.CurrencyTRY: 34.5,
	}

	testCases := []struct {
		name     string
		amount   float64
		currency string
		table    domain.RateTable
		want     float64
	}{
		{
			name:     "euro divides by its rate",
			amount:   100,
			currency: domain.CurrencyEUR,
			table:    table,
			want:     200,
		},
		{
			name:     "usd passes through untouched",
			amount:   42.5,
			currency: domain.CurrencyUSD,
			table:    table,
			want:     42.5,
		},
		{
			name:     "currency missing from table passes through",
			amount:   9.99,
			currency: domain.CurrencyPLN,
			table:    table,
			want:     9.99,
		},
		{
			name:     "nil table passes through",
			amount:   9.99,
			currency: domain.CurrencyEUR,
			table:    nil,
			want:     9.99,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToUSD(tc.amount, tc.currency, tc.table)
			if got != tc.want {
				t.Errorf("ToUSD(%v, %s) = %v, want %v", tc.amount, tc.currency, got, tc.want)
			}
		})
	}
}

func TestFromUSD(t *testing.T) {
	table := domain.RateTable{
		domain.CurrencyUSD: 1,
		domain.CurrencyTRY: 34.5,
	}

	if got := FromUSD(2, domain.CurrencyTRY, table); got != 69 {
		t.Errorf("FromUSD(2, TRY) = %v, want 69", got)
	}
	if got := FromUSD(2, domain.CurrencyEUR, table); got != 2 {
		t.Errorf("FromUSD with missing rate = %v, want passthrough 2", got)
	}
}

func TestDisplayRate(t *testing.T) {
	table := domain.RateTable{domain.CurrencyEUR: 0.92}

	if got := DisplayRate(domain.CurrencyEUR, table); got != 0.92 {
		t.Errorf("DisplayRate(EUR) = %v, want 0.92", got)
	}
	if got := DisplayRate(domain.CurrencyJPY, table); got != 1 {
		t.Errorf("DisplayRate for missing currency = %v, want 1", got)
	}
}
