package domain

// RateTable maps a currency code to units of that currency per 1 USD.
// The USD entry is always exactly 1. A table is replaced wholesale on
// refresh, never partially mutated, so readers need no synchronization.
type RateTable map[string]float64

// Rate returns the units-per-USD rate for code, or false if the table has
// no entry (or the table itself is nil).
func (t RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t[code]
	return r, ok
}

// FallbackRates returns the hardcoded table used when the live rate service
// is unavailable. Values are refreshed by hand alongside releases.
func FallbackRates() RateTable {
	return RateTable{
		CurrencyUSD: 1,
		CurrencyEUR: 0.92,
		CurrencyTRY: 34.5,
		CurrencyGBP: 0.79,
	}
}

// RatesResponse mirrors the exchange-rate service payload.
type RatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}
