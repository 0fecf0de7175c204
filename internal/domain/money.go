package domain

import "math"

// Supported currency codes. The parser only ever emits codes from this set;
// anything else found in catalog data falls back to USD.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyTRY = "TRY"
	CurrencyGBP = "GBP"
	CurrencyJPY = "JPY"
	CurrencyBRL = "BRL"
	CurrencyAUD = "AUD"
	CurrencyCAD = "CAD"
	CurrencyPLN = "PLN"
	CurrencyCNY = "CNY"
)

var supportedCurrencies = map[string]bool{
	CurrencyUSD: true,
	CurrencyEUR: true,
	CurrencyTRY: true,
	CurrencyGBP: true,
	CurrencyJPY: true,
	CurrencyBRL: true,
	CurrencyAUD: true,
	CurrencyCAD: true,
	CurrencyPLN: true,
	CurrencyCNY: true,
}

// Money is an amount paired with a currency code.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Valid reports whether the amount is finite and non-negative.
// Zero and positive amounts are both valid; range policy beyond that
// (e.g. rejecting free games) belongs to callers.
func (m Money) Valid() bool {
	return !math.IsNaN(m.Amount) && !math.IsInf(m.Amount, 0) && m.Amount >= 0
}

// IsSupportedCurrency reports whether code is in the enumerated currency set.
func IsSupportedCurrency(code string) bool {
	return supportedCurrencies[code]
}

// NormalizeCurrency returns code if supported, otherwise USD.
func NormalizeCurrency(code string) string {
	if supportedCurrencies[code] {
		return code
	}
	return CurrencyUSD
}
