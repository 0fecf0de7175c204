package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gamebites/backend/internal/domain"
)

// nonPriceCharsRegex strips everything that is not a digit, comma, or period.
var nonPriceCharsRegex = regexp.MustCompile(`[^\d.,]`)

// currencyMarkers is the ordered marker table for currency detection.
// Entries are tried in order against the raw text and the first hit wins,
// so ordering is part of the contract. Detection must run on the original
// text: stripping discards the very symbols being looked for.
var currencyMarkers = []struct {
	markers []string
	code    string
}{
	{[]string{"€"}, domain.CurrencyEUR},
	{[]string{"₺", "TL", "TRY"}, domain.CurrencyTRY},
	{[]string{"£"}, domain.CurrencyGBP},
	{[]string{"¥"}, domain.CurrencyJPY},
	{[]string{"R$"}, domain.CurrencyBRL},
	{[]string{"A$", "AU$"}, domain.CurrencyAUD},
	{[]string{"C$", "CA$"}, domain.CurrencyCAD},
	{[]string{"zł"}, domain.CurrencyPLN},
}

// ParsePrice turns raw storefront price text ("$2.79 USD", "2,79€",
// "₺96.36") into a Money. Absence of a parseable number reports false, not
// an error. Zero and negative amounts pass through; callers reject <= 0.
//
// Only the first comma is converted to a period, and parsing takes the
// longest valid numeric prefix, so values carrying both a thousands and a
// decimal separator ("1,234.56") are not disambiguated: the leftover
// separator cuts the number short ("1.234"). That matches the storefront
// formats actually seen; large amounts are an accepted limitation.
func ParsePrice(text string) (domain.Money, bool) {
	if text == "" {
		return domain.Money{}, false
	}

	cleaned := nonPriceCharsRegex.ReplaceAllString(text, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	cleaned = numericPrefix(cleaned)
	if cleaned == "" || cleaned == "." {
		return domain.Money{}, false
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.Money{}, false
	}

	return domain.Money{Amount: amount, Currency: DetectCurrency(text)}, true
}

// numericPrefix returns the longest leading run of digits with at most one
// period. A second period or a leftover comma ends the number.
func numericPrefix(s string) string {
	seenPeriod := false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' && !seenPeriod {
			seenPeriod = true
			continue
		}
		return s[:i]
	}
	return s
}

// DetectCurrency scans the raw text against the ordered marker table and
// returns the first matching currency code, defaulting to USD.
func DetectCurrency(text string) string {
	for _, entry := range currencyMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(text, marker) {
				return entry.code
			}
		}
	}
	return domain.CurrencyUSD
}
