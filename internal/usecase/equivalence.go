package usecase

import (
	"math"
	"strconv"

	"github.com/gamebites/backend/internal/domain"
)

// quantityBands is the ordered display banding table. Predicates are tried
// in order and the first match wins; 0.5 must hit the "½" band rather than
// fall through to rounding, so the order is part of the contract.
var quantityBands = []struct {
	match   func(q float64) bool
	display string
}{
	{func(q float64) bool { return q >= 0.4 && q < 0.6 }, "½"},
	{func(q float64) bool { return q >= 0.6 && q < 1 }, "1"},
	{func(q float64) bool { return q >= 0.25 && q < 0.4 }, "⅓"},
	{func(q float64) bool { return q > 0 && q < 0.25 }, "¼"},
	{func(q float64) bool { return q == 0 }, "0"},
}

// FormatQuantity renders a purchase quantity for the badge: sub-unit values
// become vulgar fractions, everything else rounds to the nearest integer.
func FormatQuantity(q float64) string {
	for _, band := range quantityBands {
		if band.match(q) {
			return band.display
		}
	}
	return strconv.FormatFloat(math.Round(q), 'f', -1, 64)
}

// Calculate computes how many units of product a game priced at gamePriceUSD
// buys, plus the restatement of the game price in the user's display
// currency. Returns nil when product or table is absent.
//
// A product whose converted price is 0 yields quantity +Inf. That is an
// accepted degenerate case, not guarded here.
func Calculate(gamePriceUSD float64, product *domain.ReferenceProduct, table domain.RateTable, userCurrency string) *domain.EquivalenceResult {
	if product == nil || table == nil {
		return nil
	}

	productPriceUSD := ToUSD(product.Price.Amount, product.Price.Currency, table)
	quantity := gamePriceUSD / productPriceUSD
	displayRate := DisplayRate(userCurrency, table)

	return &domain.EquivalenceResult{
		Quantity:                quantity,
		QuantityDisplay:         FormatQuantity(quantity),
		GamePriceUSD:            gamePriceUSD,
		GamePriceInUserCurrency: gamePriceUSD * displayRate,
		ProductPriceLocal:       product.Price.Amount,
		ProductCurrency:         product.Price.Currency,
		ExchangeRate:            displayRate,
	}
}
