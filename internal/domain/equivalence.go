package domain

// EquivalenceResult is the computed "this game costs N units of product X"
// for a single price element. Derived and ephemeral; recomputed per element,
// never persisted.
type EquivalenceResult struct {
	Quantity                float64 `json:"quantity"`
	QuantityDisplay         string  `json:"quantityDisplay"`
	GamePriceUSD            float64 `json:"gamePriceUsd"`
	GamePriceInUserCurrency float64 `json:"gamePriceInUserCurrency"`
	ProductPriceLocal       float64 `json:"productPriceLocal"`
	ProductCurrency         string  `json:"productCurrency"`
	ExchangeRate            float64 `json:"exchangeRate"`
}
