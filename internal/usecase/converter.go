package usecase

import "github.com/gamebites/backend/internal/domain"

// ToUSD converts an amount from the given currency into USD using a table of
// units-per-USD rates. USD input, a nil table, or a missing entry all return
// the amount unchanged: conversion failure never blocks badge rendering, it
// just reports an unconverted number.
func ToUSD(amount float64, currency string, table domain.RateTable) float64 {
	if currency == domain.CurrencyUSD || table == nil {
		return amount
	}
	r, ok := table.Rate(currency)
	if !ok {
		return amount
	}
	return amount / r
}

// FromUSD restates a USD amount in the given display currency. A missing
// entry uses a rate of 1.
func FromUSD(amount float64, currency string, table domain.RateTable) float64 {
	return amount * DisplayRate(currency, table)
}

// DisplayRate returns the units-per-USD rate for a display currency,
// defaulting to 1 when the table has no entry.
func DisplayRate(currency string, table domain.RateTable) float64 {
	if r, ok := table.Rate(currency); ok {
		return r
	}
	return 1
}
