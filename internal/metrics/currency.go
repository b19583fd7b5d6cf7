// internal/metrics/currency.go
package metrics

import "strings"

// Supported display currencies.
const (
	CurrencyGBP = "GBP"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// DefaultPurchaseCurrency is assumed when an item carries no currency code.
const DefaultPurchaseCurrency = CurrencyGBP

// Converter converts monetary amounts between currency codes using a rate
// table keyed by code, with each rate expressed as units per one GBP.
type Converter struct {
	rates map[string]float64
}

// NewConverter builds a converter from a rate table. Codes are upper-cased;
// non-positive rates are dropped. GBP is always present with rate 1.
func NewConverter(rates map[string]float64) *Converter {
	table := map[string]float64{CurrencyGBP: 1}
	for code, rate := range rates {
		if rate > 0 {
			table[strings.ToUpper(strings.TrimSpace(code))] = rate
		}
	}
	return &Converter{rates: table}
}

// DefaultConverter returns a converter with the built-in fallback rates.
func DefaultConverter() *Converter {
	return NewConverter(map[string]float64{
		CurrencyUSD: 1.27,
		CurrencyEUR: 1.17,
	})
}

// Normalize converts amount from one currency code to another.
//
// Identical codes short-circuit to the exact input, not a rounded round-trip.
// An unknown code on either side falls back to treating the amount as already
// being in the target currency; bad data must not break the caller's view.
func (c *Converter) Normalize(amount float64, from, to string) float64 {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return amount
	}

	fromRate, okFrom := c.rates[from]
	toRate, okTo := c.rates[to]
	if !okFrom || !okTo {
		return amount
	}

	return amount / fromRate * toRate
}

// Known reports whether the converter has a rate for the given code.
func (c *Converter) Known(code string) bool {
	_, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
