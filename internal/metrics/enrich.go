// internal/metrics/enrich.go
package metrics

import (
	"math"
	"time"

	"github.com/hypevault/backend-go/internal/domain"
)

// marketMarkup is the assumed markup over purchase price when the user has
// not set a market price yet.
const marketMarkup = 1.2

// Calculator computes the derived fields for one raw item. It is a pure
// function of the item, the display currency and the supplied clock.
type Calculator struct {
	conv *Converter
}

// NewCalculator creates a calculator over the given converter.
func NewCalculator(conv *Converter) *Calculator {
	if conv == nil {
		conv = DefaultConverter()
	}
	return &Calculator{conv: conv}
}

// Enrich resolves market price, profit, ROI and days-in-inventory for item.
//
// Market price falls back to a 20% markup over purchase price and is rounded
// to 2 decimals at the point of assignment. Profit is computed only after
// both prices are expressed in displayCurrency. A zero purchase price yields
// ROI 0 rather than a division blow-up. An unparseable purchase date degrades
// that item's day count to 0 without failing the batch.
func (c *Calculator) Enrich(item domain.Item, displayCurrency string, now time.Time) domain.EnrichedItem {
	enriched := domain.EnrichedItem{Item: item}

	if enriched.Status == "" {
		enriched.Status = domain.StatusUnlisted
	}

	currency := item.PurchaseCurrency
	if currency == "" {
		currency = DefaultPurchaseCurrency
	}

	marketPrice := item.PurchasePrice * marketMarkup
	if item.MarketPrice != nil {
		marketPrice = *item.MarketPrice
	}
	marketPrice = round2(marketPrice)
	enriched.Derived.MarketPrice = marketPrice

	enriched.PurchaseValue = c.conv.Normalize(item.PurchasePrice, currency, displayCurrency)
	enriched.MarketValue = c.conv.Normalize(marketPrice, currency, displayCurrency)

	if item.ShippingPrice != nil {
		shippingCurrency := item.ShippingCurrency
		if shippingCurrency == "" {
			shippingCurrency = currency
		}
		enriched.ShippingValue = c.conv.Normalize(*item.ShippingPrice, shippingCurrency, displayCurrency)
	}

	profit := round2(enriched.MarketValue - enriched.PurchaseValue)
	enriched.Derived.EstimatedProfit = profit

	if enriched.PurchaseValue != 0 {
		enriched.Derived.ROI = round2(profit / enriched.PurchaseValue * 100)
	}

	enriched.Derived.DaysInInventory = daysSince(item.PurchaseDate, now)

	return enriched
}

// EnrichAll enriches every item in the batch, returning a new slice.
func (c *Calculator) EnrichAll(items []domain.Item, displayCurrency string, now time.Time) []domain.EnrichedItem {
	enriched := make([]domain.EnrichedItem, 0, len(items))
	for _, item := range items {
		enriched = append(enriched, c.Enrich(item, displayCurrency, now))
	}
	return enriched
}

// daysSince returns the floored day difference between now and the given
// ISO date. Future dates yield a negative count; that is deliberate, a
// data-entry error should be visible rather than masked.
func daysSince(date string, now time.Time) int {
	parsed, ok := parseDate(date)
	if !ok {
		return 0
	}
	return int(math.Floor(now.Sub(parsed).Hours() / 24))
}

func parseDate(date string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
