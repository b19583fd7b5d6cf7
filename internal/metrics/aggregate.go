// internal/metrics/aggregate.go
package metrics

import "github.com/hypevault/backend-go/internal/domain"

// Aggregate reduces the filtered working set, never the visible page, into
// the KPI summary. Monetary inputs are the per-item values already
// normalized into the display currency; no conversion happens here.
//
// Profit is re-derived per item from the normalized purchase and market
// values instead of trusting the stored EstimatedProfit field, so a display
// currency switch can never leave stale profit figures in the strip.
func Aggregate(items []domain.EnrichedItem, displayCurrency string) domain.KPISummary {
	summary := domain.KPISummary{
		TotalItems: len(items),
		Currency:   displayCurrency,
	}

	for _, item := range items {
		switch item.Status {
		case domain.StatusListed:
			summary.ListedItems++
		case domain.StatusSold:
			summary.SoldItems++
		default:
			summary.UnlistedItems++
		}

		summary.TotalPurchaseValue += item.PurchaseValue
		summary.TotalShippingValue += item.ShippingValue
		summary.TotalMarketValue += item.MarketValue
		summary.TotalEstimatedProfit += item.MarketValue - item.PurchaseValue
	}

	summary.TotalPurchaseValue = round2(summary.TotalPurchaseValue)
	summary.TotalShippingValue = round2(summary.TotalShippingValue)
	summary.TotalMarketValue = round2(summary.TotalMarketValue)
	summary.TotalEstimatedProfit = round2(summary.TotalEstimatedProfit)

	if summary.TotalPurchaseValue != 0 {
		summary.AverageROI = round2(summary.TotalEstimatedProfit / summary.TotalPurchaseValue * 100)
	}

	return summary
}
