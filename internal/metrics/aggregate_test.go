package metrics

import (
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

func TestAggregateStatusCounts(t *testing.T) {
	items := []domain.EnrichedItem{
		{Item: domain.Item{Status: domain.StatusUnlisted}},
		{Item: domain.Item{Status: domain.StatusListed}},
		{Item: domain.Item{Status: domain.StatusSold}},
	}

	// Filter down to listed only, then aggregate: KPIs follow the filtered set.
	filtered := Apply(items, "", nil, []domain.ActiveFilter{{Type: domain.FilterStatus, Value: "listed"}})
	got := Aggregate(filtered, CurrencyGBP)

	if got.TotalItems != 1 || got.ListedItems != 1 {
		t.Errorf("totalItems=%d listedItems=%d, want 1/1", got.TotalItems, got.ListedItems)
	}
	if got.UnlistedItems != 0 || got.SoldItems != 0 {
		t.Errorf("unlisted=%d sold=%d, want 0/0", got.UnlistedItems, got.SoldItems)
	}
}

func TestAggregateSums(t *testing.T) {
	items := []domain.EnrichedItem{
		{Item: domain.Item{Status: domain.StatusListed}, PurchaseValue: 100, ShippingValue: 10, MarketValue: 150},
		{Item: domain.Item{Status: domain.StatusUnlisted}, PurchaseValue: 50, MarketValue: 60},
	}

	got := Aggregate(items, CurrencyGBP)

	if got.TotalPurchaseValue != 150 {
		t.Errorf("totalPurchaseValue = %v, want 150", got.TotalPurchaseValue)
	}
	if got.TotalShippingValue != 10 {
		t.Errorf("totalShippingValue = %v, want 10", got.TotalShippingValue)
	}
	if got.TotalMarketValue != 210 {
		t.Errorf("totalMarketValue = %v, want 210", got.TotalMarketValue)
	}
	if got.TotalEstimatedProfit != 60 {
		t.Errorf("totalEstimatedProfit = %v, want 60", got.TotalEstimatedProfit)
	}
	if got.AverageROI != 40 {
		t.Errorf("averageRoi = %v, want 40", got.AverageROI)
	}
}

func TestAggregateProfitRederived(t *testing.T) {
	// A stale per-item profit, computed under another display currency, must
	// not leak into the summary: profit comes from the normalized values.
	items := []domain.EnrichedItem{
		{
			Item:          domain.Item{Status: domain.StatusListed},
			Derived:       domain.DerivedMetrics{EstimatedProfit: 9999},
			PurchaseValue: 100,
			MarketValue:   120,
		},
	}

	got := Aggregate(items, CurrencyUSD)
	if got.TotalEstimatedProfit != 20 {
		t.Errorf("totalEstimatedProfit = %v, want 20 (re-derived)", got.TotalEstimatedProfit)
	}
}

func TestAggregateZeroPurchaseGuard(t *testing.T) {
	items := []domain.EnrichedItem{
		{Item: domain.Item{Status: domain.StatusUnlisted}, MarketValue: 50},
	}

	got := Aggregate(items, CurrencyGBP)
	if got.AverageROI != 0 {
		t.Errorf("averageRoi = %v, want 0 when total purchase value is 0", got.AverageROI)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, CurrencyGBP)
	if got.TotalItems != 0 || got.TotalEstimatedProfit != 0 || got.AverageROI != 0 {
		t.Errorf("empty aggregate = %+v, want zeros", got)
	}
}
