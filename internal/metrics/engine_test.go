package metrics

import (
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

func engineFixture() []domain.Item {
	return []domain.Item{
		{ID: 1, ProductName: "Air Jordan 4", Brand: "Nike", Category: "Sneakers", PurchasePrice: 100, PurchaseDate: "2026-03-01", Status: domain.StatusUnlisted},
		{ID: 2, ProductName: "Yeezy Slide", Brand: "Adidas", Category: "Sneakers", PurchasePrice: 0, MarketPrice: f64(50), PurchaseDate: "2026-03-01", Status: domain.StatusListed},
		{ID: 3, ProductName: "Box Logo Hoodie", Brand: "Supreme", Category: "Streetwear", PurchasePrice: 150, MarketPrice: f64(400), PurchaseDate: "2026-02-01", Status: domain.StatusSold},
	}
}

func TestEvaluateMarkupFallback(t *testing.T) {
	engine := NewEngine(DefaultConverter())

	view := engine.Evaluate(engineFixture(), Query{Currency: CurrencyGBP}, testNow)

	var jordan domain.EnrichedItem
	for _, item := range view.Items {
		if item.ID == 1 {
			jordan = item
		}
	}
	if jordan.Derived.MarketPrice != 120.00 {
		t.Errorf("marketPrice = %v, want 120.00", jordan.Derived.MarketPrice)
	}
	if jordan.Derived.EstimatedProfit != 20.00 {
		t.Errorf("estimatedProfit = %v, want 20.00", jordan.Derived.EstimatedProfit)
	}
	if jordan.Derived.ROI != 20.00 {
		t.Errorf("roi = %v, want 20.00", jordan.Derived.ROI)
	}
}

func TestEvaluateZeroPurchaseROI(t *testing.T) {
	engine := NewEngine(DefaultConverter())

	view := engine.Evaluate(engineFixture(), Query{Currency: CurrencyGBP}, testNow)
	for _, item := range view.Items {
		if item.ID == 2 && item.Derived.ROI != 0 {
			t.Errorf("roi = %v, want 0 for zero purchase price", item.Derived.ROI)
		}
	}
}

func TestEvaluateSummaryCoversFilteredNotPage(t *testing.T) {
	engine := NewEngine(DefaultConverter())

	q := Query{Currency: CurrencyGBP, PageSize: 1, Page: 0}
	view := engine.Evaluate(engineFixture(), q, testNow)

	if len(view.Page) != 1 {
		t.Fatalf("page has %d items, want 1", len(view.Page))
	}
	if view.Summary.TotalItems != 3 {
		t.Errorf("summary.totalItems = %d, want 3 (full filtered set)", view.Summary.TotalItems)
	}
	if view.Total != 3 {
		t.Errorf("total = %d, want 3", view.Total)
	}
}

func TestEvaluateFilteredStatusCounts(t *testing.T) {
	engine := NewEngine(DefaultConverter())

	q := Query{
		Currency: CurrencyGBP,
		Filters:  []domain.ActiveFilter{{Type: domain.FilterStatus, Value: "listed"}},
	}
	view := engine.Evaluate(engineFixture(), q, testNow)

	s := view.Summary
	if s.TotalItems != 1 || s.ListedItems != 1 || s.UnlistedItems != 0 || s.SoldItems != 0 {
		t.Errorf("summary = %+v, want exactly one listed item", s)
	}
}

func TestEvaluateSearchThenSort(t *testing.T) {
	engine := NewEngine(DefaultConverter())

	q := Query{
		Currency: CurrencyGBP,
		Search:   "sneakers",
		Sort:     SortState{Field: SortMarketPrice, Order: OrderDesc},
	}
	view := engine.Evaluate(engineFixture(), q, testNow)

	if len(view.Items) != 2 {
		t.Fatalf("filtered to %d items, want 2 sneakers", len(view.Items))
	}
	if view.Items[0].ID != 1 || view.Items[1].ID != 2 {
		t.Errorf("desc market price order = [%d %d], want [1 2]", view.Items[0].ID, view.Items[1].ID)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(DefaultConverter())
	items := engineFixture()

	_ = engine.Evaluate(items, Query{Currency: CurrencyGBP, Sort: SortState{Field: SortName, Order: OrderAsc}}, testNow)

	if items[0].ID != 1 || items[1].ID != 2 || items[2].ID != 3 {
		t.Error("input snapshot reordered by Evaluate")
	}
}

func TestQueryPageReset(t *testing.T) {
	q := Query{Page: 4, PageSize: 10}

	q.SetSearch("nike")
	if q.Page != 0 {
		t.Errorf("page = %d after search change, want 0", q.Page)
	}

	q.Page = 4
	tag := int64(2)
	q.SetTag(&tag)
	if q.Page != 0 {
		t.Errorf("page = %d after tag change, want 0", q.Page)
	}

	q.Page = 4
	q.SetFilters([]domain.ActiveFilter{{Type: domain.FilterBrand, Value: "Nike"}})
	if q.Page != 0 {
		t.Errorf("page = %d after filter change, want 0", q.Page)
	}

	q.Page = 4
	q.SetPageSize(50)
	if q.Page != 0 {
		t.Errorf("page = %d after page size change, want 0", q.Page)
	}

	// Unchanged page size keeps the index.
	q.Page = 4
	q.SetPageSize(50)
	if q.Page != 4 {
		t.Errorf("page = %d after no-op page size change, want 4", q.Page)
	}
}
