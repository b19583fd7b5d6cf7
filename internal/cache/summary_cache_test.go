package cache

import (
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/metrics"
)

func TestQueryHashIgnoresPageAndSort(t *testing.T) {
	base := metrics.Query{Search: "nike", Currency: "GBP"}

	paged := base
	paged.Page = 4
	paged.PageSize = 50
	paged.Sort = metrics.SortState{Field: metrics.SortROI, Order: metrics.OrderDesc}

	if got, want := queryHash(paged), queryHash(base); got != want {
		t.Errorf("queryHash changed with page/sort: got %s, want %s", got, want)
	}
}

func TestQueryHashFilterOrderInsensitive(t *testing.T) {
	a := metrics.Query{Filters: []domain.ActiveFilter{
		{Type: domain.FilterCategory, Value: "Sneakers"},
		{Type: domain.FilterBrand, Value: "Nike"},
	}}
	b := metrics.Query{Filters: []domain.ActiveFilter{
		{Type: domain.FilterBrand, Value: "nike"},
		{Type: domain.FilterCategory, Value: "sneakers"},
	}}

	if got, want := queryHash(a), queryHash(b); got != want {
		t.Errorf("queryHash order/case sensitive: got %s, want %s", got, want)
	}
}

func TestQueryHashDistinguishesFilters(t *testing.T) {
	a := metrics.Query{Search: "nike"}
	b := metrics.Query{Search: "adidas"}

	if queryHash(a) == queryHash(b) {
		t.Error("distinct searches produced the same hash")
	}
}

func TestQueryHashEmptyQuery(t *testing.T) {
	if got := queryHash(metrics.Query{}); got != "default" {
		t.Errorf("empty query hash = %s, want default", got)
	}
}
