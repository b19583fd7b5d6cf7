// internal/metrics/engine.go
package metrics

import (
	"time"

	"github.com/hypevault/backend-go/internal/domain"
)

// DefaultPageSize is used when a query carries no page size.
const DefaultPageSize = 25

// Query describes one evaluation pass over the inventory.
type Query struct {
	Search   string                `json:"search"`
	TagID    *int64                `json:"tagId,omitempty"`
	Filters  []domain.ActiveFilter `json:"filters"`
	Sort     SortState             `json:"sort"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Currency string                `json:"currency"`
}

// SetSearch changes the search query; any narrowing change resets the page
// index so a stale index is never carried across a filter change.
func (q *Query) SetSearch(search string) {
	if q.Search != search {
		q.Search = search
		q.Page = 0
	}
}

// SetTag changes the selected tag and resets the page index.
func (q *Query) SetTag(tagID *int64) {
	q.TagID = tagID
	q.Page = 0
}

// SetFilters replaces the active filter set and resets the page index.
func (q *Query) SetFilters(filters []domain.ActiveFilter) {
	q.Filters = filters
	q.Page = 0
}

// SetPageSize changes the page size and resets the page index.
func (q *Query) SetPageSize(size int) {
	if q.PageSize != size {
		q.PageSize = size
		q.Page = 0
	}
}

// ToggleSort advances the sort state machine for a header click.
func (q *Query) ToggleSort(field string) {
	q.Sort.Toggle(field)
}

// Engine is the synchronous computation pipeline that turns raw items into
// the dashboard view: enrich, filter, sort, aggregate, paginate, always in
// that order. It performs no I/O and never mutates its inputs.
type Engine struct {
	calc *Calculator
}

// NewEngine builds an engine over the given converter.
func NewEngine(conv *Converter) *Engine {
	return &Engine{calc: NewCalculator(conv)}
}

// Evaluate runs one full pass. Intermediate results are never cached across
// passes; every relevant state change recomputes from the raw snapshot.
func (e *Engine) Evaluate(items []domain.Item, q Query, now time.Time) domain.DashboardView {
	currency := q.Currency
	if currency == "" {
		currency = DefaultPurchaseCurrency
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := q.Page
	if page < 0 {
		page = 0
	}

	enriched := e.calc.EnrichAll(items, currency, now)
	working := Apply(enriched, q.Search, q.TagID, q.Filters)
	sorted := Order(working, q.Sort.Field, q.Sort.Order)
	summary := Aggregate(sorted, currency)
	visible := Paginate(sorted, page, size)

	return domain.DashboardView{
		Items:    sorted,
		Page:     visible,
		Summary:  summary,
		Total:    len(sorted),
		PageIdx:  page,
		PageSize: size,
	}
}
