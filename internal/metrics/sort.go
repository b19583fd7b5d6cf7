// internal/metrics/sort.go
package metrics

import (
	"sort"
	"strings"

	"github.com/hypevault/backend-go/internal/domain"
)

// Sort orders
const (
	OrderNone = ""
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sortable fields. Numeric fields compare the derived values as displayed
// in the table, in the item's own currency for prices; missing values read
// as 0.
const (
	SortName            = "productName"
	SortBrand           = "brand"
	SortCategory        = "category"
	SortStatus          = "status"
	SortPurchaseDate    = "purchaseDate"
	SortMarketPrice     = "marketPrice"
	SortEstimatedProfit = "estimatedProfit"
	SortROI             = "roi"
	SortPurchaseTotal   = "purchaseTotal"
	SortShippingAmount  = "shippingAmount"
)

// Compare returns -1, 0 or 1 for a vs b under the given field. String fields
// compare case-folded; numeric fields subtract with missing values treated
// as 0; the date field compares epoch milliseconds of the parsed date.
func Compare(a, b domain.EnrichedItem, field string) int {
	switch field {
	case SortName:
		return compareStrings(a.ProductName, b.ProductName)
	case SortBrand:
		return compareStrings(a.Brand, b.Brand)
	case SortCategory:
		return compareStrings(a.Category, b.Category)
	case SortStatus:
		return compareStrings(a.Status, b.Status)
	case SortPurchaseDate:
		return compareFloats(dateMillis(a.PurchaseDate), dateMillis(b.PurchaseDate))
	case SortMarketPrice:
		return compareFloats(a.Derived.MarketPrice, b.Derived.MarketPrice)
	case SortEstimatedProfit:
		return compareFloats(a.Derived.EstimatedProfit, b.Derived.EstimatedProfit)
	case SortROI:
		return compareFloats(a.Derived.ROI, b.Derived.ROI)
	case SortPurchaseTotal:
		return compareFloats(a.PurchasePrice, b.PurchasePrice)
	case SortShippingAmount:
		return compareFloats(shippingOrZero(a), shippingOrZero(b))
	default:
		return 0
	}
}

// Order sorts items by field and direction using a stable sort, returning a
// new slice. Ties retain their prior relative order; there is no secondary
// key. OrderNone returns the items unchanged (still a copy).
func Order(items []domain.EnrichedItem, field, order string) []domain.EnrichedItem {
	sorted := make([]domain.EnrichedItem, len(items))
	copy(sorted, items)

	if order == OrderNone || field == "" {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := Compare(sorted[i], sorted[j], field)
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}

// SortState is the column-header toggle state machine. Clicking the same
// field cycles none -> asc -> desc -> none; clicking a different field
// always resets to ascending on the new field.
type SortState struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Toggle advances the state for a click on the given field.
func (s *SortState) Toggle(field string) {
	if s.Field != field {
		s.Field = field
		s.Order = OrderAsc
		return
	}
	switch s.Order {
	case OrderAsc:
		s.Order = OrderDesc
	case OrderDesc:
		s.Field = ""
		s.Order = OrderNone
	default:
		s.Order = OrderAsc
	}
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func dateMillis(date string) float64 {
	parsed, ok := parseDate(date)
	if !ok {
		return 0
	}
	return float64(parsed.UnixMilli())
}

func shippingOrZero(item domain.EnrichedItem) float64 {
	if item.ShippingPrice == nil {
		return 0
	}
	return *item.ShippingPrice
}
