// internal/metrics/filter.go
package metrics

import (
	"strings"

	"github.com/hypevault/backend-go/internal/domain"
)

// Matches decides whether an item belongs in the working set. All four
// checks are ANDed: free-text search, tag membership, and every active
// filter must pass.
func Matches(item domain.EnrichedItem, query string, tagID *int64, filters []domain.ActiveFilter) bool {
	if !matchesSearch(item, query) {
		return false
	}
	if tagID != nil && !hasTag(item, *tagID) {
		return false
	}
	for _, f := range filters {
		if !matchesFilter(item, f) {
			return false
		}
	}
	return true
}

// Apply narrows items to the working set, returning a new slice.
func Apply(items []domain.EnrichedItem, query string, tagID *int64, filters []domain.ActiveFilter) []domain.EnrichedItem {
	matched := make([]domain.EnrichedItem, 0, len(items))
	for _, item := range items {
		if Matches(item, query, tagID, filters) {
			matched = append(matched, item)
		}
	}
	return matched
}

// matchesSearch does a case-insensitive substring match over product name,
// category, brand and reference. An empty query always matches.
func matchesSearch(item domain.EnrichedItem, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{item.ProductName, item.Category, item.Brand, item.Reference} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func hasTag(item domain.EnrichedItem, tagID int64) bool {
	for _, id := range item.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// matchesFilter applies one structured filter. Unknown filter types always
// match; a stale chip from an older client must not hide the whole set.
func matchesFilter(item domain.EnrichedItem, f domain.ActiveFilter) bool {
	switch f.Type {
	case domain.FilterCategory:
		return strings.EqualFold(item.Category, f.Value)
	case domain.FilterBrand:
		return strings.EqualFold(item.Brand, f.Value)
	case domain.FilterStatus:
		return strings.EqualFold(item.Status, f.Value)
	default:
		return true
	}
}
