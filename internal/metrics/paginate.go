// internal/metrics/paginate.go
package metrics

import "github.com/hypevault/backend-go/internal/domain"

// Paginate slices the zero-based page [page*size, page*size+size) out of the
// sorted, filtered sequence. Out-of-range requests yield an empty page,
// never an error. The input is not mutated.
func Paginate(items []domain.EnrichedItem, page, size int) []domain.EnrichedItem {
	if page < 0 || size <= 0 {
		return []domain.EnrichedItem{}
	}

	start := page * size
	if start >= len(items) {
		return []domain.EnrichedItem{}
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	out := make([]domain.EnrichedItem, end-start)
	copy(out, items[start:end])
	return out
}
