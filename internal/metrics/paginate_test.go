package metrics

import (
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

func pageFixture(n int) []domain.EnrichedItem {
	items := make([]domain.EnrichedItem, n)
	for i := range items {
		items[i] = domain.EnrichedItem{Item: domain.Item{ID: int64(i)}}
	}
	return items
}

func TestPaginateSlices(t *testing.T) {
	items := pageFixture(25)

	got := Paginate(items, 2, 10)
	if len(got) != 5 {
		t.Fatalf("page 2 of 25/10 has %d items, want 5", len(got))
	}
	if got[0].ID != 20 || got[4].ID != 24 {
		t.Errorf("page 2 spans ids %d..%d, want 20..24", got[0].ID, got[4].ID)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := pageFixture(25)

	if got := Paginate(items, 3, 10); len(got) != 0 {
		t.Errorf("page 3 of 25/10 has %d items, want empty", len(got))
	}
	if got := Paginate(items, -1, 10); len(got) != 0 {
		t.Errorf("negative page has %d items, want empty", len(got))
	}
	if got := Paginate(items, 0, 0); len(got) != 0 {
		t.Errorf("zero page size has %d items, want empty", len(got))
	}
}

func TestPaginateTotalCoverage(t *testing.T) {
	items := pageFixture(37)
	size := 10

	var seen []int64
	for page := 0; page*size < len(items); page++ {
		for _, item := range Paginate(items, page, size) {
			seen = append(seen, item.ID)
		}
	}

	if len(seen) != len(items) {
		t.Fatalf("pages covered %d items, want %d", len(seen), len(items))
	}
	for i, id := range seen {
		if id != int64(i) {
			t.Fatalf("concatenated pages out of order at %d: got id %d", i, id)
		}
	}
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := pageFixture(5)

	page := Paginate(items, 0, 3)
	page[0].ID = 99
	if items[0].ID == 99 {
		t.Error("Paginate must copy, not alias, the input")
	}
}
