package metrics

import (
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

func enriched(item domain.Item) domain.EnrichedItem {
	return domain.EnrichedItem{Item: item}
}

func TestMatchesSearch(t *testing.T) {
	item := enriched(domain.Item{
		ProductName: "Air Jordan 1 Retro",
		Brand:       "Nike",
		Category:    "Sneakers",
		Reference:   "DZ5485-612",
	})

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"nike", true},
		{"NIKE", true},
		{"jordan", true},
		{"sneak", true},
		{"dz5485", true},
		{"adidas", false},
	}

	for _, tt := range tests {
		if got := Matches(item, tt.query, nil, nil); got != tt.want {
			t.Errorf("Matches(query=%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchesSearchDoesNotCrossItems(t *testing.T) {
	other := enriched(domain.Item{ProductName: "Yeezy Boost 350", Brand: "Adidas"})

	if Matches(other, "nike", nil, nil) {
		t.Error("adidas item with no nike substring should not match")
	}
}

func TestMatchesTag(t *testing.T) {
	item := enriched(domain.Item{ProductName: "Box Logo Tee", Tags: []int64{3, 7}})

	tag7, tag9 := int64(7), int64(9)
	if !Matches(item, "", &tag7, nil) {
		t.Error("item with tag 7 should match tag filter 7")
	}
	if Matches(item, "", &tag9, nil) {
		t.Error("item without tag 9 should not match tag filter 9")
	}
}

func TestMatchesConjunction(t *testing.T) {
	item := enriched(domain.Item{
		ProductName: "Dunk Low Panda",
		Brand:       "Nike",
		Category:    "Sneakers",
		Status:      domain.StatusListed,
		Tags:        []int64{1},
	})

	passing := []domain.ActiveFilter{
		{Type: domain.FilterBrand, Value: "Nike"},
		{Type: domain.FilterStatus, Value: "listed"},
	}
	if !Matches(item, "dunk", nil, passing) {
		t.Error("all filters pass, item should match")
	}

	// One failing filter sinks the item even when search and tag both match.
	tag1 := int64(1)
	failing := append(passing, domain.ActiveFilter{Type: domain.FilterCategory, Value: "Watches"})
	if Matches(item, "dunk", &tag1, failing) {
		t.Error("single failing filter must exclude the item")
	}
}

func TestMatchesUnknownFilterTypePermissive(t *testing.T) {
	item := enriched(domain.Item{ProductName: "Carrera"})

	filters := []domain.ActiveFilter{{Type: "condition", Value: "mint"}}
	if !Matches(item, "", nil, filters) {
		t.Error("unknown filter type should always match")
	}
}

func TestApplyReturnsNewSlice(t *testing.T) {
	items := []domain.EnrichedItem{
		enriched(domain.Item{ID: 1, Status: domain.StatusListed}),
		enriched(domain.Item{ID: 2, Status: domain.StatusSold}),
	}

	got := Apply(items, "", nil, []domain.ActiveFilter{{Type: domain.FilterStatus, Value: "sold"}})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %d items, want the single sold item", len(got))
	}
	if len(items) != 2 {
		t.Error("input slice mutated")
	}
}
