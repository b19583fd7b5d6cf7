package domain

import "strings"

// Item statuses
const (
	StatusUnlisted = "unlisted"
	StatusListed   = "listed"
	StatusSold     = "sold"
)

// Listing statuses
const (
	ListingActive  = "active"
	ListingSold    = "sold"
	ListingExpired = "expired"
)

// Filter types accepted by ActiveFilter
const (
	FilterCategory = "category"
	FilterBrand    = "brand"
	FilterStatus   = "status"
)

var categories = []string{
	"Sneakers",
	"Streetwear",
	"Handbags",
	"Watches",
	"Accessories",
	"Electronics",
	"Other",
}

// Categories returns the fixed category set in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// NormalizeStatus maps free-form status input onto the known set,
// defaulting to unlisted.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusListed:
		return StatusListed
	case StatusSold:
		return StatusSold
	default:
		return StatusUnlisted
	}
}

// ValidStatus reports whether s is one of the known item statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnlisted, StatusListed, StatusSold:
		return true
	}
	return false
}

// ValidCategory reports whether c matches the category set, ignoring case.
func ValidCategory(c string) bool {
	for _, known := range categories {
		if strings.EqualFold(known, c) {
			return true
		}
	}
	return false
}
