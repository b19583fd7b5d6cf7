// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/hypevault/backend-go/internal/domain"
)

// ItemRepository is the persistence boundary for inventory items and their
// embedded listings.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.Item, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (int64, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error

	// SetStatus transitions the item status. Moving to unlisted clears the
	// item's listings so status and listings stay consistent.
	SetStatus(ctx context.Context, id int64, status string) error

	// AddListing attaches a listing and marks the item listed.
	AddListing(ctx context.Context, itemID int64, listing *domain.Listing) (int64, error)

	// RemoveListing detaches a listing; removing the last one returns the
	// item to unlisted.
	RemoveListing(ctx context.Context, itemID, listingID int64) error

	// UpsertByReference inserts or updates an item keyed on its reference,
	// used by bulk import and seeding.
	UpsertByReference(ctx context.Context, item *domain.Item) (int64, error)
}

// TagRepository is the persistence boundary for the global tag set.
type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (int64, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id int64) error

	// FindByName matches case-insensitively; tag names are unique that way.
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
}
