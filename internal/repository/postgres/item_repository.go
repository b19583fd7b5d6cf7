package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hypevault/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const itemColumns = `
	id, product_name, brand, category,
	purchase_price, purchase_currency,
	shipping_price, COALESCE(shipping_currency, '') AS shipping_currency,
	market_price,
	COALESCE(to_char(purchase_date, 'YYYY-MM-DD'), '') AS purchase_date,
	status,
	COALESCE(reference, '') AS reference,
	COALESCE(size, '') AS size,
	COALESCE(size_system, '') AS size_system,
	created_at, updated_at`

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items ORDER BY id", itemColumns)

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	if err := r.attachTags(ctx, items); err != nil {
		return nil, err
	}
	if err := r.attachListings(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns)

	var item domain.Item
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}

	items := []domain.Item{item}
	if err := r.attachTags(ctx, items); err != nil {
		return nil, err
	}
	if err := r.attachListings(ctx, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (int64, error) {
	if item.Status == "" {
		item.Status = domain.StatusUnlisted
	}

	var id int64
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO items (
				product_name, brand, category,
				purchase_price, purchase_currency,
				shipping_price, shipping_currency, market_price,
				purchase_date, status, reference, size, size_system,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::date, $10, $11, $12, $13, NOW(), NOW())
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			item.ProductName, item.Brand, item.Category,
			item.PurchasePrice, item.PurchaseCurrency,
			item.ShippingPrice, nullIfEmpty(item.ShippingCurrency), item.MarketPrice,
			item.PurchaseDate, item.Status,
			nullIfEmpty(item.Reference), nullIfEmpty(item.Size), nullIfEmpty(item.SizeSystem),
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		return replaceItemTags(ctx, tx, id, item.Tags)
	})
	if err != nil {
		return 0, err
	}

	item.ID = id
	return id, nil
}

// Update rewrites the item's editable fields. Status is deliberately not
// part of the statement: every status transition goes through SetStatus so
// listings and status cannot drift apart.
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE items SET
				product_name = $2, brand = $3, category = $4,
				purchase_price = $5, purchase_currency = $6,
				shipping_price = $7, shipping_currency = $8, market_price = $9,
				purchase_date = NULLIF($10, '')::date,
				reference = $11, size = $12, size_system = $13,
				updated_at = NOW()
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			item.ID,
			item.ProductName, item.Brand, item.Category,
			item.PurchasePrice, item.PurchaseCurrency,
			item.ShippingPrice, nullIfEmpty(item.ShippingCurrency), item.MarketPrice,
			item.PurchaseDate,
			nullIfEmpty(item.Reference), nullIfEmpty(item.Size), nullIfEmpty(item.SizeSystem),
		)
		if err != nil {
			return fmt.Errorf("failed to update item %d: %w", item.ID, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("item %d not found", item.ID)
		}

		return replaceItemTags(ctx, tx, item.ID, item.Tags)
	})
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE item_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete listings for item %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM item_tags WHERE item_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete tag links for item %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id); err != nil {
			return fmt.Errorf("failed to delete item %d: %w", id, err)
		}
		return nil
	})
}

// SetStatus transitions the item status. Status and listings must stay
// consistent: moving back to unlisted clears any remaining listings.
func (r *ItemRepository) SetStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if status == domain.StatusUnlisted {
			if _, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE item_id = $1", id); err != nil {
				return fmt.Errorf("failed to clear listings for item %d: %w", id, err)
			}
		}
		result, err := tx.ExecContext(ctx,
			"UPDATE items SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
		if err != nil {
			return fmt.Errorf("failed to set status for item %d: %w", id, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("item %d not found", id)
		}
		return nil
	})
}

// AddListing attaches a listing; any listing implies status listed.
func (r *ItemRepository) AddListing(ctx context.Context, itemID int64, listing *domain.Listing) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO listings (item_id, platform, price, posted_at, status, url)
			VALUES ($1, $2, $3, NULLIF($4, '')::date, $5, $6)
			RETURNING id
		`
		status := listing.Status
		if status == "" {
			status = domain.ListingActive
		}
		if err := tx.QueryRowContext(ctx, query,
			itemID, listing.Platform, listing.Price, listing.PostedAt, status, nullIfEmpty(listing.URL),
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert listing: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE items SET status = $2, updated_at = NOW() WHERE id = $1 AND status <> $3",
			itemID, domain.StatusListed, domain.StatusSold); err != nil {
			return fmt.Errorf("failed to mark item %d listed: %w", itemID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	listing.ID = id
	listing.ItemID = itemID
	return id, nil
}

// RemoveListing detaches one listing; removing the last returns the item
// to unlisted.
func (r *ItemRepository) RemoveListing(ctx context.Context, itemID, listingID int64) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"DELETE FROM listings WHERE id = $1 AND item_id = $2", listingID, itemID)
		if err != nil {
			return fmt.Errorf("failed to delete listing %d: %w", listingID, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("listing %d not found on item %d", listingID, itemID)
		}

		var remaining int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM listings WHERE item_id = $1", itemID).Scan(&remaining); err != nil {
			return fmt.Errorf("failed to count listings for item %d: %w", itemID, err)
		}
		if remaining == 0 {
			if _, err := tx.ExecContext(ctx,
				"UPDATE items SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3",
				itemID, domain.StatusUnlisted, domain.StatusListed); err != nil {
				return fmt.Errorf("failed to mark item %d unlisted: %w", itemID, err)
			}
		}
		return nil
	})
}

func (r *ItemRepository) UpsertByReference(ctx context.Context, item *domain.Item) (int64, error) {
	if item.Reference == "" {
		return r.Create(ctx, item)
	}
	if item.Status == "" {
		item.Status = domain.StatusUnlisted
	}

	var id int64
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO items (
				product_name, brand, category,
				purchase_price, purchase_currency,
				shipping_price, shipping_currency, market_price,
				purchase_date, status, reference, size, size_system,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::date, $10, $11, $12, $13, NOW(), NOW())
			ON CONFLICT (reference) DO UPDATE SET
				product_name = EXCLUDED.product_name,
				brand = EXCLUDED.brand,
				category = EXCLUDED.category,
				purchase_price = EXCLUDED.purchase_price,
				purchase_currency = EXCLUDED.purchase_currency,
				shipping_price = EXCLUDED.shipping_price,
				shipping_currency = EXCLUDED.shipping_currency,
				market_price = EXCLUDED.market_price,
				purchase_date = EXCLUDED.purchase_date,
				size = EXCLUDED.size,
				size_system = EXCLUDED.size_system,
				updated_at = NOW()
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			item.ProductName, item.Brand, item.Category,
			item.PurchasePrice, item.PurchaseCurrency,
			item.ShippingPrice, nullIfEmpty(item.ShippingCurrency), item.MarketPrice,
			item.PurchaseDate, item.Status,
			item.Reference, nullIfEmpty(item.Size), nullIfEmpty(item.SizeSystem),
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to upsert item %q: %w", item.Reference, err)
		}

		if len(item.Tags) > 0 {
			return replaceItemTags(ctx, tx, id, item.Tags)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	item.ID = id
	return id, nil
}

func (r *ItemRepository) attachTags(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
		index[item.ID] = i
	}

	query, args, err := sqlx.In(
		"SELECT item_id, tag_id FROM item_tags WHERE item_id IN (?) ORDER BY tag_id", ids)
	if err != nil {
		return fmt.Errorf("failed to build tag query: %w", err)
	}

	rows := []struct {
		ItemID int64 `db:"item_id"`
		TagID  int64 `db:"tag_id"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load item tags: %w", err)
	}

	for _, row := range rows {
		i := index[row.ItemID]
		items[i].Tags = append(items[i].Tags, row.TagID)
	}
	return nil
}

func (r *ItemRepository) attachListings(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
		index[item.ID] = i
	}

	query, args, err := sqlx.In(`
		SELECT id, item_id, platform, price,
			COALESCE(to_char(posted_at, 'YYYY-MM-DD'), '') AS posted_at,
			status, COALESCE(url, '') AS url
		FROM listings WHERE item_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("failed to build listing query: %w", err)
	}

	var listings []domain.Listing
	if err := r.db.SelectContext(ctx, &listings, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	for _, listing := range listings {
		i := index[listing.ItemID]
		items[i].Listings = append(items[i].Listings, listing)
	}
	return nil
}

func replaceItemTags(ctx context.Context, tx *sqlx.Tx, itemID int64, tags []int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM item_tags WHERE item_id = $1", itemID); err != nil {
		return fmt.Errorf("failed to clear tags for item %d: %w", itemID, err)
	}
	for _, tagID := range tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO item_tags (item_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			itemID, tagID); err != nil {
			return fmt.Errorf("failed to link tag %d to item %d: %w", tagID, itemID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
