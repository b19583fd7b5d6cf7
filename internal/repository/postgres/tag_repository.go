package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hypevault/backend-go/internal/domain"
)

type TagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.SelectContext(ctx, &tags,
		"SELECT id, name, color FROM tags ORDER BY lower(name)")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id",
		tag.Name, tag.Color).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create tag %q: %w", tag.Name, err)
	}
	tag.ID = id
	return id, nil
}

func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = $2, color = $3 WHERE id = $1",
		tag.ID, tag.Name, tag.Color)
	if err != nil {
		return fmt.Errorf("failed to update tag %d: %w", tag.ID, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("tag %d not found", tag.ID)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	// Items referencing the tag keep working; the link rows go with it.
	if _, err := r.db.ExecContext(ctx, "DELETE FROM item_tags WHERE tag_id = $1", id); err != nil {
		return fmt.Errorf("failed to unlink tag %d: %w", id, err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, err)
	}
	return nil
}

// FindByName matches case-insensitively; the tag set keeps names unique
// that way.
func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.GetContext(ctx, &tag,
		"SELECT id, name, color FROM tags WHERE lower(name) = lower($1)", name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tag %q: %w", name, err)
	}
	return &tag, nil
}
