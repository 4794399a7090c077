// Package gallery manages gallery items and their image blobs.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Item represents a gallery entry. ImageURL is derived from ImageID at read
// time and never persisted.
type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ImageID       string    `json:"imageId"`
	ImageFilename string    `json:"-"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a gallery item does not exist.
var ErrNotFound = errors.New("gallery item not found")

// Repository handles all gallery database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns items newest first, optionally filtered by category.
func (r *Repository) List(ctx context.Context, category string) ([]Item, error) {
	query := `SELECT id, title, description, category, image_id, image_filename, created_at, updated_at
	          FROM gallery_items`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Category,
			&it.ImageID, &it.ImageFilename, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches an item by UUID. A malformed id maps to ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	it := &Item{}
	err := r.db.QueryRow(ctx,
		`SELECT id, title, description, category, image_id, image_filename, created_at, updated_at
		 FROM gallery_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Title, &it.Description, &it.Category,
		&it.ImageID, &it.ImageFilename, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery item: %w", err)
	}
	return it, nil
}

// Insert stores a new item and returns it with id and timestamps assigned.
func (r *Repository) Insert(ctx context.Context, it *Item) (*Item, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO gallery_items (title, description, category, image_id, image_filename)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		it.Title, it.Description, it.Category, it.ImageID, it.ImageFilename,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert gallery item: %w", err)
	}
	return it, nil
}

// Update overwrites the stored row with the item's current field values.
func (r *Repository) Update(ctx context.Context, it *Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE gallery_items
		 SET title = $2, description = $3, category = $4, image_id = $5,
		     image_filename = $6, updated_at = now()
		 WHERE id = $1`,
		it.ID, it.Title, it.Description, it.Category, it.ImageID, it.ImageFilename,
	)
	if err != nil {
		return fmt.Errorf("update gallery item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes every gallery row and returns the number removed.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM gallery_items`)
	if err != nil {
		return 0, fmt.Errorf("delete all gallery items: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Categories returns the distinct category strings in use.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM gallery_items ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
