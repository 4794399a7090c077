// Package news manages news articles, their optional image blobs, and the
// published visibility gate.
package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultAuthor is assigned when a new article names no author.
const DefaultAuthor = "King Arthur Capital"

// Item represents a news article. ImageID is nil for articles without an
// image; ImageURL is derived at read time.
type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	ImageID       *string   `json:"imageId"`
	ImageFilename *string   `json:"-"`
	ImageURL      *string   `json:"image_url"`
	Author        string    `json:"author"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a news item does not exist.
var ErrNotFound = errors.New("news item not found")

// ErrUnpublished is returned when an unauthenticated caller fetches an
// unpublished item directly. Distinct from ErrNotFound: the item exists.
var ErrUnpublished = errors.New("news item is not published")

// Repository handles all news database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns articles newest first. With publishedOnly, drafts are
// filtered out at the query level.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]Item, error) {
	query := `SELECT id, title, content, excerpt, image_id, image_filename, author, published, created_at, updated_at
	          FROM news_items`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list news items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Content, &it.Excerpt, &it.ImageID,
			&it.ImageFilename, &it.Author, &it.Published, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan news item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches an article by UUID. A malformed id maps to ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	it := &Item{}
	err := r.db.QueryRow(ctx,
		`SELECT id, title, content, excerpt, image_id, image_filename, author, published, created_at, updated_at
		 FROM news_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Title, &it.Content, &it.Excerpt, &it.ImageID,
		&it.ImageFilename, &it.Author, &it.Published, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get news item: %w", err)
	}
	return it, nil
}

// Insert stores a new article and returns it with id and timestamps assigned.
func (r *Repository) Insert(ctx context.Context, it *Item) (*Item, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO news_items (title, content, excerpt, image_id, image_filename, author, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		it.Title, it.Content, it.Excerpt, it.ImageID, it.ImageFilename, it.Author, it.Published,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert news item: %w", err)
	}
	return it, nil
}

// Update overwrites the stored row with the item's current field values.
func (r *Repository) Update(ctx context.Context, it *Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE news_items
		 SET title = $2, content = $3, excerpt = $4, image_id = $5,
		     image_filename = $6, author = $7, published = $8, updated_at = now()
		 WHERE id = $1`,
		it.ID, it.Title, it.Content, it.Excerpt, it.ImageID, it.ImageFilename, it.Author, it.Published,
	)
	if err != nil {
		return fmt.Errorf("update news item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the article row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM news_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes every news row and returns the number removed.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM news_items`)
	if err != nil {
		return 0, fmt.Errorf("delete all news items: %w", err)
	}
	return tag.RowsAffected(), nil
}
