// Package career manages job postings with the same published visibility
// gate as news, but without image attachments.
package career

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Employment types accepted for a posting.
const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

// ValidType reports whether t is one of the accepted employment types.
func ValidType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	}
	return false
}

// Item represents a job posting. Requirements and responsibilities are
// ordered lists preserved verbatim.
type Item struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Location         string    `json:"location"`
	Type             string    `json:"type"`
	Department       string    `json:"department"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	SalaryRange      string    `json:"salary_range"`
	Published        bool      `json:"published"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a posting does not exist.
var ErrNotFound = errors.New("career not found")

// ErrUnpublished is returned when an unauthenticated caller fetches an
// unpublished posting directly.
var ErrUnpublished = errors.New("career is not published")

// Repository handles all career database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns postings newest first, optionally restricted to published ones.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]Item, error) {
	query := `SELECT id, title, location, type, department, description, requirements,
	                 responsibilities, salary_range, published, created_at, updated_at
	          FROM career_items`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Location, &it.Type, &it.Department,
			&it.Description, &it.Requirements, &it.Responsibilities, &it.SalaryRange,
			&it.Published, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan career: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches a posting by UUID. A malformed id maps to ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	it := &Item{}
	err := r.db.QueryRow(ctx,
		`SELECT id, title, location, type, department, description, requirements,
		        responsibilities, salary_range, published, created_at, updated_at
		 FROM career_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Title, &it.Location, &it.Type, &it.Department,
		&it.Description, &it.Requirements, &it.Responsibilities, &it.SalaryRange,
		&it.Published, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get career: %w", err)
	}
	return it, nil
}

// Insert stores a new posting and returns it with id and timestamps assigned.
func (r *Repository) Insert(ctx context.Context, it *Item) (*Item, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO career_items (title, location, type, department, description,
		                           requirements, responsibilities, salary_range, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		it.Title, it.Location, it.Type, it.Department, it.Description,
		it.Requirements, it.Responsibilities, it.SalaryRange, it.Published,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert career: %w", err)
	}
	return it, nil
}

// Update overwrites the stored row with the item's current field values.
func (r *Repository) Update(ctx context.Context, it *Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE career_items
		 SET title = $2, location = $3, type = $4, department = $5, description = $6,
		     requirements = $7, responsibilities = $8, salary_range = $9,
		     published = $10, updated_at = now()
		 WHERE id = $1`,
		it.ID, it.Title, it.Location, it.Type, it.Department, it.Description,
		it.Requirements, it.Responsibilities, it.SalaryRange, it.Published,
	)
	if err != nil {
		return fmt.Errorf("update career: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the posting row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM career_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete career: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
