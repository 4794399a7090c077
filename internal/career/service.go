package career

import (
	"context"
)

// ItemStore is the persistence contract the service depends on.
// *Repository is the production implementation.
type ItemStore interface {
	List(ctx context.Context, publishedOnly bool) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, it *Item) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
}

// CreateInput holds the fields for a new posting.
type CreateInput struct {
	Title            string
	Location         string
	Type             string
	Department       string
	Description      string
	Requirements     []string
	Responsibilities []string
	SalaryRange      string
	Published        bool
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title            *string
	Location         *string
	Type             *string
	Department       *string
	Description      *string
	Requirements     []string
	Responsibilities []string
	SalaryRange      *string
	Published        *bool
}

// Service contains the career business rules and the published gate.
type Service struct {
	repo ItemStore
}

// NewService creates a career Service.
func NewService(repo ItemStore) *Service {
	return &Service{repo: repo}
}

// List returns postings newest first. Unauthenticated callers only see
// published ones.
func (s *Service) List(ctx context.Context, authenticated bool) ([]Item, error) {
	return s.repo.List(ctx, !authenticated)
}

// Get returns one posting. Unauthenticated access to an unpublished posting
// fails with ErrUnpublished rather than ErrNotFound.
func (s *Service) Get(ctx context.Context, id string, authenticated bool) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !it.Published && !authenticated {
		return nil, ErrUnpublished
	}
	return it, nil
}

// Create stores a new posting. Requirement/responsibility order is preserved.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Item, error) {
	it := &Item{
		Title:            in.Title,
		Location:         in.Location,
		Type:             in.Type,
		Department:       in.Department,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		SalaryRange:      in.SalaryRange,
		Published:        in.Published,
	}
	if it.Requirements == nil {
		it.Requirements = []string{}
	}
	if it.Responsibilities == nil {
		it.Responsibilities = []string{}
	}
	return s.repo.Insert(ctx, it)
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Location != nil {
		it.Location = *in.Location
	}
	if in.Type != nil {
		it.Type = *in.Type
	}
	if in.Department != nil {
		it.Department = *in.Department
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Requirements != nil {
		it.Requirements = in.Requirements
	}
	if in.Responsibilities != nil {
		it.Responsibilities = in.Responsibilities
	}
	if in.SalaryRange != nil {
		it.SalaryRange = *in.SalaryRange
	}
	if in.Published != nil {
		it.Published = *in.Published
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Delete removes the posting.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
