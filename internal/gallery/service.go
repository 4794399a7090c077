package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/kingarthur/content-api/internal/storage"
)

// ItemStore is the persistence contract the service depends on.
// *Repository is the production implementation.
type ItemStore interface {
	List(ctx context.Context, category string) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, it *Item) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}

// ImageUpload carries a decoded multipart image field.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// CreateInput holds the fields for a new gallery item. Image is required.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Image       ImageUpload
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Image       *ImageUpload
}

// Service contains the gallery business rules over the record and blob stores.
type Service struct {
	repo  ItemStore
	blobs storage.Store
}

// NewService creates a gallery Service.
func NewService(repo ItemStore, blobs storage.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// List returns items newest first with derived image URLs.
func (s *Service) List(ctx context.Context, category string) ([]Item, error) {
	items, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ImageURL = imageURL(items[i].ImageID)
	}
	return items, nil
}

// Get returns one item with its derived image URL.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	it.ImageURL = imageURL(it.ImageID)
	return it, nil
}

// OpenImage opens the blob for streaming. The caller must close the reader.
func (s *Service) OpenImage(ctx context.Context, blobID string) (io.ReadCloser, string, error) {
	rc, contentType, err := s.blobs.Get(ctx, blobID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open image %q: %w", blobID, err)
	}
	return rc, contentType, nil
}

// Create stores the image blob first, then the record referencing it.
// A crash between the two steps leaves an orphaned blob; this is an accepted
// gap with no reconciliation sweep.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Item, error) {
	blobID, err := s.blobs.Put(ctx, in.Image.Reader, in.Image.Size, in.Image.Filename, in.Image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	it := &Item{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		ImageID:       blobID,
		ImageFilename: in.Image.Filename,
	}
	it, err = s.repo.Insert(ctx, it)
	if err != nil {
		return nil, err
	}
	it.ImageURL = imageURL(it.ImageID)
	return it, nil
}

// Update applies the supplied fields. A replacement image deletes the old
// blob best-effort before the new one is referenced.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		s.deleteBlob(ctx, it.ImageID)
		blobID, err := s.blobs.Put(ctx, in.Image.Reader, in.Image.Size, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store replacement image: %w", err)
		}
		it.ImageID = blobID
		it.ImageFilename = in.Image.Filename
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Category != nil {
		it.Category = *in.Category
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	it.ImageURL = imageURL(it.ImageID)
	return it, nil
}

// Delete removes the blob best-effort, then the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.deleteBlob(ctx, it.ImageID)
	return s.repo.Delete(ctx, id)
}

// DeleteAll wipes every record and referenced blob. Blob failures never abort
// the record wipe.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	items, err := s.repo.List(ctx, "")
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		s.deleteBlob(ctx, it.ImageID)
	}
	return s.repo.DeleteAll(ctx)
}

// Categories returns the distinct category strings in use.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// deleteBlob is the fire-and-forget compensating action: failures are logged
// and never surfaced as the operation's result.
func (s *Service) deleteBlob(ctx context.Context, blobID string) {
	if blobID == "" {
		return
	}
	if err := s.blobs.Delete(ctx, blobID); err != nil {
		log.Printf("gallery: delete blob %q: %v", blobID, err)
	}
}

func imageURL(blobID string) string {
	return "/api/gallery/image/" + blobID
}
