package news

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
	List(ctx context.Context, publishedOnly bool) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, it *Item) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ImageUpload carries a decoded multipart image field.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// CreateInput holds the fields for a new article. Image is optional.
type CreateInput struct {
	Title     string
	Content   string
	Excerpt   string
	Author    string
	Published bool
	Image     *ImageUpload
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Author    *string
	Published *bool
	Image     *ImageUpload
}

// Service contains the news business rules, including the visibility gate
// for unpublished drafts.
type Service struct {
	repo  ItemStore
	blobs storage.Store
}

// NewService creates a news Service.
func NewService(repo ItemStore, blobs storage.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// List returns articles newest first. Unauthenticated callers only see
// published items.
func (s *Service) List(ctx context.Context, authenticated bool) ([]Item, error) {
	items, err := s.repo.List(ctx, !authenticated)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ImageURL = imageURL(items[i].ImageID)
	}
	return items, nil
}

// Get returns one article. Unauthenticated access to an unpublished item
// fails with ErrUnpublished rather than ErrNotFound.
func (s *Service) Get(ctx context.Context, id string, authenticated bool) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !it.Published && !authenticated {
		return nil, ErrUnpublished
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

// Create stores the optional image blob first, then the record.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Item, error) {
	it := &Item{
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Author:    in.Author,
		Published: in.Published,
	}
	if it.Author == "" {
		it.Author = DefaultAuthor
	}

	if in.Image != nil {
		blobID, err := s.blobs.Put(ctx, in.Image.Reader, in.Image.Size, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		it.ImageID = &blobID
		it.ImageFilename = &in.Image.Filename
	}

	it, err := s.repo.Insert(ctx, it)
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
		if it.ImageID != nil {
			s.deleteBlob(ctx, *it.ImageID)
		}
		blobID, err := s.blobs.Put(ctx, in.Image.Reader, in.Image.Size, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store replacement image: %w", err)
		}
		it.ImageID = &blobID
		it.ImageFilename = &in.Image.Filename
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Content != nil {
		it.Content = *in.Content
	}
	if in.Excerpt != nil {
		it.Excerpt = *in.Excerpt
	}
	if in.Author != nil {
		it.Author = *in.Author
	}
	if in.Published != nil {
		it.Published = *in.Published
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	it.ImageURL = imageURL(it.ImageID)
	return it, nil
}

// Delete removes the blob (if any) best-effort, then the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.ImageID != nil {
		s.deleteBlob(ctx, *it.ImageID)
	}
	return s.repo.Delete(ctx, id)
}

// DeleteAll wipes every record and referenced blob.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if it.ImageID != nil {
			s.deleteBlob(ctx, *it.ImageID)
		}
	}
	return s.repo.DeleteAll(ctx)
}

func (s *Service) deleteBlob(ctx context.Context, blobID string) {
	if err := s.blobs.Delete(ctx, blobID); err != nil {
		log.Printf("news: delete blob %q: %v", blobID, err)
	}
}

func imageURL(blobID *string) *string {
	if blobID == nil {
		return nil
	}
	u := "/api/news/image/" + *blobID
	return &u
}
