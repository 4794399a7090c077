package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kingarthur/content-api/internal/storage"
)

type fakeRepo struct {
	items  []Item
	nextID int
}

func (f *fakeRepo) List(ctx context.Context, publishedOnly bool) ([]Item, error) {
	out := []Item{}
	for i := len(f.items) - 1; i >= 0; i-- {
		if publishedOnly && !f.items[i].Published {
			continue
		}
		out = append(out, f.items[i])
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	for _, it := range f.items {
		if it.ID == id {
			copied := it
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) Insert(ctx context.Context, it *Item) (*Item, error) {
	f.nextID++
	it.ID = fmt.Sprintf("article-%d", f.nextID)
	it.CreatedAt = time.Now()
	it.UpdatedAt = it.CreatedAt
	f.items = append(f.items, *it)
	return it, nil
}

func (f *fakeRepo) Update(ctx context.Context, it *Item) error {
	for i := range f.items {
		if f.items[i].ID == it.ID {
			f.items[i] = *it
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.items))
	f.items = nil
	return n, nil
}

type fakeBlobs struct {
	objects map[string][]byte
	types   map[string]string
	nextKey int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobs) Put(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.nextKey++
	key := fmt.Sprintf("blob-%d", f.nextKey)
	f.objects[key] = data
	f.types[key] = contentType
	return key, nil
}

func (f *fakeBlobs) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, "", storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), f.types[key], nil
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	delete(f.types, key)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeBlobs) {
	repo := &fakeRepo{}
	blobs := newFakeBlobs()
	return NewService(repo, blobs), repo, blobs
}

func seedArticle(t *testing.T, svc *Service, title string, published bool) *Item {
	t.Helper()
	it, err := svc.Create(context.Background(), CreateInput{
		Title:     title,
		Content:   "body",
		Published: published,
	})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return it
}

func TestListHidesDraftsFromAnonymous(t *testing.T) {
	svc, _, _ := newTestService()
	seedArticle(t, svc, "Public", true)
	seedArticle(t, svc, "Draft", false)

	public, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list anonymous: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Public" {
		t.Fatalf("anonymous list should only hold published items, got %+v", public)
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list authenticated: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("authenticated list should include drafts, got %d items", len(all))
	}
}

func TestGetUnpublishedGate(t *testing.T) {
	svc, _, _ := newTestService()
	draft := seedArticle(t, svc, "Draft", false)

	if _, err := svc.Get(context.Background(), draft.ID, false); !errors.Is(err, ErrUnpublished) {
		t.Fatalf("anonymous draft read should be ErrUnpublished, got %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, true); err != nil {
		t.Fatalf("authenticated draft read should succeed, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item should be ErrNotFound, got %v", err)
	}
}

func TestCreateDefaultsAuthorAndOptionalImage(t *testing.T) {
	svc, _, blobs := newTestService()

	plain := seedArticle(t, svc, "No image", true)
	if plain.Author != DefaultAuthor {
		t.Errorf("expected default author, got %q", plain.Author)
	}
	if plain.ImageID != nil || plain.ImageURL != nil {
		t.Errorf("article without upload should have no image refs: %+v", plain)
	}

	withImage, err := svc.Create(context.Background(), CreateInput{
		Title:   "Illustrated",
		Content: "body",
		Author:  "Analyst Desk",
		Image: &ImageUpload{
			Reader:      strings.NewReader("png-bytes"),
			Size:        9,
			Filename:    "chart.png",
			ContentType: "image/png",
		},
	})
	if err != nil {
		t.Fatalf("create with image: %v", err)
	}
	if withImage.Author != "Analyst Desk" {
		t.Errorf("explicit author overridden: %q", withImage.Author)
	}
	if withImage.ImageID == nil {
		t.Fatal("expected a stored blob id")
	}
	if withImage.ImageURL == nil || *withImage.ImageURL != "/api/news/image/"+*withImage.ImageID {
		t.Errorf("unexpected image url: %v", withImage.ImageURL)
	}
	if string(blobs.objects[*withImage.ImageID]) != "png-bytes" {
		t.Error("blob content missing")
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	svc, _, blobs := newTestService()

	it, err := svc.Create(context.Background(), CreateInput{
		Title:   "T",
		Content: "body",
		Image: &ImageUpload{
			Reader:      strings.NewReader("old"),
			Size:        3,
			Filename:    "old.jpg",
			ContentType: "image/jpeg",
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldBlob := *it.ImageID

	updated, err := svc.Update(context.Background(), it.ID, UpdateInput{
		Image: &ImageUpload{
			Reader:      strings.NewReader("new"),
			Size:        3,
			Filename:    "new.jpg",
			ContentType: "image/jpeg",
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.ImageID == oldBlob {
		t.Fatal("expected a fresh blob id")
	}
	if _, ok := blobs.objects[oldBlob]; ok {
		t.Fatal("old blob should be gone")
	}
}

func TestUpdatePublishFlagOnly(t *testing.T) {
	svc, _, _ := newTestService()
	draft := seedArticle(t, svc, "Draft", false)

	published := true
	updated, err := svc.Update(context.Background(), draft.ID, UpdateInput{Published: &published})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Published {
		t.Fatal("publish flag not applied")
	}
	if updated.Title != "Draft" || updated.Content != "body" {
		t.Fatalf("unsupplied fields must not change: %+v", updated)
	}

	if _, err := svc.Get(context.Background(), draft.ID, false); err != nil {
		t.Fatalf("published article should now be public, got %v", err)
	}
}

func TestDeleteAllRemovesRecordsAndBlobs(t *testing.T) {
	svc, repo, blobs := newTestService()
	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Title:   fmt.Sprintf("a-%d", i),
			Content: "body",
			Image: &ImageUpload{
				Reader:      strings.NewReader("x"),
				Size:        1,
				Filename:    "x.jpg",
				ContentType: "image/jpeg",
			},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err := svc.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 deleted, got %d", count)
	}
	if len(repo.items) != 0 || len(blobs.objects) != 0 {
		t.Fatal("records and blobs should both be wiped")
	}
}
