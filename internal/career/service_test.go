package career

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
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
	it.ID = fmt.Sprintf("posting-%d", f.nextID)
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

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	return NewService(repo), repo
}

func seedPosting(t *testing.T, svc *Service, title string, published bool) *Item {
	t.Helper()
	it, err := svc.Create(context.Background(), CreateInput{
		Title:      title,
		Location:   "London",
		Type:       TypeFullTime,
		Department: "Trading",
		Published:  published,
	})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return it
}

func TestCreateNormalizesNilSlices(t *testing.T) {
	svc, _ := newTestService()
	it := seedPosting(t, svc, "Analyst", true)

	if it.Requirements == nil || it.Responsibilities == nil {
		t.Fatalf("slices must be empty, not nil: %+v", it)
	}
	if len(it.Requirements) != 0 || len(it.Responsibilities) != 0 {
		t.Fatalf("expected empty slices, got %+v", it)
	}
}

func TestListHidesUnpublishedFromAnonymous(t *testing.T) {
	svc, _ := newTestService()
	seedPosting(t, svc, "Open role", true)
	seedPosting(t, svc, "Internal role", false)

	public, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list anonymous: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Open role" {
		t.Fatalf("anonymous list should hold only published postings, got %+v", public)
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list authenticated: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("authenticated list should include drafts, got %d", len(all))
	}
}

func TestGetUnpublishedGate(t *testing.T) {
	svc, _ := newTestService()
	draft := seedPosting(t, svc, "Internal role", false)

	if _, err := svc.Get(context.Background(), draft.ID, false); !errors.Is(err, ErrUnpublished) {
		t.Fatalf("anonymous draft read should be ErrUnpublished, got %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, true); err != nil {
		t.Fatalf("authenticated draft read should succeed, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing posting should be ErrNotFound, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newTestService()
	it, err := svc.Create(context.Background(), CreateInput{
		Title:        "Analyst",
		Location:     "London",
		Type:         TypeFullTime,
		Department:   "Trading",
		Requirements: []string{"CFA"},
		SalaryRange:  "competitive",
		Published:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	loc := "Geneva"
	reqs := []string{"CFA", "5y experience"}
	updated, err := svc.Update(context.Background(), it.ID, UpdateInput{
		Location:     &loc,
		Requirements: reqs,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Location != "Geneva" {
		t.Errorf("location not applied: %q", updated.Location)
	}
	if len(updated.Requirements) != 2 {
		t.Errorf("requirements should be replaced wholesale: %v", updated.Requirements)
	}
	if updated.Title != "Analyst" || updated.Type != TypeFullTime || updated.SalaryRange != "competitive" {
		t.Errorf("unsupplied fields must not change: %+v", updated)
	}
	if !updated.Published {
		t.Error("published flag must not change when unsupplied")
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()
	it := seedPosting(t, svc, "Analyst", true)

	if err := svc.Delete(context.Background(), it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("posting should be gone")
	}
	if err := svc.Delete(context.Background(), it.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []string{TypeFullTime, TypePartTime, TypeContract, TypeInternship} {
		if !ValidType(typ) {
			t.Errorf("%q should be valid", typ)
		}
	}
	for _, typ := range []string{"", "full-time", "Freelance"} {
		if ValidType(typ) {
			t.Errorf("%q should be invalid", typ)
		}
	}
}
