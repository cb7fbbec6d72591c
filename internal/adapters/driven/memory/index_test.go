package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

func TestIndex_EnsureNamespaceIdempotent(t *testing.T) {
	idx := New()
	ctx := context.Background()

	if err := idx.EnsureNamespace(ctx, "corpus", 3, "cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := idx.EnsureNamespace(ctx, "corpus", 3, "cosine"); err != nil {
		t.Fatalf("second ensure must be a no-op: %v", err)
	}

	err := idx.EnsureNamespace(ctx, "corpus", 5, "cosine")
	if !errors.Is(err, domain.ErrIndexProvisioning) {
		t.Errorf("expected ErrIndexProvisioning on dimension change, got %v", err)
	}
}

func TestIndex_UpsertAndSearch(t *testing.T) {
	idx := New()
	ctx := context.Background()

	if err := idx.EnsureNamespace(ctx, "corpus", 2, "cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := []*domain.IndexEntry{
		{ID: "a", Vector: []float32{1, 0}, Content: "aligned"},
		{ID: "b", Vector: []float32{0, 1}, Content: "orthogonal"},
		{ID: "c", Vector: []float32{0.9, 0.1}, Content: "close"},
	}
	if err := idx.Upsert(ctx, "corpus", entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := idx.Search(ctx, "corpus", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("expected the aligned entry first, got %s", results[0].ID)
	}
	if results[0].Score < results[1].Score {
		t.Error("results not ordered by descending similarity")
	}
	if results[0].Score < 0.999 {
		t.Errorf("identical direction should score ~1.0, got %f", results[0].Score)
	}
}

func TestIndex_UpsertReplacesByID(t *testing.T) {
	idx := New()
	ctx := context.Background()

	if err := idx.EnsureNamespace(ctx, "corpus", 2, "cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := []*domain.IndexEntry{{ID: "a", Vector: []float32{1, 0}, Content: "old"}}
	second := []*domain.IndexEntry{{ID: "a", Vector: []float32{1, 0}, Content: "new"}}
	if err := idx.Upsert(ctx, "corpus", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := idx.Upsert(ctx, "corpus", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := idx.Count("corpus"); n != 1 {
		t.Errorf("expected 1 entry after replacement, got %d", n)
	}
	results, _ := idx.Search(ctx, "corpus", []float32{1, 0}, 1)
	if results[0].Content != "new" {
		t.Errorf("expected replaced content, got %q", results[0].Content)
	}
}

func TestIndex_UpsertDimensionMismatch(t *testing.T) {
	idx := New()
	ctx := context.Background()

	if err := idx.EnsureNamespace(ctx, "corpus", 2, "cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := idx.Upsert(ctx, "corpus", []*domain.IndexEntry{{ID: "a", Vector: []float32{1, 0, 0}}})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if n := idx.Count("corpus"); n != 0 {
		t.Errorf("expected no entries after rejected batch, got %d", n)
	}
}

func TestIndex_SearchUnknownNamespace(t *testing.T) {
	idx := New()

	results, err := idx.Search(context.Background(), "missing", []float32{1}, 4)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestIndex_UpsertUnknownNamespace(t *testing.T) {
	idx := New()

	err := idx.Upsert(context.Background(), "missing", []*domain.IndexEntry{{ID: "a", Vector: []float32{1}}})
	if !errors.Is(err, domain.ErrIndexQuery) {
		t.Errorf("expected ErrIndexQuery, got %v", err)
	}
}
