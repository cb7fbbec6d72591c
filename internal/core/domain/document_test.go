package domain

import "testing"

func TestDocumentID_Deterministic(t *testing.T) {
	a := DocumentID("medical-handbook.pdf")
	b := DocumentID("medical-handbook.pdf")
	if a != b {
		t.Errorf("expected identical IDs for identical filenames, got %s and %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d (%s)", len(a), a)
	}
}

func TestDocumentID_DistinctFilenames(t *testing.T) {
	if DocumentID("a.pdf") == DocumentID("b.pdf") {
		t.Error("expected different IDs for different filenames")
	}
}

func TestChunkID_Format(t *testing.T) {
	id := ChunkID("abc123", 2, 7)
	if id != "abc123:2:7" {
		t.Errorf("expected abc123:2:7, got %s", id)
	}
}
