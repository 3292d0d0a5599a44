package alerts

import (
	"testing"
)

func TestStoreMarkReadIdempotent(t *testing.T) {
	s := NewStore()
	s.Upsert(Alert{ID: "a1", Title: "t", Severity: SeverityInfo})

	if !s.MarkRead("a1") {
		t.Error("first mark-read should report a change")
	}
	if s.MarkRead("a1") {
		t.Error("second mark-read should be a no-op")
	}
	if s.MarkRead("missing") {
		t.Error("mark-read of unknown id should be a no-op")
	}

	a, _ := s.Get("a1")
	if !a.Read {
		t.Error("alert should be read")
	}
}

func TestStoreDismissIdempotent(t *testing.T) {
	s := NewStore()
	s.Upsert(Alert{ID: "a1", Title: "t", Severity: SeverityInfo})

	if !s.Dismiss("a1") {
		t.Error("dismiss should report a change")
	}
	if s.Dismiss("a1") {
		t.Error("repeated dismiss should be a no-op")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestStoreReplacePreservesLocalReadFlags(t *testing.T) {
	s := NewStore()
	s.Replace([]Alert{
		{ID: "a1", Title: "one", Severity: SeverityWarning},
		{ID: "a2", Title: "two", Severity: SeverityInfo},
	})
	s.MarkRead("a1")

	// Feed snapshot arrives with read flags unset.
	s.Replace([]Alert{
		{ID: "a1", Title: "one", Severity: SeverityWarning},
		{ID: "a3", Title: "three", Severity: SeverityCritical},
	})

	a1, ok := s.Get("a1")
	if !ok || !a1.Read {
		t.Error("read flag should survive a snapshot replace")
	}
	if _, ok := s.Get("a2"); ok {
		t.Error("a2 should have been retired by the snapshot")
	}
	if s.UnreadCount() != 1 {
		t.Errorf("expected 1 unread, got %d", s.UnreadCount())
	}
}

func TestStoreReplaceDropsDuplicateIDs(t *testing.T) {
	s := NewStore()
	s.Replace([]Alert{
		{ID: "dup", Title: "first", Severity: SeverityInfo},
		{ID: "dup", Title: "second", Severity: SeverityCritical},
	})

	if s.Len() != 1 {
		t.Fatalf("expected 1 alert, got %d", s.Len())
	}
	a, _ := s.Get("dup")
	if a.Title != "first" {
		t.Errorf("first occurrence should win, got %q", a.Title)
	}
}

func TestStoreAllReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Upsert(Alert{ID: "a1", Title: "t", Severity: SeverityInfo})

	out := s.All()
	out[0].Read = true

	a, _ := s.Get("a1")
	if a.Read {
		t.Error("mutating All() result should not touch the store")
	}
}

func TestStoreUpsertKeepsReadOnUpdate(t *testing.T) {
	s := NewStore()
	s.Upsert(Alert{ID: "a1", Title: "v1", Severity: SeverityInfo})
	s.MarkRead("a1")

	s.Upsert(Alert{ID: "a1", Title: "v2", Severity: SeverityWarning})

	a, _ := s.Get("a1")
	if a.Title != "v2" {
		t.Errorf("update should apply, got title %q", a.Title)
	}
	if !a.Read {
		t.Error("read flag should survive an update")
	}
}

func TestMetadataDisplayStatus(t *testing.T) {
	m := Metadata{Status: "awaiting_final_pod"}
	if got := m.DisplayStatus(); got != "awaiting final pod" {
		t.Errorf("expected underscores replaced, got %q", got)
	}
}
