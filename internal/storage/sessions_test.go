package storage

import (
	"sort"
	"testing"
	"time"
)

func TestSessionStorageGetOrCreate(t *testing.T) {
	s := NewSessionStorage[*int]()

	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	a, created := s.GetOrCreate("tg:1", create)
	if !created || *a != 1 {
		t.Fatalf("expected a new session, got %v created=%v", *a, created)
	}

	b, created := s.GetOrCreate("tg:1", create)
	if created || b != a {
		t.Fatal("expected the existing session to be returned")
	}
	if calls != 1 {
		t.Errorf("expected create to run once, got %d", calls)
	}

	if _, ok := s.Delete("tg:1"); !ok {
		t.Fatal("expected delete to find the session")
	}
	if _, ok := s.Get("tg:1"); ok {
		t.Error("expected session to be gone")
	}
}

func TestSessionStorageSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStorage[string]()
	s.clock = func() time.Time { return now }

	s.Store("tg:1", "old")
	s.Store("tg:2", "touched")

	now = now.Add(20 * time.Minute)
	s.Get("tg:2")
	s.Store("tg:3", "new")

	now = now.Add(15 * time.Minute)
	evicted := s.Sweep(30 * time.Minute)

	if len(evicted) != 1 || evicted[0] != "old" {
		t.Fatalf("expected only the idle session to be evicted, got %v", evicted)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 sessions left, got %d", s.Len())
	}

	rest := s.Drain()
	sort.Strings(rest)
	if len(rest) != 2 || rest[0] != "new" || rest[1] != "touched" {
		t.Errorf("unexpected drained sessions: %v", rest)
	}
	if s.Len() != 0 {
		t.Error("expected drain to empty the storage")
	}
}
