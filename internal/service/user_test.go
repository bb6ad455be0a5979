package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	progress := newFakeProgressStore()
	svc := NewUserService(users, progress)

	if err := svc.EnsureUser(ctx, "tg:1", 100, "anna"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if err := svc.EnsureUser(ctx, "tg:1", 100, "anna"); err != nil {
		t.Fatalf("EnsureUser second call returned error: %v", err)
	}

	if ok, _ := users.Exists(ctx, "tg:1"); !ok {
		t.Error("expected user to be registered")
	}
	if _, ok := progress.progress["tg:1"]; !ok {
		t.Error("expected a default progress record")
	}
}

func TestResetUserEvictsSessions(t *testing.T) {
	ctx := context.Background()
	stores, _, _ := testStores(tieredWords())
	m := NewSessionManager(stores, nil, testDebounce, zap.NewNop())
	resetter := &fakeResetter{}

	quiz := m.Quiz("tg:1")

	if err := NewResetService(resetter, m, zap.NewNop()).ResetUser(ctx, "tg:1"); err != nil {
		t.Fatalf("ResetUser returned error: %v", err)
	}

	if len(resetter.calls) != 1 || resetter.calls[0] != "tg:1" {
		t.Errorf("expected one reset for tg:1, got %v", resetter.calls)
	}
	if m.Quiz("tg:1") == quiz {
		t.Error("expected the quiz session to be dropped")
	}
}
