package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

func TestCompleteSessionIsIdempotentPerItem(t *testing.T) {
	ctx := context.Background()
	learned := newFakeLearnedRepo()
	progress := newFakeProgressStore()
	rec := NewResultRecorder(progress, learned, zap.NewNop())

	haus := sharedWord("b1", "Haus", "house", entities.TierBeginner)

	var result entities.SessionResult
	result.Record(haus, "house", true)
	result.Record(haus, "house", true)
	result.Record(sharedWord("b2", "Baum", "tree", entities.TierBeginner), "dog", false)

	for i := 0; i < 2; i++ {
		if err := rec.CompleteSession(ctx, "tg:1", entities.TierBeginner, &result); err != nil {
			t.Fatalf("CompleteSession returned error: %v", err)
		}
	}

	n, _ := learned.CountLearned(ctx, "tg:1", entities.TierBeginner)
	if n != 1 {
		t.Errorf("expected one learned record, got %d", n)
	}
	if learned.writes != 2 {
		t.Errorf("expected duplicate items in one result to be written once, got %d writes", learned.writes)
	}

	// Counters are plain increments per completed session.
	if p := progress.get("tg:1"); p.Score != 4 {
		t.Errorf("expected score 4 after two sessions, got %d", p.Score)
	}
}

func TestCompleteSessionCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	learned := newFakeLearnedRepo()
	progress := newFakeProgressStore()
	rec := NewResultRecorder(progress, learned, zap.NewNop())

	var result entities.SessionResult
	result.Record(sharedWord("b1", "Haus", "house", entities.TierBeginner), "house", true)

	if err := rec.CompleteSession(ctx, "tg:1", entities.TierBeginner, &result); err != nil {
		t.Fatalf("CompleteSession returned error: %v", err)
	}
	if p := progress.get("tg:1"); p.Score != 1 {
		t.Errorf("expected writes to go through after cancellation, got %+v", p)
	}
}

func TestCompleteSessionLearnedFailure(t *testing.T) {
	learned := newFakeLearnedRepo()
	learned.fail = true
	progress := newFakeProgressStore()
	rec := NewResultRecorder(progress, learned, zap.NewNop())

	var result entities.SessionResult
	result.Record(sharedWord("b1", "Haus", "house", entities.TierBeginner), "house", true)

	err := rec.CompleteSession(context.Background(), "tg:1", entities.TierBeginner, &result)

	var persistErr *PersistenceError
	if !errors.As(err, &persistErr) || !errors.Is(err, errStoreDown) {
		t.Fatalf("expected PersistenceError wrapping the store error, got %v", err)
	}
	// No rollback of the independent progress write.
	if p := progress.get("tg:1"); p.Score != 1 {
		t.Errorf("expected progress to be written, got %+v", p)
	}
}
