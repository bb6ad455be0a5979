package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

func tieredWords() *fakeWordRepo {
	return newFakeWordRepo(
		sharedWord("b1", "Haus", "house", entities.TierBeginner),
		sharedWord("b2", "Baum", "tree", entities.TierBeginner),
		sharedWord("i1", "Gerechtigkeit", "justice", entities.TierIntermediate),
		sharedWord("i2", "Verantwortung", "responsibility", entities.TierIntermediate),
		sharedWord("a1", "Weltanschauung", "world view", entities.TierAdvanced),
	)
}

func TestFlashcardAutoAdvance(t *testing.T) {
	ctx := context.Background()
	cards := NewFlashcardSession("tg:1", tieredWords(), zap.NewNop())

	if err := cards.Start(ctx, entities.TierBeginner); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	out, err := cards.MarkKnown(ctx)
	if err != nil || out.Advanced {
		t.Fatalf("expected no advance after the first card, got %+v, %v", out, err)
	}
	if snap := cards.Snapshot(); snap.Index != 1 {
		t.Fatalf("expected cursor on the second card, got %d", snap.Index)
	}

	out, err = cards.MarkKnown(ctx)
	if err != nil {
		t.Fatalf("MarkKnown returned error: %v", err)
	}
	if !out.Advanced || out.Tier != entities.TierIntermediate {
		t.Fatalf("expected advance to intermediate, got %+v", out)
	}

	snap := cards.Snapshot()
	if snap.Tier != entities.TierIntermediate || snap.Index != 0 || snap.Known != 0 || snap.Total != 2 {
		t.Errorf("expected a fresh intermediate deck, got %+v", snap)
	}
	if snap.Card.ID != "i1" {
		t.Errorf("expected first intermediate card, got %s", snap.Card.ID)
	}
}

func TestFlashcardNoAdvanceOnRepeatedMark(t *testing.T) {
	ctx := context.Background()
	cards := NewFlashcardSession("tg:1", tieredWords(), zap.NewNop())

	if err := cards.Start(ctx, entities.TierBeginner); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// Mark the second card first, then go back and mark it again.
	cards.Next()
	_, _ = cards.MarkKnown(ctx)
	cards.Previous()
	cards.MarkUnknown()
	cards.Next()

	out, err := cards.MarkKnown(ctx)
	if err != nil || out.Advanced {
		t.Fatalf("expected marking a known card again to not advance, got %+v, %v", out, err)
	}

	snap := cards.Snapshot()
	if snap.Known != 1 || snap.Unknown != 1 || snap.Tier != entities.TierBeginner {
		t.Errorf("unexpected deck state: %+v", snap)
	}
}

func TestFlashcardAdvancedNeverAdvances(t *testing.T) {
	ctx := context.Background()
	cards := NewFlashcardSession("tg:1", tieredWords(), zap.NewNop())

	if err := cards.Start(ctx, entities.TierAdvanced); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	out, err := cards.MarkKnown(ctx)
	if err != nil || out.Advanced {
		t.Fatalf("expected no advance from advanced, got %+v, %v", out, err)
	}
	if got := cards.Progress(); got != 100 {
		t.Errorf("expected progress 100, got %v", got)
	}
}

func TestFlashcardAdvanceFailureKeepsDeck(t *testing.T) {
	ctx := context.Background()
	words := tieredWords()
	cards := NewFlashcardSession("tg:1", words, zap.NewNop())

	if err := cards.Start(ctx, entities.TierBeginner); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	words.failTiers[entities.TierIntermediate] = true

	_, _ = cards.MarkKnown(ctx)
	out, err := cards.MarkKnown(ctx)

	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("expected RepositoryError, got %v", err)
	}
	if out.Advanced {
		t.Error("expected no advance")
	}

	snap := cards.Snapshot()
	if snap.Tier != entities.TierBeginner || snap.Known != 2 {
		t.Errorf("expected the finished beginner deck to stay, got %+v", snap)
	}
}

func TestFlashcardAdvanceFailureMovesCursor(t *testing.T) {
	ctx := context.Background()
	words := tieredWords()
	cards := NewFlashcardSession("tg:1", words, zap.NewNop())

	if err := cards.Start(ctx, entities.TierBeginner); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	words.failTiers[entities.TierIntermediate] = true

	// Finish the deck on its first card so moving on is observable.
	cards.Next()
	if _, err := cards.MarkKnown(ctx); err != nil {
		t.Fatalf("MarkKnown returned error: %v", err)
	}
	cards.Previous()
	cards.Flip()

	if _, err := cards.MarkKnown(ctx); err == nil {
		t.Fatal("expected the failed load to be reported")
	}

	snap := cards.Snapshot()
	if snap.Index != 1 || snap.Card == nil || snap.Card.ID != "b2" || snap.Flipped {
		t.Errorf("expected the cursor on the next card, got %+v", snap)
	}
}

func TestFlashcardFlipAndRestart(t *testing.T) {
	ctx := context.Background()
	cards := NewFlashcardSession("tg:1", tieredWords(), zap.NewNop())

	if err := cards.Start(ctx, entities.TierBeginner); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	cards.Flip()
	if !cards.Snapshot().Flipped {
		t.Fatal("expected card to be flipped")
	}

	cards.MarkUnknown()
	if snap := cards.Snapshot(); snap.Flipped || snap.Index != 1 {
		t.Errorf("expected marking to move on face up, got %+v", snap)
	}

	cards.Restart()
	if snap := cards.Snapshot(); snap.Index != 0 || snap.Unknown != 0 {
		t.Errorf("expected restart to clear the deck, got %+v", snap)
	}

	if err := cards.ChangeTier(ctx, entities.TierAll); !errors.Is(err, entities.ErrInvalidTier) {
		t.Errorf("expected ErrInvalidTier for all, got %v", err)
	}
}

func TestFlashcardEmptyPersonalDeck(t *testing.T) {
	ctx := context.Background()
	cards := NewFlashcardSession("tg:1", tieredWords(), zap.NewNop())

	if err := cards.Start(ctx, entities.TierPersonal); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	snap := cards.Snapshot()
	if snap.Card != nil || snap.Total != 0 || snap.Progress != 0 {
		t.Errorf("expected an empty deck, got %+v", snap)
	}
	if cards.Next() {
		t.Error("expected navigation on an empty deck to do nothing")
	}
	if out, _ := cards.MarkKnown(ctx); out.Advanced {
		t.Error("expected no advance on an empty deck")
	}
}
