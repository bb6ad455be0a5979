package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// Long enough that nothing fires on its own during a test.
const testDebounce = time.Hour

func TestLearnResumeDefaultPosition(t *testing.T) {
	ctx := context.Background()
	stores, _, progress := testStores(tieredWords())
	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())

	if err := learn.Resume(ctx); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}

	snap := learn.Snapshot()
	if snap.Tier != entities.TierAll || snap.Index != 0 || snap.Total != 5 {
		t.Errorf("expected all shared words from the start, got %+v", snap)
	}

	writes := progress.writes()
	if len(writes) != 1 || writes[0].Tier != entities.TierAll || writes[0].Index != 0 {
		t.Errorf("expected the default position to be saved once, got %+v", writes)
	}
}

func TestLearnResumeClampsIndex(t *testing.T) {
	ctx := context.Background()
	stores, _, progress := testStores(tieredWords())
	_ = progress.WritePosition(ctx, &entities.Position{UserID: "tg:1", Tier: entities.TierBeginner, Index: 99})

	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())
	if err := learn.Resume(ctx); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}

	snap := learn.Snapshot()
	if snap.Tier != entities.TierBeginner || snap.Index != 0 {
		t.Errorf("expected index clamped to 0 on beginner, got %+v", snap)
	}
	if !learn.Resumed() {
		t.Error("expected session to report resumed")
	}
}

func TestLearnResumeUnknownTier(t *testing.T) {
	ctx := context.Background()
	stores, _, progress := testStores(tieredWords())
	_ = progress.WritePosition(ctx, &entities.Position{UserID: "tg:1", Tier: "expert", Index: 3})

	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())
	if err := learn.Resume(ctx); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}

	snap := learn.Snapshot()
	if snap.Tier != entities.TierAll || snap.Index != 0 {
		t.Errorf("expected fallback to all/0, got %+v", snap)
	}
}

func TestLearnResumeRepositoryError(t *testing.T) {
	words := tieredWords()
	words.failAll = true
	stores, _, _ := testStores(words)

	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())
	err := learn.Resume(context.Background())

	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("expected RepositoryError, got %v", err)
	}
	if learn.Resumed() {
		t.Error("expected a failed resume to be retried later")
	}
}

func TestLearnDebouncedPositionWrites(t *testing.T) {
	ctx := context.Background()
	stores, _, progress := testStores(tieredWords())
	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())

	if err := learn.Resume(ctx); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if !learn.Next() {
			t.Fatalf("Next %d did not move", i)
		}
	}
	learn.Previous()

	if n := len(progress.writes()); n != 1 {
		t.Fatalf("expected no write during the quiet period, got %d writes", n)
	}

	learn.Flush()

	writes := progress.writes()
	if len(writes) != 2 {
		t.Fatalf("expected rapid moves to collapse into one write, got %+v", writes)
	}
	if got := writes[1]; got.Index != 2 || got.Tier != entities.TierAll {
		t.Errorf("expected the last position to be saved, got %+v", got)
	}

	// Nothing pending, nothing written.
	learn.Flush()
	if n := len(progress.writes()); n != 2 {
		t.Errorf("expected an idle flush to write nothing, got %d writes", n)
	}
}

func TestLearnChangeTier(t *testing.T) {
	ctx := context.Background()
	stores, _, progress := testStores(tieredWords())
	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())

	if err := learn.Resume(ctx); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	learn.Next()
	learn.ToggleTranslation()

	if err := learn.ChangeTier(ctx, entities.TierIntermediate); err != nil {
		t.Fatalf("ChangeTier returned error: %v", err)
	}

	snap := learn.Snapshot()
	if snap.Tier != entities.TierIntermediate || snap.Index != 0 || snap.Total != 2 || snap.ShowTranslation {
		t.Errorf("expected intermediate from the start, got %+v", snap)
	}

	learn.Close()
	writes := progress.writes()
	if last := writes[len(writes)-1]; last.Tier != entities.TierIntermediate || last.Index != 0 {
		t.Errorf("expected close to save the new tier, got %+v", last)
	}

	// A closed session no longer writes.
	learn.Next()
	learn.Flush()
	if n := len(progress.writes()); n != len(writes) {
		t.Errorf("expected no writes after close, got %d", n)
	}

	if err := learn.ChangeTier(ctx, "expert"); !errors.Is(err, entities.ErrInvalidTier) {
		t.Errorf("expected ErrInvalidTier, got %v", err)
	}
}

func TestLearnBoundaries(t *testing.T) {
	ctx := context.Background()
	stores, _, _ := testStores(tieredWords())
	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())

	if err := learn.ChangeTier(ctx, entities.TierAdvanced); err != nil {
		t.Fatalf("ChangeTier returned error: %v", err)
	}

	if learn.Next() || learn.Previous() {
		t.Error("expected a single word set to not move")
	}
}

func TestLearnReloadPersonal(t *testing.T) {
	ctx := context.Background()
	words := newFakeWordRepo(
		personalWord("p1", "tg:1", "Apfel", "apple"),
		personalWord("p2", "tg:1", "Brot", "bread"),
		personalWord("p3", "tg:1", "Käse", "cheese"),
	)
	stores, _, progress := testStores(words)
	learn := NewLearnSession("tg:1", stores, testDebounce, zap.NewNop())

	if err := learn.ChangeTier(ctx, entities.TierPersonal); err != nil {
		t.Fatalf("ChangeTier returned error: %v", err)
	}
	learn.Next()
	learn.ToggleTranslation()
	learn.Flush()
	before := len(progress.writes())

	// A word before the cursor goes away: the index stays inside the set.
	_ = words.Delete(ctx, "tg:1", "p1")
	if err := learn.Reload(ctx); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	snap := learn.Snapshot()
	if snap.Index != 1 || snap.Total != 2 || snap.Item.ID != "p3" || !snap.ShowTranslation {
		t.Errorf("expected index 1 on the shorter set, got %+v", snap)
	}
	learn.Flush()
	if n := len(progress.writes()); n != before {
		t.Errorf("expected an unchanged index to write nothing, got %d writes", n-before)
	}

	// The current word goes away and the set is too short for the index.
	_ = words.Delete(ctx, "tg:1", "p3")
	if err := learn.Reload(ctx); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if snap := learn.Snapshot(); snap.Index != 0 || snap.Total != 1 {
		t.Errorf("expected the first item, got %+v", snap)
	}
	learn.Flush()
	writes := progress.writes()
	if last := writes[len(writes)-1]; last.Tier != entities.TierPersonal || last.Index != 0 {
		t.Errorf("expected the moved position to be saved, got %+v", last)
	}
}
