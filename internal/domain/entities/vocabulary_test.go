package entities

import (
	"errors"
	"testing"
	"time"
)

func TestParseTier(t *testing.T) {
	for _, in := range []string{"beginner", " Intermediate ", "ADVANCED", "personal", "all"} {
		if _, err := ParseTier(in); err != nil {
			t.Errorf("ParseTier(%q) returned error: %v", in, err)
		}
	}

	if _, err := ParseTier("expert"); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("expected ErrInvalidTier, got %v", err)
	}
}

func TestTierNext(t *testing.T) {
	if next, ok := TierBeginner.Next(); !ok || next != TierIntermediate {
		t.Errorf("expected beginner to advance to intermediate, got %q %v", next, ok)
	}
	if next, ok := TierIntermediate.Next(); !ok || next != TierAdvanced {
		t.Errorf("expected intermediate to advance to advanced, got %q %v", next, ok)
	}
	if _, ok := TierAdvanced.Next(); ok {
		t.Error("expected advanced to be the last tier")
	}
	if _, ok := TierPersonal.Next(); ok {
		t.Error("expected personal to never advance")
	}
}

func TestNewPersonalItem(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	item, err := NewPersonalItem("id-1", "tg:1", "  Haus ", "house", " Wohnen ", now)
	if err != nil {
		t.Fatalf("NewPersonalItem returned error: %v", err)
	}
	if item.SourceText != "Haus" || item.Category != "Wohnen" {
		t.Errorf("expected trimmed fields, got %+v", item)
	}
	if item.Tier != TierPersonal || !item.IsOwnedBy("tg:1") || item.IsOwnedBy("tg:2") {
		t.Errorf("unexpected ownership: %+v", item)
	}

	if _, err := NewPersonalItem("id-2", "tg:1", "Haus", "   ", "", now); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	shared := &VocabularyItem{ID: "seed-001", Tier: TierBeginner}
	if shared.IsOwnedBy("") {
		t.Error("expected shared items to have no owner")
	}
}
