package entities

import "testing"

func testItems(n int) []*VocabularyItem {
	items := make([]*VocabularyItem, n)
	for i := range items {
		items[i] = &VocabularyItem{
			ID:         string(rune('a' + i)),
			SourceText: "Wort" + string(rune('A'+i)),
			TargetText: "word" + string(rune('A'+i)),
			Tier:       TierBeginner,
		}
	}
	return items
}

func TestFlashcardDeckNavigation(t *testing.T) {
	deck := NewFlashcardDeck(testItems(3))

	if deck.Navigate(DirectionPrevious) {
		t.Fatal("expected previous on the first card to be a no-op")
	}

	deck.Flip()
	if !deck.Navigate(DirectionNext) {
		t.Fatal("expected next to move")
	}
	if deck.IsFlipped {
		t.Error("expected navigation to clear the flip state")
	}

	deck.Navigate(DirectionNext)
	if deck.Navigate(DirectionNext) {
		t.Error("expected next on the last card to be a no-op")
	}
	if deck.CurrentIndex != 2 {
		t.Errorf("expected index 2, got %d", deck.CurrentIndex)
	}
}

func TestFlashcardDeckMarkingIsExclusive(t *testing.T) {
	deck := NewFlashcardDeck(testItems(2))

	if !deck.MarkUnknown() {
		t.Fatal("expected first unknown mark to be new")
	}
	if !deck.MarkKnown() {
		t.Fatal("expected known mark after unknown to be new")
	}
	if _, ok := deck.UnknownIDs["a"]; ok {
		t.Error("expected item to leave the unknown set")
	}
	if deck.MarkKnown() {
		t.Error("expected repeated known mark to report no change")
	}

	if got := deck.Progress(); got != 50 {
		t.Errorf("expected progress 50, got %v", got)
	}
	if deck.Complete() {
		t.Error("expected deck with one of two known to be incomplete")
	}

	deck.Navigate(DirectionNext)
	deck.MarkKnown()
	if !deck.Complete() {
		t.Error("expected deck to be complete")
	}

	deck.Restart()
	if deck.CurrentIndex != 0 || len(deck.KnownIDs) != 0 || deck.Progress() != 0 {
		t.Errorf("expected restart to clear the deck, got %+v", deck)
	}
}

func TestFlashcardDeckEmpty(t *testing.T) {
	deck := NewFlashcardDeck(nil)

	if _, ok := deck.Current(); ok {
		t.Error("expected no current card")
	}
	if deck.MarkKnown() {
		t.Error("expected marking an empty deck to do nothing")
	}
	if deck.Progress() != 0 {
		t.Errorf("expected progress 0, got %v", deck.Progress())
	}
	if deck.Complete() {
		t.Error("expected an empty deck to never be complete")
	}
}
