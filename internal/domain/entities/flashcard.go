package entities

// Direction is a navigation step through an ordered word set.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrevious
)

// FlashcardDeck holds the state of one flashcard pass.
//
// KnownIDs and UnknownIDs are kept mutually exclusive: marking an item moves
// it out of the opposite set.
type FlashcardDeck struct {
	Items        []*VocabularyItem
	CurrentIndex int
	IsFlipped    bool
	KnownIDs     map[string]struct{}
	UnknownIDs   map[string]struct{}
}

// NewFlashcardDeck creates a deck positioned on the first card.
func NewFlashcardDeck(items []*VocabularyItem) *FlashcardDeck {
	return &FlashcardDeck{
		Items:      items,
		KnownIDs:   make(map[string]struct{}),
		UnknownIDs: make(map[string]struct{}),
	}
}

// Current returns the card under the cursor.
func (d *FlashcardDeck) Current() (*VocabularyItem, bool) {
	if len(d.Items) == 0 {
		return nil, false
	}
	return d.Items[d.CurrentIndex], true
}

// Navigate moves the cursor and clears the flip state.
// Moving past either end is a no-op. It reports whether the cursor moved.
func (d *FlashcardDeck) Navigate(dir Direction) bool {
	idx, moved := step(d.CurrentIndex, len(d.Items), dir)
	if !moved {
		return false
	}

	d.CurrentIndex = idx
	d.IsFlipped = false
	return true
}

// Flip toggles the card face.
func (d *FlashcardDeck) Flip() {
	d.IsFlipped = !d.IsFlipped
}

// MarkKnown records the current card as known. It reports whether the id
// was newly added, so callers only evaluate tier advancement once per item.
func (d *FlashcardDeck) MarkKnown() bool {
	item, ok := d.Current()
	if !ok {
		return false
	}

	delete(d.UnknownIDs, item.ID)
	if _, exists := d.KnownIDs[item.ID]; exists {
		return false
	}
	d.KnownIDs[item.ID] = struct{}{}
	return true
}

// MarkUnknown records the current card as not yet known.
func (d *FlashcardDeck) MarkUnknown() bool {
	item, ok := d.Current()
	if !ok {
		return false
	}

	delete(d.KnownIDs, item.ID)
	if _, exists := d.UnknownIDs[item.ID]; exists {
		return false
	}
	d.UnknownIDs[item.ID] = struct{}{}
	return true
}

// Restart rewinds the deck and forgets all classification.
func (d *FlashcardDeck) Restart() {
	d.CurrentIndex = 0
	d.IsFlipped = false
	d.KnownIDs = make(map[string]struct{})
	d.UnknownIDs = make(map[string]struct{})
}

// Progress returns the known share of the deck in percent, 0 for an empty deck.
func (d *FlashcardDeck) Progress() float64 {
	if len(d.Items) == 0 {
		return 0
	}
	return float64(len(d.KnownIDs)) / float64(len(d.Items)) * 100
}

// Complete reports whether every card in a non-empty deck is known.
func (d *FlashcardDeck) Complete() bool {
	return len(d.Items) > 0 && len(d.KnownIDs) >= len(d.Items)
}

// step applies the shared boundary rules of every sequential traversal.
func step(idx, length int, dir Direction) (int, bool) {
	switch dir {
	case DirectionNext:
		if idx >= length-1 {
			return idx, false
		}
		return idx + 1, true
	case DirectionPrevious:
		if idx <= 0 {
			return idx, false
		}
		return idx - 1, true
	default:
		return idx, false
	}
}
