package entities

// Position is the persisted resume pointer of the review engine.
type Position struct {
	UserID string
	Tier   Tier
	Index  int
}

// DefaultPosition is used for users who never reviewed a word.
func DefaultPosition(userID string) *Position {
	return &Position{UserID: userID, Tier: TierAll, Index: 0}
}

// ReviewCursor walks a word set one item at a time.
type ReviewCursor struct {
	Tier            Tier
	Items           []*VocabularyItem
	Index           int
	ShowTranslation bool
}

// NewReviewCursor places the cursor on index, falling back to the first item
// when the set shrank since the position was saved.
func NewReviewCursor(tier Tier, items []*VocabularyItem, index int) *ReviewCursor {
	if index < 0 || index >= len(items) {
		index = 0
	}
	return &ReviewCursor{Tier: tier, Items: items, Index: index}
}

// Current returns the item under the cursor.
func (c *ReviewCursor) Current() (*VocabularyItem, bool) {
	if len(c.Items) == 0 {
		return nil, false
	}
	return c.Items[c.Index], true
}

// Advance moves the cursor with the same boundary rules as flashcards.
func (c *ReviewCursor) Advance(dir Direction) bool {
	idx, moved := step(c.Index, len(c.Items), dir)
	if !moved {
		return false
	}

	c.Index = idx
	c.ShowTranslation = false
	return true
}

// Position returns the resume pointer for the cursor.
func (c *ReviewCursor) Position(userID string) *Position {
	return &Position{UserID: userID, Tier: c.Tier, Index: c.Index}
}
