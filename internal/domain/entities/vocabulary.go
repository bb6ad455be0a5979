// Package entities contains domain entities used across the application.
package entities

import (
	"strings"
	"time"
)

// Tier is the difficulty or ownership category of a vocabulary item.
type Tier string

const (
	TierBeginner     Tier = "beginner"     // shared, entry level
	TierIntermediate Tier = "intermediate" // shared, middle level
	TierAdvanced     Tier = "advanced"     // shared, top level
	TierPersonal     Tier = "personal"     // words owned by a single user

	// TierAll selects every shared tier at once. It is only a selector
	// for the review engine and never stored on an item.
	TierAll Tier = "all"
)

// SessionTiers lists the tiers a quiz or flashcard session can run on, in display order.
var SessionTiers = []Tier{TierBeginner, TierIntermediate, TierAdvanced, TierPersonal}

// SharedTiers lists the tiers seeded for every user.
var SharedTiers = []Tier{TierBeginner, TierIntermediate, TierAdvanced}

// ParseTier converts user input into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced, TierPersonal, TierAll:
		return t, nil
	default:
		return "", ErrInvalidTier
	}
}

// IsShared reports whether the tier is one of the seeded, non-personal tiers.
func (t Tier) IsShared() bool {
	return t == TierBeginner || t == TierIntermediate || t == TierAdvanced
}

// Next returns the tier a finished deck advances to.
// Advanced and personal decks never advance.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierBeginner:
		return TierIntermediate, true
	case TierIntermediate:
		return TierAdvanced, true
	default:
		return t, false
	}
}

// VocabularyItem is a single word pair the user learns.
type VocabularyItem struct {
	ID           string    `json:"id"`       // unique identifier
	SourceText   string    `json:"german"`   // word in the language being learned from
	TargetText   string    `json:"english"`  // translation shown as the answer
	Tier         Tier      `json:"difficulty"`
	Category     string    `json:"category"`
	OwnerID      string    `json:"userId,omitempty"` // set only for personal items
	CreatedAt    time.Time `json:"-"`
	LastModified time.Time `json:"-"`
}

// NewPersonalItem creates a personal vocabulary item owned by the given user.
func NewPersonalItem(id, ownerID, sourceText, targetText, category string, now time.Time) (*VocabularyItem, error) {
	item := &VocabularyItem{
		ID:           id,
		OwnerID:      ownerID,
		Tier:         TierPersonal,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := item.ApplyEdit(ItemEdit{SourceText: sourceText, TargetText: targetText, Category: category}, now); err != nil {
		return nil, err
	}

	return item, nil
}

// ItemEdit carries the fields a user is allowed to change on an item.
type ItemEdit struct {
	SourceText string
	TargetText string
	Category   string
}

// ApplyEdit updates the editable fields and bumps LastModified.
func (v *VocabularyItem) ApplyEdit(edit ItemEdit, now time.Time) error {
	source := strings.TrimSpace(edit.SourceText)
	target := strings.TrimSpace(edit.TargetText)
	if source == "" || target == "" {
		return ErrEmptyText
	}

	v.SourceText = source
	v.TargetText = target
	v.Category = strings.TrimSpace(edit.Category)
	v.LastModified = now

	return nil
}

// IsOwnedBy reports whether the item belongs to the given user.
func (v *VocabularyItem) IsOwnedBy(userID string) bool {
	return v.OwnerID != "" && v.OwnerID == userID
}
