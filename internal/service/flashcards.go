package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// FlashcardSnapshot is a read-only view of a flashcard session.
type FlashcardSnapshot struct {
	Tier      entities.Tier
	Card      *entities.VocabularyItem // nil for an empty deck
	Index     int
	Total     int
	Flipped   bool
	Known     int
	Unknown   int
	Progress  float64
	IsKnown   bool // current card is in the known set
	IsUnknown bool // current card is in the unknown set
}

// MarkOutcome tells the caller what a classification did.
type MarkOutcome struct {
	Advanced bool          // the deck was completed and replaced by the next tier
	Tier     entities.Tier // tier of the deck after the mark
}

// FlashcardSession runs flashcard decks for one user.
type FlashcardSession struct {
	mu sync.Mutex

	userID string
	tier   entities.Tier
	deck   *entities.FlashcardDeck

	words    WordRepository
	activity ActivityTracker // optional
	logger   *zap.Logger
}

// NewFlashcardSession creates a session with an empty beginner deck.
func NewFlashcardSession(userID string, words WordRepository, logger *zap.Logger) *FlashcardSession {
	return &FlashcardSession{
		userID: userID,
		tier:   entities.TierBeginner,
		deck:   entities.NewFlashcardDeck(nil),
		words:  words,
		logger: logger,
	}
}

// Start loads the deck for tier. The previous deck is kept on failure.
func (s *FlashcardSession) Start(ctx context.Context, tier entities.Tier) error {
	if tier == entities.TierAll {
		return entities.ErrInvalidTier
	}

	items, err := loadWordSet(ctx, s.words, s.userID, tier)
	if err != nil {
		s.logger.Warn("failed to load flashcards",
			zap.String("user_id", s.userID),
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		return err
	}

	s.mu.Lock()
	s.tier = tier
	s.deck = entities.NewFlashcardDeck(items)
	s.mu.Unlock()

	recordActivity(ctx, s.activity, s.logger, s.userID)
	return nil
}

// ChangeTier switches to another tier with a fresh deck.
func (s *FlashcardSession) ChangeTier(ctx context.Context, tier entities.Tier) error {
	return s.Start(ctx, tier)
}

// Flip toggles the current card.
func (s *FlashcardSession) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck.Flip()
}

// Next moves to the following card.
func (s *FlashcardSession) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Navigate(entities.DirectionNext)
}

// Previous moves to the preceding card.
func (s *FlashcardSession) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Navigate(entities.DirectionPrevious)
}

// MarkKnown classifies the current card as known and moves on.
//
// When this completes a beginner or intermediate deck, the deck for the next
// tier is loaded instead of moving on. The advance is evaluated only when the
// card was newly added to the known set. If the next deck cannot be loaded the
// finished deck stays in place, the cursor moves on and the error is returned.
func (s *FlashcardSession) MarkKnown(ctx context.Context) (MarkOutcome, error) {
	s.mu.Lock()

	added := s.deck.MarkKnown()
	tier := s.tier

	if !added || !s.deck.Complete() {
		s.deck.Navigate(entities.DirectionNext)
		s.mu.Unlock()
		return MarkOutcome{Tier: tier}, nil
	}

	next, ok := tier.Next()
	if !ok {
		s.deck.Navigate(entities.DirectionNext)
		s.mu.Unlock()
		return MarkOutcome{Tier: tier}, nil
	}
	deck := s.deck
	s.mu.Unlock()

	items, err := loadWordSet(ctx, s.words, s.userID, next)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deck != deck {
		// The user switched decks while the next tier was loading.
		return MarkOutcome{Tier: s.tier}, nil
	}

	if err != nil {
		s.deck.Navigate(entities.DirectionNext)
		s.logger.Warn("failed to advance flashcard tier",
			zap.String("user_id", s.userID),
			zap.String("from", string(tier)),
			zap.String("to", string(next)),
			zap.Error(err),
		)
		return MarkOutcome{Tier: tier}, err
	}

	s.logger.Info("flashcard tier completed",
		zap.String("user_id", s.userID),
		zap.String("from", string(tier)),
		zap.String("to", string(next)),
	)

	s.tier = next
	s.deck = entities.NewFlashcardDeck(items)
	return MarkOutcome{Advanced: true, Tier: next}, nil
}

// MarkUnknown classifies the current card as not known and moves on.
func (s *FlashcardSession) MarkUnknown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deck.MarkUnknown()
	s.deck.Navigate(entities.DirectionNext)
}

// Restart rewinds the deck and clears all classification.
func (s *FlashcardSession) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck.Restart()
}

// Progress returns the known share of the deck in percent.
func (s *FlashcardSession) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Progress()
}

// Snapshot returns a copy of the session state.
func (s *FlashcardSession) Snapshot() FlashcardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := FlashcardSnapshot{
		Tier:     s.tier,
		Index:    s.deck.CurrentIndex,
		Total:    len(s.deck.Items),
		Flipped:  s.deck.IsFlipped,
		Known:    len(s.deck.KnownIDs),
		Unknown:  len(s.deck.UnknownIDs),
		Progress: s.deck.Progress(),
	}

	if card, ok := s.deck.Current(); ok {
		c := *card
		snap.Card = &c
		_, snap.IsKnown = s.deck.KnownIDs[card.ID]
		_, snap.IsUnknown = s.deck.UnknownIDs[card.ID]
	}

	return snap
}
