package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// DefaultLearnDebounce is the quiet period before a review position is saved.
const DefaultLearnDebounce = 500 * time.Millisecond

const positionWriteTimeout = 5 * time.Second

// LearnSnapshot is a read-only view of a review session.
type LearnSnapshot struct {
	Tier            entities.Tier
	Item            *entities.VocabularyItem // nil for an empty word set
	Index           int
	Total           int
	ShowTranslation bool
}

// LearnSession walks a word set item by item and remembers where the
// user stopped.
type LearnSession struct {
	mu sync.Mutex

	userID  string
	cursor  *entities.ReviewCursor
	resumed bool

	words     WordRepository
	progress  ProgressStore
	debouncer *Debouncer
	activity  ActivityTracker // optional
	logger    *zap.Logger
}

// NewLearnSession creates a review session. A zero debounce uses DefaultLearnDebounce.
func NewLearnSession(userID string, stores Stores, debounce time.Duration, logger *zap.Logger) *LearnSession {
	if debounce <= 0 {
		debounce = DefaultLearnDebounce
	}

	return &LearnSession{
		userID:    userID,
		cursor:    entities.NewReviewCursor(entities.TierAll, nil, 0),
		words:     stores.Words,
		progress:  stores.Progress,
		debouncer: NewDebouncer(debounce),
		logger:    logger,
	}
}

// Resume restores the saved position, or starts at the first of all
// shared words when there is none yet.
func (s *LearnSession) Resume(ctx context.Context) error {
	pos, err := s.progress.ReadPosition(ctx, s.userID)
	switch {
	case errors.Is(err, entities.ErrPositionNotFound):
		pos = entities.DefaultPosition(s.userID)
		if err := s.progress.WritePosition(ctx, pos); err != nil {
			s.logger.Error("failed to save default review position",
				zap.String("user_id", s.userID),
				zap.Error(err),
			)
		}
	case err != nil:
		return &RepositoryError{Op: "read review position", Err: err}
	}

	if _, err := entities.ParseTier(string(pos.Tier)); err != nil {
		s.logger.Warn("saved review position has an unknown tier",
			zap.String("user_id", s.userID),
			zap.String("tier", string(pos.Tier)),
		)
		pos = entities.DefaultPosition(s.userID)
	}

	items, err := loadWordSet(ctx, s.words, s.userID, pos.Tier)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cursor = entities.NewReviewCursor(pos.Tier, items, pos.Index)
	s.resumed = true
	s.mu.Unlock()

	recordActivity(ctx, s.activity, s.logger, s.userID)
	return nil
}

// Resumed reports whether the saved position has been restored.
func (s *LearnSession) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}

// Next moves to the following word.
func (s *LearnSession) Next() bool {
	return s.advance(entities.DirectionNext)
}

// Previous moves to the preceding word.
func (s *LearnSession) Previous() bool {
	return s.advance(entities.DirectionPrevious)
}

func (s *LearnSession) advance(dir entities.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cursor.Advance(dir) {
		return false
	}

	s.schedulePositionLocked()
	return true
}

// ChangeTier loads another word set and starts it from the beginning.
func (s *LearnSession) ChangeTier(ctx context.Context, tier entities.Tier) error {
	if _, err := entities.ParseTier(string(tier)); err != nil {
		return err
	}

	items, err := loadWordSet(ctx, s.words, s.userID, tier)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cursor = entities.NewReviewCursor(tier, items, 0)
	s.resumed = true
	s.schedulePositionLocked()
	s.mu.Unlock()

	recordActivity(ctx, s.activity, s.logger, s.userID)
	return nil
}

// Reload fetches the current word set again and keeps the position,
// clamped to the new set.
func (s *LearnSession) Reload(ctx context.Context) error {
	s.mu.Lock()
	tier := s.cursor.Tier
	s.mu.Unlock()

	items, err := loadWordSet(ctx, s.words, s.userID, tier)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor.Tier != tier {
		// ChangeTier ran meanwhile and loaded fresh words already.
		return nil
	}

	index := s.cursor.Index
	show := s.cursor.ShowTranslation
	s.cursor = entities.NewReviewCursor(tier, items, index)
	s.cursor.ShowTranslation = show
	if s.cursor.Index != index {
		s.schedulePositionLocked()
	}
	return nil
}

// ToggleTranslation shows or hides the translation of the current word.
func (s *LearnSession) ToggleTranslation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.ShowTranslation = !s.cursor.ShowTranslation
}

// Flush writes a pending position immediately.
func (s *LearnSession) Flush() {
	s.debouncer.Flush()
}

// Close flushes the pending position and stops further writes.
func (s *LearnSession) Close() {
	s.debouncer.Stop()
}

// Snapshot returns a copy of the session state.
func (s *LearnSession) Snapshot() LearnSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := LearnSnapshot{
		Tier:            s.cursor.Tier,
		Index:           s.cursor.Index,
		Total:           len(s.cursor.Items),
		ShowTranslation: s.cursor.ShowTranslation,
	}

	if item, ok := s.cursor.Current(); ok {
		it := *item
		snap.Item = &it
	}

	return snap
}

// schedulePositionLocked captures the position now and saves it after the
// quiet period. Rapid moves collapse into one write of the last position.
func (s *LearnSession) schedulePositionLocked() {
	pos := s.cursor.Position(s.userID)

	s.debouncer.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), positionWriteTimeout)
		defer cancel()

		if err := s.progress.WritePosition(ctx, pos); err != nil {
			s.logger.Error("failed to save review position",
				zap.String("user_id", pos.UserID),
				zap.String("tier", string(pos.Tier)),
				zap.Int("index", pos.Index),
				zap.Error(err),
			)
		}
	})
}
