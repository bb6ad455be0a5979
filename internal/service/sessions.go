package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/storage"
)

// SessionManager owns the live sessions of every user.
type SessionManager struct {
	quizzes    *storage.SessionStorage[*QuizSession]
	flashcards *storage.SessionStorage[*FlashcardSession]
	reviews    *storage.SessionStorage[*LearnSession]

	stores    Stores
	generator *OptionGenerator
	recorder  *ResultRecorder
	activity  ActivityTracker
	debounce  time.Duration
	logger    *zap.Logger
}

// NewSessionManager creates a manager building sessions on the given stores.
// Sessions report every start to activity, which may be nil.
func NewSessionManager(stores Stores, activity ActivityTracker, debounce time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		quizzes:    storage.NewSessionStorage[*QuizSession](),
		flashcards: storage.NewSessionStorage[*FlashcardSession](),
		reviews:    storage.NewSessionStorage[*LearnSession](),
		stores:     stores,
		generator:  NewOptionGenerator(),
		recorder:   NewResultRecorder(stores.Progress, stores.Learned, logger),
		activity:   activity,
		debounce:   debounce,
		logger:     logger,
	}
}

// Quiz returns the quiz session of a user.
func (m *SessionManager) Quiz(userID string) *QuizSession {
	s, _ := m.quizzes.GetOrCreate(userID, func() *QuizSession {
		s := NewQuizSession(userID, m.stores, m.generator, m.recorder, m.logger)
		s.activity = m.activity
		return s
	})
	return s
}

// Flashcards returns the flashcard session of a user.
func (m *SessionManager) Flashcards(userID string) *FlashcardSession {
	s, _ := m.flashcards.GetOrCreate(userID, func() *FlashcardSession {
		s := NewFlashcardSession(userID, m.stores.Words, m.logger)
		s.activity = m.activity
		return s
	})
	return s
}

// Learn returns the review session of a user. created reports whether the
// caller has to Resume it first.
func (m *SessionManager) Learn(userID string) (session *LearnSession, created bool) {
	return m.reviews.GetOrCreate(userID, func() *LearnSession {
		s := NewLearnSession(userID, m.stores, m.debounce, m.logger)
		s.activity = m.activity
		return s
	})
}

// ReloadPersonal refetches the words of every live session of the user that
// runs on the personal tier, so edits and deletions show up at once.
// Only running quizzes restart; idle ones load fresh words on their next
// Start and completed ones keep their result.
func (m *SessionManager) ReloadPersonal(ctx context.Context, userID string) {
	if quiz, ok := m.quizzes.Get(userID); ok {
		snap := quiz.Snapshot()
		if snap.Tier == entities.TierPersonal && snap.State == entities.QuizInProgress {
			m.logReload(userID, "quiz", quiz.Start(ctx, entities.TierPersonal))
		}
	}

	if cards, ok := m.flashcards.Get(userID); ok && cards.Snapshot().Tier == entities.TierPersonal {
		m.logReload(userID, "flashcards", cards.Start(ctx, entities.TierPersonal))
	}

	if learn, ok := m.reviews.Get(userID); ok && learn.Snapshot().Tier == entities.TierPersonal {
		m.logReload(userID, "learn", learn.Reload(ctx))
	}
}

func (m *SessionManager) logReload(userID, mode string, err error) {
	if err == nil {
		return
	}
	m.logger.Warn("failed to reload personal session",
		zap.String("user_id", userID),
		zap.String("mode", mode),
		zap.Error(err),
	)
}

// Evict drops every session of a user, saving a pending review position.
func (m *SessionManager) Evict(userID string) {
	m.quizzes.Delete(userID)
	m.flashcards.Delete(userID)
	if s, ok := m.reviews.Delete(userID); ok {
		s.Close()
	}
}

// Sweep drops sessions idle for longer than ttl and returns how many were removed.
func (m *SessionManager) Sweep(ttl time.Duration) int {
	quizzes := m.quizzes.Sweep(ttl)
	flashcards := m.flashcards.Sweep(ttl)
	reviews := m.reviews.Sweep(ttl)

	for _, s := range reviews {
		s.Close()
	}

	return len(quizzes) + len(flashcards) + len(reviews)
}

// Close flushes every review session. Used on shutdown.
func (m *SessionManager) Close() {
	for _, s := range m.reviews.Drain() {
		s.Close()
	}
	m.quizzes.Drain()
	m.flashcards.Drain()
}
