package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// QuizSnapshot is a read-only view of a quiz session for rendering.
type QuizSnapshot struct {
	State    entities.QuizState
	Tier     entities.Tier
	Question *entities.QuizQuestion // nil unless in progress
	Index    int
	Total    int
	Selected string
	Result   entities.SessionResult
}

// AnswerOutcome describes what a single answer did to the session.
type AnswerOutcome struct {
	Correct       bool
	CorrectAnswer string
	Completed     bool
	Result        *entities.SessionResult // set once the quiz is completed

	// PersistErr is the completion write failure, if any. The result above
	// is final regardless.
	PersistErr error
}

// QuizSession runs multiple choice quizzes for one user.
type QuizSession struct {
	mu sync.Mutex

	userID string
	tier   entities.Tier
	state  entities.QuizState
	words  []*entities.VocabularyItem
	run    *entities.QuizRun
	epoch  uint64 // bumped on every reset so stale loads are dropped

	stores    Stores
	generator *OptionGenerator
	recorder  *ResultRecorder
	activity  ActivityTracker // optional
	logger    *zap.Logger
}

// NewQuizSession creates an idle quiz session.
func NewQuizSession(
	userID string,
	stores Stores,
	generator *OptionGenerator,
	recorder *ResultRecorder,
	logger *zap.Logger,
) *QuizSession {
	return &QuizSession{
		userID:    userID,
		tier:      entities.TierBeginner,
		state:     entities.QuizIdle,
		stores:    stores,
		generator: generator,
		recorder:  recorder,
		logger:    logger,
	}
}

// Start loads the word set for tier and generates a fresh quiz.
// On failure the session falls back to idle.
func (s *QuizSession) Start(ctx context.Context, tier entities.Tier) error {
	if tier == entities.TierAll {
		return entities.ErrInvalidTier
	}

	s.mu.Lock()
	s.resetLocked(tier)
	s.state = entities.QuizGenerating
	epoch := s.epoch
	s.mu.Unlock()

	words, err := loadWordSet(ctx, s.stores.Words, s.userID, tier)

	started, err := s.applyLoad(epoch, tier, words, err)
	if started {
		recordActivity(ctx, s.activity, s.logger, s.userID)
	}
	return err
}

// applyLoad installs a finished word set load and generates the quiz.
// started is false when the load failed or a newer Start owns the session.
func (s *QuizSession) applyLoad(epoch uint64, tier entities.Tier, words []*entities.VocabularyItem, loadErr error) (started bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// A newer Start or ChangeDifficulty owns the session now.
		return false, nil
	}

	if loadErr != nil {
		s.state = entities.QuizIdle
		s.logger.Warn("failed to load quiz words",
			zap.String("user_id", s.userID),
			zap.String("tier", string(tier)),
			zap.Error(loadErr),
		)
		return false, loadErr
	}

	s.words = words
	if err := s.generateLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// ChangeDifficulty discards the current quiz and starts over on tier.
func (s *QuizSession) ChangeDifficulty(ctx context.Context, tier entities.Tier) error {
	if _, err := entities.ParseTier(string(tier)); err != nil || tier == entities.TierAll {
		return entities.ErrInvalidTier
	}

	s.mu.Lock()
	s.resetLocked(tier)
	s.mu.Unlock()

	return s.Start(ctx, tier)
}

// Restart regenerates the quiz over the word set already loaded.
func (s *QuizSession) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.words == nil {
		return entities.ErrSessionNotActive
	}

	s.epoch++
	s.run = nil
	return s.generateLocked()
}

// SelectOption stores a pending selection for the current question.
func (s *QuizSession) SelectOption(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.QuizInProgress {
		return entities.ErrSessionNotActive
	}

	return s.run.Select(option)
}

// SubmitAnswer answers the current question with the pending selection.
func (s *QuizSession) SubmitAnswer(ctx context.Context) (*AnswerOutcome, error) {
	s.mu.Lock()
	if s.state != entities.QuizInProgress {
		s.mu.Unlock()
		return nil, entities.ErrSessionNotActive
	}
	selected := s.run.Selected
	s.mu.Unlock()

	if selected == "" {
		return nil, entities.ErrNoSelection
	}

	return s.Answer(ctx, selected)
}

// Answer grades option against the current question and advances.
// Answering the last question finalizes the result and persists it.
func (s *QuizSession) Answer(ctx context.Context, option string) (*AnswerOutcome, error) {
	s.mu.Lock()

	if s.state != entities.QuizInProgress {
		s.mu.Unlock()
		return nil, entities.ErrSessionNotActive
	}

	current, _ := s.run.Current()
	expected := current.CorrectAnswer

	correct, done, err := s.run.Answer(option)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("answer quiz question: %w", err)
	}

	outcome := &AnswerOutcome{
		Correct:       correct,
		CorrectAnswer: expected,
		Completed:     done,
	}

	if !done {
		s.mu.Unlock()
		return outcome, nil
	}

	s.state = entities.QuizCompleted
	result := s.run.Result.Clone()
	tier := s.tier
	s.mu.Unlock()

	outcome.Result = &result
	outcome.PersistErr = s.recorder.CompleteSession(ctx, s.userID, tier, &result)
	recordActivity(context.WithoutCancel(ctx), s.activity, s.logger, s.userID)

	return outcome, nil
}

// Snapshot returns a copy of the session state.
func (s *QuizSession) Snapshot() QuizSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := QuizSnapshot{
		State: s.state,
		Tier:  s.tier,
	}

	if s.run == nil {
		return snap
	}

	snap.Index = s.run.Index
	snap.Total = len(s.run.Questions)
	snap.Selected = s.run.Selected
	snap.Result = s.run.Result.Clone()

	if q, ok := s.run.Current(); ok && s.state == entities.QuizInProgress {
		question := *q
		question.Options = append([]string(nil), q.Options...)
		snap.Question = &question
	}

	return snap
}

// Tier returns the selected difficulty.
func (s *QuizSession) Tier() entities.Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

func (s *QuizSession) resetLocked(tier entities.Tier) {
	s.epoch++
	s.tier = tier
	s.state = entities.QuizIdle
	s.words = nil
	s.run = nil
}

func (s *QuizSession) generateLocked() error {
	questions, err := s.generator.Generate(s.words)
	if err != nil {
		s.state = entities.QuizIdle
		if errors.Is(err, entities.ErrInsufficientItems) {
			return err
		}
		return fmt.Errorf("generate quiz: %w", err)
	}

	s.run = entities.NewQuizRun(questions)
	s.state = entities.QuizInProgress
	return nil
}
