package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// VocabularyService manages the personal words of a user.
// Every mutation is scoped to the owner; foreign or missing items
// fail with entities.ErrNotFoundOrUnauthorized and change nothing.
// A successful mutation reloads the user's live personal sessions.
type VocabularyService struct {
	words    WordRepository
	sessions PersonalSessions // nil outside the bot
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string
}

func NewVocabularyService(words WordRepository, sessions PersonalSessions, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		words:    words,
		sessions: sessions,
		logger:   logger,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// List returns the personal words of a user.
func (s *VocabularyService) List(ctx context.Context, userID string) ([]*entities.VocabularyItem, error) {
	items, err := s.words.FetchOwnedBy(ctx, userID)
	if err != nil {
		return nil, &RepositoryError{Op: "list personal words", Err: err}
	}
	return items, nil
}

// ListByCategory returns the personal words of a user in one category.
func (s *VocabularyService) ListByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error) {
	items, err := s.words.FetchOwnedByCategory(ctx, userID, strings.TrimSpace(category))
	if err != nil {
		return nil, &RepositoryError{Op: "list personal words by category", Err: err}
	}
	return items, nil
}

// Categories returns the distinct categories of a user's words, in first-seen order.
func (s *VocabularyService) Categories(ctx context.Context, userID string) ([]string, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := lo.Uniq(lo.FilterMap(items, func(item *entities.VocabularyItem, _ int) (string, bool) {
		return item.Category, item.Category != ""
	}))

	return categories, nil
}

// Add creates a personal word for the user.
func (s *VocabularyService) Add(ctx context.Context, userID, source, target, category string) (*entities.VocabularyItem, error) {
	item, err := s.add(ctx, userID, source, target, category)
	if err != nil {
		return nil, err
	}

	s.reload(ctx, userID)
	return item, nil
}

func (s *VocabularyService) add(ctx context.Context, userID, source, target, category string) (*entities.VocabularyItem, error) {
	item, err := entities.NewPersonalItem(s.newID(), userID, source, target, category, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.words.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create personal word: %w", err)
	}

	s.logger.Debug("personal word added",
		zap.String("user_id", userID),
		zap.String("item_id", item.ID),
	)

	return item, nil
}

// AddMany creates several personal words and reports how many were stored.
// Rows with empty text are skipped.
func (s *VocabularyService) AddMany(ctx context.Context, userID string, edits []entities.ItemEdit) (int, error) {
	added := 0
	defer func() {
		if added > 0 {
			s.reload(ctx, userID)
		}
	}()

	for _, edit := range edits {
		if _, err := s.add(ctx, userID, edit.SourceText, edit.TargetText, edit.Category); err != nil {
			if errors.Is(err, entities.ErrEmptyText) {
				continue
			}
			return added, err
		}
		added++
	}

	return added, nil
}

// Edit changes the text of a word the user owns.
func (s *VocabularyService) Edit(ctx context.Context, userID, itemID string, edit entities.ItemEdit) (*entities.VocabularyItem, error) {
	item, err := s.find(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.ApplyEdit(edit, s.clock()); err != nil {
		return nil, err
	}

	if err := s.words.Update(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("update personal word: %w", err)
	}

	s.reload(ctx, userID)
	return item, nil
}

// Delete removes a word the user owns.
func (s *VocabularyService) Delete(ctx context.Context, userID, itemID string) error {
	if err := s.words.Delete(ctx, userID, itemID); err != nil {
		return fmt.Errorf("delete personal word: %w", err)
	}

	s.reload(ctx, userID)
	return nil
}

// DeleteAll removes every personal word of the user.
func (s *VocabularyService) DeleteAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.words.DeleteAllOwned(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all personal words: %w", err)
	}

	s.logger.Info("personal words deleted",
		zap.String("user_id", userID),
		zap.Int64("count", n),
	)

	if n > 0 {
		s.reload(ctx, userID)
	}
	return n, nil
}

func (s *VocabularyService) reload(ctx context.Context, userID string) {
	if s.sessions != nil {
		s.sessions.ReloadPersonal(ctx, userID)
	}
}

func (s *VocabularyService) find(ctx context.Context, userID, itemID string) (*entities.VocabularyItem, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, ok := lo.Find(items, func(it *entities.VocabularyItem) bool { return it.ID == itemID })
	if !ok || !item.IsOwnedBy(userID) {
		return nil, entities.ErrNotFoundOrUnauthorized
	}

	return item, nil
}
