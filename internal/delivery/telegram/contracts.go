package telegram

import (
	"context"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID string, chatID int64, username string) error
}

type ProgressService interface {
	Summary(ctx context.Context, userID string) (*service.ProgressSummary, error)
}

type StreakService interface {
	Touch(ctx context.Context, userID string) (entities.StreakUpdate, error)
}

type VocabularyService interface {
	List(ctx context.Context, userID string) ([]*entities.VocabularyItem, error)
	ListByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error)
	Categories(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, source, target, category string) (*entities.VocabularyItem, error)
	Edit(ctx context.Context, userID, itemID string, edit entities.ItemEdit) (*entities.VocabularyItem, error)
	Delete(ctx context.Context, userID, itemID string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID string) error
}

// Sessions hands out the live study sessions of a user.
type Sessions interface {
	Quiz(userID string) *service.QuizSession
	Flashcards(userID string) *service.FlashcardSession
	Learn(userID string) (session *service.LearnSession, created bool)
}
