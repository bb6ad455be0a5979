package service

import (
	"context"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// WordRepository supplies vocabulary items.
type WordRepository interface {
	FetchByTier(ctx context.Context, tier entities.Tier) ([]*entities.VocabularyItem, error)
	FetchAll(ctx context.Context) ([]*entities.VocabularyItem, error)
	FetchOwnedBy(ctx context.Context, userID string) ([]*entities.VocabularyItem, error)
	FetchOwnedByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error)
	CountByTier(ctx context.Context, tier entities.Tier) (int, error)

	Create(ctx context.Context, item *entities.VocabularyItem) error
	Update(ctx context.Context, ownerID string, item *entities.VocabularyItem) error
	Delete(ctx context.Context, ownerID, itemID string) error
	DeleteAllOwned(ctx context.Context, ownerID string) (int64, error)
	ReplaceShared(ctx context.Context, items []*entities.VocabularyItem) error
}

// LearnedRepository stores learned records.
type LearnedRepository interface {
	RecordLearned(ctx context.Context, rec *entities.LearnedRecord) error
	CountLearned(ctx context.Context, userID string, tier entities.Tier) (int, error)
}

// ProgressStore persists per-user counters and the review resume pointer.
type ProgressStore interface {
	ReadProgress(ctx context.Context, userID string) (*entities.UserProgress, error)
	WriteProgress(ctx context.Context, userID string, update entities.ProgressUpdate) error
	ReadPosition(ctx context.Context, userID string) (*entities.Position, error)
	WritePosition(ctx context.Context, pos *entities.Position) error
}

// UserRepository registers learners.
type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// ActivityTracker counts a study session towards the daily streak.
// Touch must be idempotent within a day.
type ActivityTracker interface {
	Touch(ctx context.Context, userID string) (entities.StreakUpdate, error)
}

// PersonalSessions reloads the live sessions running on a user's own words.
type PersonalSessions interface {
	ReloadPersonal(ctx context.Context, userID string)
}

// UserResetter wipes everything a user accumulated.
type UserResetter interface {
	ResetUser(ctx context.Context, userID string) error
}

// Stores bundles the collaborators a session engine reads from and writes to.
// It is passed explicitly to every engine instead of living in a global.
type Stores struct {
	Words    WordRepository
	Learned  LearnedRepository
	Progress ProgressStore
}
