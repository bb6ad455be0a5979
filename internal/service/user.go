package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	progress   ProgressStore
}

func NewUserService(repository UserRepository, progress ProgressStore) *UserService {
	return &UserService{repository: repository, progress: progress}
}

// EnsureUser registers a user on first contact and creates their progress record.
func (s *UserService) EnsureUser(ctx context.Context, userID string, chatID int64, username string) error {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return nil
	}

	user := entities.NewUser(userID, chatID, username)
	if _, err := s.repository.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	// ReadProgress creates the default record.
	if _, err := s.progress.ReadProgress(ctx, userID); err != nil {
		return fmt.Errorf("init progress: %w", err)
	}

	return nil
}
