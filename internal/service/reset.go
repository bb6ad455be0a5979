package service

import (
	"context"

	"go.uber.org/zap"
)

type ResetService struct {
	resetter UserResetter
	sessions *SessionManager
	logger   *zap.Logger
}

func NewResetService(
	resetter UserResetter,
	sessions *SessionManager,
	logger *zap.Logger,
) *ResetService {
	return &ResetService{
		resetter: resetter,
		sessions: sessions,
		logger:   logger,
	}
}

// ResetUser drops the live sessions of a user and wipes their progress,
// learned words, review position and personal words.
func (s *ResetService) ResetUser(ctx context.Context, userID string) error {
	// Evict first so a pending review position cannot be written after the wipe.
	s.sessions.Evict(userID)

	if err := s.resetter.ResetUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user progress reset", zap.String("user_id", userID))
	return nil
}
