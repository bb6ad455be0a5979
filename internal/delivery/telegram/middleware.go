package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, userMessage(err))
			return nil
		}
		return nil
	}
}

// userMessage maps an error to the text shown to the user.
func userMessage(err error) string {
	var repoErr *service.RepositoryError
	var persistErr *service.PersistenceError

	switch {
	case errors.Is(err, entities.ErrInsufficientItems):
		return msgInsufficientItems
	case errors.Is(err, entities.ErrNotFoundOrUnauthorized):
		return msgNotFound
	case errors.Is(err, entities.ErrInvalidTier):
		return msgInvalidTier
	case errors.Is(err, entities.ErrSessionNotActive):
		return msgSessionNotActive
	case errors.Is(err, entities.ErrEmptyText):
		return msgEmptyText
	case errors.As(err, &persistErr):
		return msgSaveFailed
	case errors.As(err, &repoErr):
		return msgLoadFailed
	default:
		return msgInternalError
	}
}
