package telegram

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// handleProgress shows the profile page of a user.
func (h *Handler) handleProgress(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.progressService.Summary(ctx, userID)
		if err != nil {
			h.logger.Error("failed to load progress summary",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgProgressUnavailable))
		}

		text, kb := renderProgress(summary)
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
