package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// handleStart greets the user and counts today towards the streak.
func (h *Handler) handleStart(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		streak := 0
		update, err := h.streakService.Touch(ctx, userID)
		if err != nil {
			h.logger.Warn("failed to update streak",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			streak = update.Streak
		}

		return h.send(newMessage(chatID, welcomeMarkdownV2(streak)))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, welcomeMarkdownV2(0)))
	}
}

// handleQuiz starts a quiz on the given tier, or on the last one used.
func (h *Handler) handleQuiz(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz := h.sessions.Quiz(userID)

		tier, err := parseSessionTier(args, quiz.Tier())
		if err != nil {
			return h.sendTierPicker(chatID, modeQuiz, quiz.Tier())
		}

		if err := quiz.Start(ctx, tier); err != nil {
			return err
		}

		text, kb := renderQuizQuestion(quiz.Snapshot(), "")
		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

// handleCards opens a flashcard deck.
func (h *Handler) handleCards(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cards := h.sessions.Flashcards(userID)

		current := cards.Snapshot().Tier
		tier, err := parseSessionTier(args, current)
		if err != nil {
			return h.sendTierPicker(chatID, modeCards, current)
		}

		if err := cards.Start(ctx, tier); err != nil {
			return err
		}

		text, kb := renderFlashcard(cards.Snapshot(), "")
		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

// handleLearn continues the word review where the user left off.
func (h *Handler) handleLearn(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learn, err := h.learnSession(ctx, userID)
		if err != nil {
			return err
		}

		text, kb := renderLearn(learn.Snapshot())
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// handleWords lists the personal words of the user, or only those of the
// category given as argument.
func (h *Handler) handleWords(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.wordsView(ctx, userID, strings.TrimSpace(args))
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

// wordsView renders the word list with its keyboard. Numbers always refer
// to the full list, so /edit and /delete work from a filtered view too.
func (h *Handler) wordsView(ctx context.Context, userID, category string) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	all, err := h.vocabularyService.List(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	categories, err := h.vocabularyService.Categories(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	items := all
	if category != "" {
		items, err = h.vocabularyService.ListByCategory(ctx, userID, category)
		if err != nil {
			return "", nil, err
		}
	}

	positions := make(map[string]int, len(all))
	for i, item := range all {
		positions[item.ID] = i + 1
	}

	return formatWordList(items, positions, category), buildWordsKeyboard(items, categories, category), nil
}

func (h *Handler) handleAdd(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		edit, err := parseWordArgs(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseAdd))
		}

		item, err := h.vocabularyService.Add(ctx, userID, edit.SourceText, edit.TargetText, edit.Category)
		if err != nil {
			return err
		}

		h.logger.Info("word added",
			zap.String("user_id", userID),
			zap.String("item_id", item.ID),
		)

		return h.send(newMessage(chatID, md(msgWordAdded)+"\n\n"+formatWord(1, item)))
	}
}

// handleEdit replaces the N-th word of the /words list.
func (h *Handler) handleEdit(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		idx, rest, err := parseIndexArg(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseEdit))
		}

		edit, err := parseWordArgs(rest)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseEdit))
		}

		item, err := h.wordAt(ctx, userID, idx)
		if err != nil {
			return err
		}

		updated, err := h.vocabularyService.Edit(ctx, userID, item.ID, edit)
		if err != nil {
			return err
		}

		return h.send(newMessage(chatID, md(msgWordUpdated)+"\n\n"+formatWord(idx+1, updated)))
	}
}

// handleDelete removes the N-th word of the /words list.
func (h *Handler) handleDelete(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		idx, _, err := parseIndexArg(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseDelete))
		}

		item, err := h.wordAt(ctx, userID, idx)
		if err != nil {
			return err
		}

		if err := h.vocabularyService.Delete(ctx, userID, item.ID); err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, fmt.Sprintf("%s (%s)", msgWordDeleted, item.SourceText)))
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

// wordAt resolves a 1-based list position shown by /words.
func (h *Handler) wordAt(ctx context.Context, userID string, idx int) (*entities.VocabularyItem, error) {
	items, err := h.vocabularyService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if idx < 0 || idx >= len(items) {
		return nil, entities.ErrNotFoundOrUnauthorized
	}

	return items[idx], nil
}

// sendTierPicker asks for a tier before starting a session mode.
func (h *Handler) sendTierPicker(chatID int64, mode string, current entities.Tier) error {
	msg := newPlainMessage(chatID, msgChooseTier)
	msg.ReplyMarkup = buildTierKeyboard(mode, current)
	return h.send(msg)
}

// isNotModified reports the error Telegram returns for an edit that
// would not change the message.
func isNotModified(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return strings.Contains(tgErr.Message, "message is not modified")
	}
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
