package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

// callbackView is what a callback turns the pressed message into.
type callbackView struct {
	text   string
	kb     *tgbotapi.InlineKeyboardMarkup
	notice string // short toast shown on the button press
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	userID := entities.TelegramUserID(cb.From.ID)
	data := decodeCallback(cb.Data)

	var (
		view callbackView
		err  error
	)

	switch data.Action {
	case actionQuiz:
		view, err = h.handleQuizCallback(ctx, userID, data)
	case actionCards:
		view, err = h.handleCardsCallback(ctx, userID, data)
	case actionLearn:
		view, err = h.handleLearnCallback(ctx, userID, data)
	case actionTier:
		view, err = h.handleTierCallback(ctx, userID, data)
	case actionWords:
		view, err = h.handleWordsCallback(ctx, userID, data)
	case actionProgress:
		view, err = h.handleProgressCallback(ctx, userID)
	case actionReset:
		view, err = h.handleResetCallback(ctx, userID, data)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	if err != nil {
		h.logger.Error("callback failed",
			zap.String("user_id", userID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb, userMessage(err))
		return
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, view.text)
	edit.ReplyMarkup = view.kb

	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		h.logger.Error("failed to edit telegram message", zap.Error(err))
	}

	// Remove the user's "clock".
	h.answerCallback(cb, view.notice)
}

func (h *Handler) handleQuizCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	quiz := h.sessions.Quiz(userID)

	switch data.param(0) {
	case quizAnswer:
		qIdx, err1 := strconv.Atoi(data.param(1))
		optIdx, err2 := strconv.Atoi(data.param(2))
		if err1 != nil || err2 != nil {
			return callbackView{}, fmt.Errorf("parse quiz answer %q: %w", data.Raw, errBadArguments)
		}

		snap := quiz.Snapshot()
		if snap.Question == nil || snap.Index != qIdx || optIdx < 0 || optIdx >= len(snap.Question.Options) {
			return callbackView{}, entities.ErrSessionNotActive
		}

		outcome, err := quiz.Answer(ctx, snap.Question.Options[optIdx])
		if err != nil {
			return callbackView{}, err
		}

		feedback := renderAnswerFeedback(outcome)
		if outcome.Completed {
			text, kb := renderQuizResult(snap.Tier, outcome.Result, feedback, outcome.PersistErr != nil)
			return callbackView{text: text, kb: kb}, nil
		}

		text, kb := renderQuizQuestion(quiz.Snapshot(), feedback)
		return callbackView{text: text, kb: kb}, nil

	case quizRestart:
		err := quiz.Restart()
		if errors.Is(err, entities.ErrSessionNotActive) {
			// The session was swept, load the words again.
			err = quiz.Start(ctx, quiz.Tier())
		}
		if err != nil {
			return callbackView{}, err
		}

		text, kb := renderQuizQuestion(quiz.Snapshot(), "")
		return callbackView{text: text, kb: kb}, nil
	}

	return callbackView{}, fmt.Errorf("quiz callback %q: %w", data.Raw, errBadArguments)
}

func (h *Handler) handleCardsCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	cards := h.sessions.Flashcards(userID)
	var notice string

	switch data.param(0) {
	case cardsFlip:
		cards.Flip()
	case cardsPrev:
		cards.Previous()
	case cardsNext:
		cards.Next()
	case cardsUnknown:
		cards.MarkUnknown()
	case cardsRestart:
		cards.Restart()
	case cardsKnown:
		outcome, err := cards.MarkKnown(ctx)
		if err != nil {
			return callbackView{}, err
		}
		if outcome.Advanced {
			notice = fmt.Sprintf("🎉 Level geschafft! Weiter mit %s.", tierLabel(outcome.Tier))
		}
	default:
		return callbackView{}, fmt.Errorf("cards callback %q: %w", data.Raw, errBadArguments)
	}

	var header string
	if notice != "" {
		header = bold(notice)
	}

	text, kb := renderFlashcard(cards.Snapshot(), header)
	return callbackView{text: text, kb: kb, notice: notice}, nil
}

func (h *Handler) handleLearnCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	learn, err := h.learnSession(ctx, userID)
	if err != nil {
		return callbackView{}, err
	}

	switch data.param(0) {
	case learnPrev:
		learn.Previous()
	case learnNext:
		learn.Next()
	case learnTranslate:
		learn.ToggleTranslation()
	default:
		return callbackView{}, fmt.Errorf("learn callback %q: %w", data.Raw, errBadArguments)
	}

	text, kb := renderLearn(learn.Snapshot())
	return callbackView{text: text, kb: kb}, nil
}

// handleTierCallback shows the tier picker of a mode, or switches the
// mode to the picked tier.
func (h *Handler) handleTierCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	mode := data.param(0)
	raw := data.param(1)

	if raw == "" {
		var current entities.Tier
		switch mode {
		case modeQuiz:
			current = h.sessions.Quiz(userID).Tier()
		case modeCards:
			current = h.sessions.Flashcards(userID).Snapshot().Tier
		case modeLearn:
			learn, err := h.learnSession(ctx, userID)
			if err != nil {
				return callbackView{}, err
			}
			current = learn.Snapshot().Tier
		default:
			return callbackView{}, fmt.Errorf("tier callback %q: %w", data.Raw, errBadArguments)
		}

		kb := buildTierKeyboard(mode, current)
		return callbackView{text: md(msgChooseTier), kb: &kb}, nil
	}

	tier, err := entities.ParseTier(raw)
	if err != nil {
		return callbackView{}, err
	}

	switch mode {
	case modeQuiz:
		quiz := h.sessions.Quiz(userID)
		if err := quiz.ChangeDifficulty(ctx, tier); err != nil {
			return callbackView{}, err
		}
		text, kb := renderQuizQuestion(quiz.Snapshot(), "")
		return callbackView{text: text, kb: kb}, nil

	case modeCards:
		cards := h.sessions.Flashcards(userID)
		if err := cards.ChangeTier(ctx, tier); err != nil {
			return callbackView{}, err
		}
		text, kb := renderFlashcard(cards.Snapshot(), "")
		return callbackView{text: text, kb: kb}, nil

	case modeLearn:
		learn, err := h.learnSession(ctx, userID)
		if err != nil {
			return callbackView{}, err
		}
		if err := learn.ChangeTier(ctx, tier); err != nil {
			return callbackView{}, err
		}
		text, kb := renderLearn(learn.Snapshot())
		return callbackView{text: text, kb: kb}, nil
	}

	return callbackView{}, fmt.Errorf("tier callback %q: %w", data.Raw, errBadArguments)
}

func (h *Handler) handleWordsCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	var notice string

	switch data.param(0) {
	case wordsDelete:
		if err := h.vocabularyService.Delete(ctx, userID, data.param(1)); err != nil {
			return callbackView{}, err
		}
		notice = msgWordDeleted

	case wordsCategory:
		category, err := h.categoryAt(ctx, userID, data.param(1))
		if err != nil {
			return callbackView{}, err
		}
		text, kb, err := h.wordsView(ctx, userID, category)
		if err != nil {
			return callbackView{}, err
		}
		return callbackView{text: text, kb: kb}, nil

	case wordsClear:
		kb := buildClearWordsConfirmKeyboard()
		return callbackView{text: md("Alle eigenen Vokabeln löschen?"), kb: &kb}, nil

	case wordsClearYes:
		n, err := h.vocabularyService.DeleteAll(ctx, userID)
		if err != nil {
			return callbackView{}, err
		}
		return callbackView{text: md(fmt.Sprintf("🧹 %d Vokabel(n) gelöscht.", n))}, nil
	}

	text, kb, err := h.wordsView(ctx, userID, "")
	if err != nil {
		return callbackView{}, err
	}

	return callbackView{text: text, kb: kb, notice: notice}, nil
}

// categoryAt resolves the category index of a filter button. An index that
// no longer exists, after its last word was deleted, shows the full list.
func (h *Handler) categoryAt(ctx context.Context, userID, param string) (string, error) {
	idx, err := strconv.Atoi(param)
	if err != nil {
		return "", fmt.Errorf("category index %q: %w", param, errBadArguments)
	}

	categories, err := h.vocabularyService.Categories(ctx, userID)
	if err != nil {
		return "", err
	}

	if idx < 0 || idx >= len(categories) {
		return "", nil
	}
	return categories[idx], nil
}

func (h *Handler) handleProgressCallback(ctx context.Context, userID string) (callbackView, error) {
	summary, err := h.progressService.Summary(ctx, userID)
	if err != nil {
		return callbackView{}, err
	}

	text, kb := renderProgress(summary)
	return callbackView{text: text, kb: kb}, nil
}

func (h *Handler) handleResetCallback(ctx context.Context, userID string, data callbackData) (callbackView, error) {
	if data.param(0) != resetConfirm {
		return callbackView{text: md(msgResetCancel)}, nil
	}

	if err := h.resetService.ResetUser(ctx, userID); err != nil {
		return callbackView{}, err
	}

	return callbackView{text: md(msgResetDone)}, nil
}

// learnSession returns the review session of a user, restoring the saved
// position first if that has not happened yet.
func (h *Handler) learnSession(ctx context.Context, userID string) (*service.LearnSession, error) {
	learn, created := h.sessions.Learn(userID)
	if created || !learn.Resumed() {
		if err := learn.Resume(ctx); err != nil {
			return nil, err
		}
	}
	return learn, nil
}
