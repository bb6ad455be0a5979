package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

type Handler struct {
	bot               *tgbotapi.BotAPI
	logger            *zap.Logger
	userService       UserService
	progressService   ProgressService
	streakService     StreakService
	vocabularyService VocabularyService
	resetService      ResetService
	sessions          Sessions
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	userService UserService,
	progressService ProgressService,
	streakService StreakService,
	vocabularyService VocabularyService,
	resetService ResetService,
	sessions Sessions,
) *Handler {
	return &Handler{
		bot:               bot,
		logger:            logger,
		userService:       userService,
		progressService:   progressService,
		streakService:     streakService,
		vocabularyService: vocabularyService,
		resetService:      resetService,
		sessions:          sessions,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	userID := entities.TelegramUserID(from.ID)
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, userID, chatID, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart(userID)
	case "help":
		fn = h.handleHelp()
	case "quiz":
		fn = h.handleQuiz(userID, args)
	case "cards":
		fn = h.handleCards(userID, args)
	case "learn":
		fn = h.handleLearn(userID)
	case "progress":
		fn = h.handleProgress(userID)
	case "words":
		fn = h.handleWords(userID, args)
	case "add":
		fn = h.handleAdd(userID, args)
	case "edit":
		fn = h.handleEdit(userID, args)
	case "delete":
		fn = h.handleDelete(userID, args)
	case "reset":
		fn = h.handleReset()
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator of a pressed button.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}
}
