package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vokabel-trainer/internal/delivery/telegram"
	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/logger"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Trainer starten"},
	{Command: "quiz", Description: "Quiz starten (z.B. /quiz intermediate)"},
	{Command: "cards", Description: "Vokabelkarten üben"},
	{Command: "learn", Description: "Vokabeln Wort für Wort lernen"},
	{Command: "words", Description: "Eigene Vokabeln anzeigen, optional nach Kategorie"},
	{Command: "add", Description: "Vokabel hinzufügen: /add Wort = Übersetzung"},
	{Command: "progress", Description: "Fortschritt anzeigen"},
	{Command: "reset", Description: "Fortschritt zurücksetzen"},
	{Command: "help", Description: "Hilfe"},
}

func newServeCmd(a *app) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireTelegram(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "log every Telegram API call")

	return cmd
}

func serve(ctx context.Context, a *app, debug bool) error {
	log := a.logger

	loc, err := entities.ParseLocation(a.cfg.Timezone)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, a.cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	seeder, err := newSeeder(a, b)
	if err != nil {
		return err
	}
	if _, err := seeder.EnsureSeeded(ctx); err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = debug

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	log.Info("authorized on account", zap.String("username", bot.Self.UserName))

	streak := service.NewStreakService(b.stores.Progress, loc, logger.Named(log, "streak"))
	sessions := service.NewSessionManager(b.stores, streak, a.cfg.Learn.Debounce, logger.Named(log, "sessions"))
	// Pending review positions are written before the store goes away.
	defer sessions.Close()

	janitor := service.NewJanitor(sessions, a.cfg.Session.IdleTTL, a.cfg.Session.SweepSchedule, logger.Named(log, "janitor"))

	handler := telegram.NewHandler(
		bot,
		logger.Named(log, "telegram"),
		service.NewUserService(b.users, b.stores.Progress),
		service.NewProgressService(b.stores),
		streak,
		service.NewVocabularyService(b.stores.Words, sessions, logger.Named(log, "vocabulary")),
		service.NewResetService(b.resetter, sessions, logger.Named(log, "reset")),
		sessions,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return janitor.Start(gctx) })
	g.Go(func() error { return handler.Run(gctx) })

	err = g.Wait()
	log.Info("shutdown signal received")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
