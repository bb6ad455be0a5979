package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/config"
	"github.com/aliskhannn/vokabel-trainer/internal/logger"
)

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "trainer",
		Short: "Vocabulary trainer with quizzes, flashcards and word review",
		Long: `Trainer runs a Telegram bot for learning German vocabulary.
It offers multiple choice quizzes, flashcard decks and a word-by-word
review that remembers where you stopped.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			l, err := logger.New(cfg)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newImportCmd(a),
	)

	return root
}
