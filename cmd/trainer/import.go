package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/importer"
	"github.com/aliskhannn/vokabel-trainer/internal/logger"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		telegramID int64
		sheet      string
		startRow   int
	)

	cmd := &cobra.Command{
		Use:   "import [file.xlsx|file.csv]",
		Short: "Import personal words from a spreadsheet",
		Long: `Import reads word pairs from an Excel or CSV file and adds them to
the personal words of a user. Column A holds the German word, column B
the translation and column C an optional category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if telegramID == 0 {
				return fmt.Errorf("--user is required")
			}

			cfg := importer.DefaultConfig()
			cfg.SheetName = sheet
			if startRow > 0 {
				cfg.StartRow = startRow
			}

			res, err := importer.ReadFile(args[0], cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			b, err := openBackend(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer b.close()

			userID := entities.TelegramUserID(telegramID)
			if err := service.NewUserService(b.users, b.stores.Progress).EnsureUser(ctx, userID, 0, ""); err != nil {
				return err
			}

			vocabulary := service.NewVocabularyService(b.stores.Words, nil, logger.Named(a.logger, "vocabulary"))
			added, err := vocabulary.AddMany(ctx, userID, res.Words)
			if err != nil {
				return err
			}

			for _, e := range res.Errors {
				a.logger.Warn("row skipped", zap.String("reason", e))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d word(s), skipped %d row(s)\n", added, res.Skipped)
			return nil
		},
	}

	cmd.Flags().Int64Var(&telegramID, "user", 0, "Telegram user id that owns the words")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name, defaults to the first sheet")
	cmd.Flags().IntVar(&startRow, "start-row", 0, "first data row, defaults to 2")

	return cmd
}
