package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/logger"
	"github.com/aliskhannn/vokabel-trainer/internal/repository"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

func newSeedCmd(a *app) *cobra.Command {
	var reload bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the shared vocabulary into the store",
		Long: `Seed loads the beginner, intermediate and advanced words from the
vocabulary file. Without --reload nothing happens when words are present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			b, err := openBackend(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer b.close()

			seeder, err := newSeeder(a, b)
			if err != nil {
				return err
			}

			if reload {
				if err := seeder.Reload(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Shared vocabulary reloaded")
				return nil
			}

			seeded, err := seeder.EnsureSeeded(ctx)
			if err != nil {
				return err
			}

			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Shared vocabulary seeded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Shared vocabulary already present, use --reload to replace it")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reload, "reload", false, "replace the shared vocabulary even if present")

	return cmd
}

func newSeeder(a *app, b *backend) (*service.SeedService, error) {
	seed, err := repository.LoadVocabularySeed(a.cfg.VocabularySeedPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary seed: %w", err)
	}

	a.logger.Debug("vocabulary seed loaded",
		zap.String("path", a.cfg.VocabularySeedPath),
		zap.Int("words", len(seed)),
	)

	return service.NewSeedService(b.stores.Words, seed, logger.Named(a.logger, "seed")), nil
}
