package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// SeedService installs the default shared vocabulary.
type SeedService struct {
	words  WordRepository
	seed   []*entities.VocabularyItem
	logger *zap.Logger
}

func NewSeedService(words WordRepository, seed []*entities.VocabularyItem, logger *zap.Logger) *SeedService {
	return &SeedService{words: words, seed: seed, logger: logger}
}

// EnsureSeeded installs the default vocabulary when no shared word exists yet.
// It reports whether anything was written.
func (s *SeedService) EnsureSeeded(ctx context.Context) (bool, error) {
	total := 0
	for _, tier := range entities.SharedTiers {
		n, err := s.words.CountByTier(ctx, tier)
		if err != nil {
			return false, fmt.Errorf("count %s words: %w", tier, err)
		}
		total += n
	}

	if total > 0 {
		return false, nil
	}

	s.logger.Info("no vocabulary found, seeding", zap.Int("words", len(s.seed)))
	if err := s.words.ReplaceShared(ctx, s.seed); err != nil {
		return false, fmt.Errorf("seed vocabulary: %w", err)
	}

	return true, nil
}

// Reload replaces the whole shared vocabulary with the defaults.
// Personal words are not touched.
func (s *SeedService) Reload(ctx context.Context) error {
	if err := s.words.ReplaceShared(ctx, s.seed); err != nil {
		return fmt.Errorf("reload vocabulary: %w", err)
	}

	s.logger.Info("vocabulary reloaded", zap.Int("words", len(s.seed)))
	return nil
}
