package service

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// TierCompletion is the learned share of one shared tier.
type TierCompletion struct {
	Tier    entities.Tier
	Learned int
	Total   int
	Percent int // rounded, 0 for an empty tier
}

// ProgressSummary is everything the profile page shows.
type ProgressSummary struct {
	Tiers          []TierCompletion
	TotalLearned   int
	QuizAccuracy   int
	LearningStreak int
	LongestStreak  int
	Score          int
	Progress       *entities.UserProgress
}

type ProgressService struct {
	words    WordRepository
	learned  LearnedRepository
	progress ProgressStore
}

func NewProgressService(stores Stores) *ProgressService {
	return &ProgressService{
		words:    stores.Words,
		learned:  stores.Learned,
		progress: stores.Progress,
	}
}

// Summary collects the profile numbers. The reads are independent and run
// concurrently; the first failure cancels the rest.
func (s *ProgressService) Summary(ctx context.Context, userID string) (*ProgressSummary, error) {
	g, gctx := errgroup.WithContext(ctx)

	tiers := make([]TierCompletion, len(entities.SharedTiers))
	for i, tier := range entities.SharedTiers {
		tiers[i].Tier = tier

		g.Go(func() error {
			total, err := s.words.CountByTier(gctx, tier)
			if err != nil {
				return fmt.Errorf("count %s words: %w", tier, err)
			}
			tiers[i].Total = total
			return nil
		})

		g.Go(func() error {
			learned, err := s.learned.CountLearned(gctx, userID, tier)
			if err != nil {
				return fmt.Errorf("count learned %s words: %w", tier, err)
			}
			tiers[i].Learned = learned
			return nil
		})
	}

	var progress *entities.UserProgress
	g.Go(func() error {
		p, err := s.progress.ReadProgress(gctx, userID)
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		progress = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, &RepositoryError{Op: "progress summary", Err: err}
	}

	summary := &ProgressSummary{
		Tiers:          tiers,
		QuizAccuracy:   int(math.Round(progress.QuizAccuracy)),
		LearningStreak: progress.LearningStreak,
		LongestStreak:  progress.LongestStreak,
		Score:          progress.Score,
		Progress:       progress,
	}

	for i := range summary.Tiers {
		t := &summary.Tiers[i]
		t.Percent = completionPercent(t.Learned, t.Total)
		summary.TotalLearned += t.Learned
	}

	return summary, nil
}

// completionPercent is capped at 100 because learned records outlive
// words removed by a vocabulary reload.
func completionPercent(learned, total int) int {
	if total <= 0 {
		return 0
	}
	return min(100, int(math.Round(float64(learned)/float64(total)*100)))
}
