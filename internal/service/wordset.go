package service

import (
	"context"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// loadWordSet fetches the words a session runs on.
// Personal words are scoped to the user, "all" means every shared tier.
func loadWordSet(ctx context.Context, words WordRepository, userID string, tier entities.Tier) ([]*entities.VocabularyItem, error) {
	var (
		items []*entities.VocabularyItem
		err   error
	)

	switch {
	case tier == entities.TierPersonal:
		items, err = words.FetchOwnedBy(ctx, userID)
	case tier == entities.TierAll:
		items, err = words.FetchAll(ctx)
	case tier.IsShared():
		items, err = words.FetchByTier(ctx, tier)
	default:
		return nil, entities.ErrInvalidTier
	}

	if err != nil {
		return nil, &RepositoryError{Op: "fetch " + string(tier) + " words", Err: err}
	}

	return items, nil
}
