// Package repository loads the bundled vocabulary seed.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

var (
	ErrEmptySeed     = errors.New("vocabulary seed is empty")
	ErrDuplicateSeed = errors.New("vocabulary seed contains duplicate ids")
)

// LoadVocabularySeed reads the default shared vocabulary from a JSON file.
// Every item must belong to a shared tier.
func LoadVocabularySeed(path string) ([]*entities.VocabularyItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary seed: %w", err)
	}

	return ParseVocabularySeed(data, time.Now())
}

// ParseVocabularySeed decodes a seed document.
func ParseVocabularySeed(data []byte, now time.Time) ([]*entities.VocabularyItem, error) {
	var wrapper struct {
		Vocabulary []*entities.VocabularyItem `json:"vocabulary"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary JSON: %w", err)
	}

	if len(wrapper.Vocabulary) == 0 {
		return nil, ErrEmptySeed
	}

	ids := lo.Map(wrapper.Vocabulary, func(item *entities.VocabularyItem, _ int) string { return item.ID })
	if len(lo.Uniq(ids)) != len(ids) {
		return nil, ErrDuplicateSeed
	}

	for _, item := range wrapper.Vocabulary {
		if !item.Tier.IsShared() {
			return nil, fmt.Errorf("seed item %q: %w", item.ID, entities.ErrInvalidTier)
		}
		if item.ID == "" || item.SourceText == "" || item.TargetText == "" {
			return nil, fmt.Errorf("seed item %q: %w", item.ID, entities.ErrEmptyText)
		}

		item.OwnerID = ""
		item.CreatedAt = now
		item.LastModified = now
	}

	return wrapper.Vocabulary, nil
}
