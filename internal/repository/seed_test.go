package repository

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

func TestParseVocabularySeed(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	data := []byte(`{"vocabulary": [
		{"id": "seed-001", "german": "Hallo", "english": "hello", "difficulty": "beginner", "category": "Begrüßung", "userId": "tg:9"},
		{"id": "seed-002", "german": "Zeit", "english": "time", "difficulty": "intermediate", "category": "Zeit"}
	]}`)

	items, err := ParseVocabularySeed(data, now)
	if err != nil {
		t.Fatalf("ParseVocabularySeed returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.SourceText != "Hallo" || first.TargetText != "hello" || first.Tier != entities.TierBeginner {
		t.Errorf("unexpected first item: %+v", first)
	}
	if first.OwnerID != "" {
		t.Error("expected seeded items to be shared")
	}
	if !first.CreatedAt.Equal(now) {
		t.Errorf("expected created at %v, got %v", now, first.CreatedAt)
	}
}

func TestParseVocabularySeedRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "empty", data: `{"vocabulary": []}`, want: ErrEmptySeed},
		{name: "duplicate ids", data: `{"vocabulary": [
			{"id": "x", "german": "a", "english": "b", "difficulty": "beginner"},
			{"id": "x", "german": "c", "english": "d", "difficulty": "beginner"}]}`, want: ErrDuplicateSeed},
		{name: "personal tier", data: `{"vocabulary": [
			{"id": "x", "german": "a", "english": "b", "difficulty": "personal"}]}`, want: entities.ErrInvalidTier},
		{name: "missing text", data: `{"vocabulary": [
			{"id": "x", "german": "a", "english": "", "difficulty": "advanced"}]}`, want: entities.ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseVocabularySeed([]byte(tt.data), time.Now()); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadBundledVocabulary(t *testing.T) {
	path := "../../assets/data/vocabulary.json"
	if _, err := os.Stat(path); err != nil {
		t.Skip("bundled vocabulary not available")
	}

	items, err := LoadVocabularySeed(path)
	if err != nil {
		t.Fatalf("LoadVocabularySeed returned error: %v", err)
	}

	perTier := make(map[entities.Tier]int)
	for _, it := range items {
		perTier[it.Tier]++
	}
	for _, tier := range entities.SharedTiers {
		if perTier[tier] < entities.QuizOptionCount {
			t.Errorf("expected at least %d %s words, got %d", entities.QuizOptionCount, tier, perTier[tier])
		}
	}
}
