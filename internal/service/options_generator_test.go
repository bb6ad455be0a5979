package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

func TestOptionGeneratorProperties(t *testing.T) {
	var items []*entities.VocabularyItem
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		items = append(items, sharedWord(id, "src-"+id, "tgt-"+id, entities.TierBeginner))
	}

	gen := NewOptionGeneratorWithRand(rand.New(rand.NewSource(42)))

	for round := 0; round < 50; round++ {
		questions, err := gen.Generate(items)
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if len(questions) != len(items) {
			t.Fatalf("expected %d questions, got %d", len(items), len(questions))
		}

		for i, q := range questions {
			if q.Item != items[i] {
				t.Fatalf("question %d: expected input order to be kept", i)
			}
			if len(q.Options) != entities.QuizOptionCount {
				t.Fatalf("question %d: expected %d options, got %d", i, entities.QuizOptionCount, len(q.Options))
			}

			seen := make(map[string]int)
			for _, o := range q.Options {
				seen[o]++
			}
			if seen[q.CorrectAnswer] != 1 {
				t.Errorf("question %d: expected the answer exactly once, got %v", i, q.Options)
			}
			if len(seen) != entities.QuizOptionCount {
				t.Errorf("question %d: expected distinct distractors drawn without replacement, got %v", i, q.Options)
			}
		}
	}
}

func TestOptionGeneratorKeepsDuplicateTargets(t *testing.T) {
	items := []*entities.VocabularyItem{
		sharedWord("a", "Bank", "bank", entities.TierBeginner),
		sharedWord("b", "Ufer", "bank", entities.TierBeginner),
		sharedWord("c", "Haus", "house", entities.TierBeginner),
		sharedWord("d", "Baum", "tree", entities.TierBeginner),
	}

	questions, err := NewOptionGeneratorWithRand(rand.New(rand.NewSource(7))).Generate(items)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// With exactly four words every other target is a distractor.
	count := 0
	for _, o := range questions[0].Options {
		if o == "bank" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected colliding targets to both appear, got %v", questions[0].Options)
	}
}

func TestOptionGeneratorInsufficientItems(t *testing.T) {
	items := []*entities.VocabularyItem{
		sharedWord("a", "A", "1", entities.TierBeginner),
		sharedWord("b", "B", "2", entities.TierBeginner),
		sharedWord("c", "C", "3", entities.TierBeginner),
	}

	if _, err := NewOptionGenerator().Generate(items); !errors.Is(err, entities.ErrInsufficientItems) {
		t.Fatalf("expected ErrInsufficientItems, got %v", err)
	}
}
