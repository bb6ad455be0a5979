package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// distractorCount is the number of wrong options per question.
const distractorCount = entities.QuizOptionCount - 1

// OptionGenerator builds multiple choice questions from a word set.
type OptionGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewOptionGenerator creates a generator seeded from the clock.
func NewOptionGenerator() *OptionGenerator {
	return NewOptionGeneratorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewOptionGeneratorWithRand creates a generator with a caller supplied source.
func NewOptionGeneratorWithRand(rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{rng: rng}
}

// Generate creates one question per item, keeping the input order.
// Only the options inside each question are shuffled.
//
// Distractors are the target texts of other items. Colliding target texts are
// not deduplicated, so two options may read the same.
func (g *OptionGenerator) Generate(items []*entities.VocabularyItem) ([]entities.QuizQuestion, error) {
	if len(items) < entities.QuizOptionCount {
		return nil, entities.ErrInsufficientItems
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	questions := make([]entities.QuizQuestion, 0, len(items))
	for i, item := range items {
		distractors := g.pickDistractors(items, i, distractorCount)
		options := g.buildOptions(item.TargetText, distractors)

		questions = append(questions, entities.QuizQuestion{
			Item:          item,
			Options:       options,
			CorrectAnswer: item.TargetText,
		})
	}

	return questions, nil
}

// pickDistractors draws count items uniformly without replacement,
// skipping the item at position target.
func (g *OptionGenerator) pickDistractors(items []*entities.VocabularyItem, target, count int) []string {
	candidates := make([]int, 0, len(items)-1)
	for i := range items {
		if i != target {
			candidates = append(candidates, i)
		}
	}

	// Partial Fisher-Yates: only the first count slots are needed.
	for i := 0; i < count; i++ {
		j := i + g.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	out := make([]string, 0, count)
	for _, idx := range candidates[:count] {
		out = append(out, items[idx].TargetText)
	}

	return out
}

// buildOptions mixes the correct answer into the distractors at a random position.
func (g *OptionGenerator) buildOptions(correct string, distractors []string) []string {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
