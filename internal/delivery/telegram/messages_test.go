package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"insufficient", fmt.Errorf("start: %w", entities.ErrInsufficientItems), msgInsufficientItems},
		{"not owned", entities.ErrNotFoundOrUnauthorized, msgNotFound},
		{"tier", entities.ErrInvalidTier, msgInvalidTier},
		{"inactive", entities.ErrSessionNotActive, msgSessionNotActive},
		{"empty", entities.ErrEmptyText, msgEmptyText},
		{"persist", &service.PersistenceError{Op: "write progress", Err: errors.New("db down")}, msgSaveFailed},
		{"repository", &service.RepositoryError{Op: "fetch", Err: errors.New("db down")}, msgLoadFailed},
		// The sentinel wins over the wrapper carrying it.
		{"wrapped sentinel", &service.RepositoryError{Op: "update", Err: entities.ErrNotFoundOrUnauthorized}, msgNotFound},
		{"other", errors.New("boom"), msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreMessage(t *testing.T) {
	tests := []struct {
		correct, total int
		wantPrefix     string
	}{
		{4, 4, "Perfekt"},
		{8, 10, "Sehr gut"},
		{3, 5, "Gut gemacht"},
		{2, 5, "Du bist auf dem richtigen Weg"},
		{1, 5, "Übe weiter"},
		{0, 0, "Übe weiter"},
	}

	for _, tt := range tests {
		if got := scoreMessage(tt.correct, tt.total); !strings.HasPrefix(got, tt.wantPrefix) {
			t.Errorf("scoreMessage(%d, %d) = %q, want prefix %q", tt.correct, tt.total, got, tt.wantPrefix)
		}
	}
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 0, "[░░░░░]"},
		{0, 4, "[░░░░░]"},
		{2, 4, "[██░░░]"},
		{4, 4, "[█████]"},
		{9, 4, "[█████]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, 5); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestTierLabel(t *testing.T) {
	if got := tierLabel(entities.TierBeginner); got != "Anfänger" {
		t.Errorf("tierLabel(beginner) = %q", got)
	}
	if got := tierLabel(entities.Tier("custom")); got != "custom" {
		t.Errorf("unknown tier label = %q, want raw value", got)
	}
}

func TestRenderQuizResult(t *testing.T) {
	result := &entities.SessionResult{
		CorrectCount: 3,
		TotalCount:   4,
		CorrectItems: []entities.AnsweredItem{
			{Item: &entities.VocabularyItem{SourceText: "Hund", TargetText: "dog"}, UserAnswer: "dog"},
		},
		IncorrectItems: []entities.AnsweredItem{
			{Item: &entities.VocabularyItem{SourceText: "Katze", TargetText: "cat"}, UserAnswer: "mouse"},
		},
	}

	text, kb := renderQuizResult(entities.TierBeginner, result, "", true)

	for _, want := range []string{"Quiz beendet", "3 von 4 \\(75%\\)", "Katze", "deine Antwort: mouse", md(msgSaveFailed)} {
		if !strings.Contains(text, want) {
			t.Errorf("result text misses %q:\n%s", want, text)
		}
	}
	if kb == nil || len(kb.InlineKeyboard) != 3 {
		t.Errorf("result keyboard = %+v, want 3 rows", kb)
	}
}
