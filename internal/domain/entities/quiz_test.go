package entities

import (
	"errors"
	"testing"
)

func TestQuizRunAnswer(t *testing.T) {
	items := testItems(2)
	run := NewQuizRun([]QuizQuestion{
		{Item: items[0], Options: []string{"x", "wordA", "y", "z"}, CorrectAnswer: "wordA"},
		{Item: items[1], Options: []string{"wordB", "x", "y", "z"}, CorrectAnswer: "wordB"},
	})

	if err := run.Select("x"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	correct, done, err := run.Answer("wordA")
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if !correct || done {
		t.Fatalf("expected correct, not done; got correct=%v done=%v", correct, done)
	}
	if run.Selected != "" {
		t.Error("expected selection to be cleared on advance")
	}

	// Comparison is case-sensitive.
	correct, done, _ = run.Answer("WORDB")
	if correct || !done {
		t.Fatalf("expected incorrect and done; got correct=%v done=%v", correct, done)
	}

	if run.Result.CorrectCount != 1 || run.Result.TotalCount != 2 {
		t.Errorf("expected 1/2, got %d/%d", run.Result.CorrectCount, run.Result.TotalCount)
	}
	if got := run.Result.Accuracy(); got != 50 {
		t.Errorf("expected accuracy 50, got %v", got)
	}
	if len(run.Result.IncorrectItems) != 1 || run.Result.IncorrectItems[0].UserAnswer != "WORDB" {
		t.Errorf("unexpected incorrect items: %+v", run.Result.IncorrectItems)
	}

	if _, _, err := run.Answer("wordB"); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("expected ErrSessionNotActive after completion, got %v", err)
	}
}

func TestSessionResultClone(t *testing.T) {
	var r SessionResult
	r.Record(&VocabularyItem{ID: "a"}, "x", true)

	c := r.Clone()
	r.Record(&VocabularyItem{ID: "b"}, "y", true)

	if len(c.CorrectItems) != 1 {
		t.Errorf("expected clone to be detached, got %d items", len(c.CorrectItems))
	}
	if (&SessionResult{}).Accuracy() != 0 {
		t.Error("expected accuracy of an empty result to be 0")
	}
}
