package entities

import (
	"fmt"
	"time"
)

// UserProgress stores the cumulative learning counters of a user.
type UserProgress struct {
	UserID         string
	Score          int        // total correct quiz answers
	WordsLearned   int        // total correctly answered words
	LearningStreak int        // consecutive active days, ending today or yesterday
	LongestStreak  int        // historical maximum of LearningStreak
	QuizAccuracy   float64    // accuracy of the last finished quiz, 0-100
	LastActiveDate *time.Time // nil until the first session
}

// NewUserProgress creates the default record for a user seen for the first time.
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{UserID: userID}
}

// ProgressUpdate is a field-level merge applied to a stored UserProgress.
// Deltas are added to the stored value, nil pointers leave the field untouched.
type ProgressUpdate struct {
	ScoreDelta        int
	WordsLearnedDelta int
	LearningStreak    *int
	LongestStreak     *int
	QuizAccuracy      *float64
	LastActiveDate    *time.Time
}

// IsEmpty reports whether applying the update would change nothing.
func (u ProgressUpdate) IsEmpty() bool {
	return u.ScoreDelta == 0 && u.WordsLearnedDelta == 0 &&
		u.LearningStreak == nil && u.LongestStreak == nil &&
		u.QuizAccuracy == nil && u.LastActiveDate == nil
}

// Apply merges the update into p. Used by in-memory stores and tests.
func (p *UserProgress) Apply(u ProgressUpdate) {
	p.Score += u.ScoreDelta
	p.WordsLearned += u.WordsLearnedDelta

	if u.LearningStreak != nil {
		p.LearningStreak = *u.LearningStreak
	}
	if u.LongestStreak != nil {
		p.LongestStreak = *u.LongestStreak
	}
	if u.QuizAccuracy != nil {
		p.QuizAccuracy = *u.QuizAccuracy
	}
	if u.LastActiveDate != nil {
		t := *u.LastActiveDate
		p.LastActiveDate = &t
	}
}

// QuizResultUpdate converts a finished quiz into the progress increments it earns.
// Accuracy overwrites the stored value instead of averaging it.
func QuizResultUpdate(r *SessionResult) ProgressUpdate {
	accuracy := r.Accuracy()
	return ProgressUpdate{
		ScoreDelta:        r.CorrectCount,
		WordsLearnedDelta: len(r.CorrectItems),
		QuizAccuracy:      &accuracy,
	}
}

// LearnedRecord is the durable fact that a user answered an item correctly on a tier.
type LearnedRecord struct {
	UserID     string
	ItemID     string
	Tier       Tier
	SourceText string
	TargetText string
	LearnedAt  time.Time
}

// NewLearnedRecord builds the record for a correctly answered item.
func NewLearnedRecord(userID string, item *VocabularyItem, tier Tier, now time.Time) *LearnedRecord {
	return &LearnedRecord{
		UserID:     userID,
		ItemID:     item.ID,
		Tier:       tier,
		SourceText: item.SourceText,
		TargetText: item.TargetText,
		LearnedAt:  now,
	}
}

// Key is the deterministic identity of the record. Writing the same key
// twice is an upsert, which makes recording idempotent without a pre-read.
func (r *LearnedRecord) Key() string {
	return fmt.Sprintf("%s:%s:%s", r.UserID, r.ItemID, r.Tier)
}
