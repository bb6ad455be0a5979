package entities

// QuizOptionCount is the number of choices shown for every question.
const QuizOptionCount = 4

// QuizState is the lifecycle state of a quiz session.
type QuizState string

const (
	QuizIdle       QuizState = "idle"        // no questions, waiting for a word set
	QuizGenerating QuizState = "generating"  // word set is being fetched
	QuizInProgress QuizState = "in_progress" // questions are being answered
	QuizCompleted  QuizState = "completed"   // last question answered, result is final
)

// QuizQuestion is one multiple choice question built for a session.
type QuizQuestion struct {
	Item          *VocabularyItem
	Options       []string // QuizOptionCount entries in display order
	CorrectAnswer string
}

// AnsweredItem pairs a vocabulary item with the answer the user gave.
type AnsweredItem struct {
	Item       *VocabularyItem
	UserAnswer string
}

// SessionResult accumulates answers over one pass through the questions.
type SessionResult struct {
	CorrectCount   int
	TotalCount     int
	CorrectItems   []AnsweredItem
	IncorrectItems []AnsweredItem
}

// Record appends one answer to the running result.
func (r *SessionResult) Record(item *VocabularyItem, userAnswer string, correct bool) {
	r.TotalCount++

	answered := AnsweredItem{Item: item, UserAnswer: userAnswer}
	if correct {
		r.CorrectCount++
		r.CorrectItems = append(r.CorrectItems, answered)
		return
	}

	r.IncorrectItems = append(r.IncorrectItems, answered)
}

// Accuracy returns the share of correct answers as a percentage in [0, 100].
func (r *SessionResult) Accuracy() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalCount) * 100
}

// Clone returns a copy that does not share slices with the receiver.
func (r *SessionResult) Clone() SessionResult {
	out := SessionResult{
		CorrectCount: r.CorrectCount,
		TotalCount:   r.TotalCount,
	}
	out.CorrectItems = append([]AnsweredItem(nil), r.CorrectItems...)
	out.IncorrectItems = append([]AnsweredItem(nil), r.IncorrectItems...)
	return out
}

// QuizRun walks through generated questions and tracks the running result.
type QuizRun struct {
	Questions []QuizQuestion
	Index     int    // index of the question being answered
	Selected  string // pending selection, cleared on advance
	Result    SessionResult
	completed bool
}

// NewQuizRun starts a run over the given questions.
func NewQuizRun(questions []QuizQuestion) *QuizRun {
	return &QuizRun{Questions: questions}
}

// Completed reports whether the last question has been answered.
func (q *QuizRun) Completed() bool {
	return q.completed
}

// Current returns the question being answered.
func (q *QuizRun) Current() (*QuizQuestion, bool) {
	if q.completed || q.Index < 0 || q.Index >= len(q.Questions) {
		return nil, false
	}
	return &q.Questions[q.Index], true
}

// Select stores a pending selection for the current question.
func (q *QuizRun) Select(option string) error {
	if _, ok := q.Current(); !ok {
		return ErrSessionNotActive
	}
	q.Selected = option
	return nil
}

// Answer checks the option against the current question with an exact,
// case-sensitive comparison, records it and advances.
// done is true once the answer finalized the result.
func (q *QuizRun) Answer(option string) (correct, done bool, err error) {
	current, ok := q.Current()
	if !ok {
		return false, false, ErrSessionNotActive
	}

	correct = option == current.CorrectAnswer
	q.Result.Record(current.Item, option, correct)
	q.Selected = ""

	if q.Index < len(q.Questions)-1 {
		q.Index++
		return correct, false, nil
	}

	q.Index = len(q.Questions)
	q.completed = true
	return correct, true, nil
}
