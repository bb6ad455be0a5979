package telegram

import (
	"fmt"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

// renderQuizQuestion renders the current question, prefixed by feedback on
// the previous answer when there is one.
func renderQuizQuestion(snap service.QuizSnapshot, feedback string) (string, *tgbotapi.InlineKeyboardMarkup) {
	if snap.Question == nil {
		return md(msgSessionNotActive), nil
	}

	var sb strings.Builder
	if feedback != "" {
		sb.WriteString(feedback)
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(fmt.Sprintf("🎯 Quiz · %s · Frage %d von %d", tierLabel(snap.Tier), snap.Index+1, snap.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(md("Was bedeutet "))
	sb.WriteString(bold(snap.Question.Item.SourceText))
	sb.WriteString(md("?"))

	kb := buildQuizAnswerKeyboard(snap.Question, snap.Index)
	return sb.String(), &kb
}

// renderAnswerFeedback renders the verdict for one answer.
func renderAnswerFeedback(outcome *service.AnswerOutcome) string {
	if outcome.Correct {
		return md("✓ Richtig!")
	}
	return md("✗ Falsch. Richtige Lösung: ") + bold(outcome.CorrectAnswer)
}

// renderQuizResult renders the final screen of a quiz.
func renderQuizResult(tier entities.Tier, result *entities.SessionResult, feedback string, persistFailed bool) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	if feedback != "" {
		sb.WriteString(feedback)
		sb.WriteString("\n\n")
	}

	sb.WriteString(bold("Quiz beendet!"))
	sb.WriteString(md(" · " + tierLabel(tier)))
	sb.WriteString("\n")
	sb.WriteString(md(scoreMessage(result.CorrectCount, result.TotalCount)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Richtig beantwortet: %d von %d (%d%%)",
		result.CorrectCount, result.TotalCount, int(math.Round(result.Accuracy())))))

	if len(result.CorrectItems) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold(fmt.Sprintf("✓ Richtige Antworten (%d)", len(result.CorrectItems))))
		for _, a := range result.CorrectItems {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s — %s", a.Item.SourceText, a.Item.TargetText)))
		}
	}

	if len(result.IncorrectItems) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold(fmt.Sprintf("✗ Falsche Antworten (%d)", len(result.IncorrectItems))))
		for _, a := range result.IncorrectItems {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s — %s (deine Antwort: %s)",
				a.Item.SourceText, a.Item.TargetText, a.UserAnswer)))
		}
	}

	if persistFailed {
		sb.WriteString("\n\n")
		sb.WriteString(md("⚠️ " + msgSaveFailed))
	}

	kb := buildQuizResultKeyboard()
	return sb.String(), &kb
}

// renderFlashcard renders the card under the cursor.
func renderFlashcard(snap service.FlashcardSnapshot, notice string) (string, *tgbotapi.InlineKeyboardMarkup) {
	if snap.Card == nil {
		return md(msgNoWords), nil
	}

	var sb strings.Builder
	if notice != "" {
		sb.WriteString(notice)
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(fmt.Sprintf("🃏 Vokabelkarten · %s · Karte %d von %d",
		tierLabel(snap.Tier), snap.Index+1, snap.Total)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(snap.Known, snap.Total, 10)))
	sb.WriteString(md(fmt.Sprintf(" %d%%", int(math.Round(snap.Progress)))))
	sb.WriteString("\n\n")

	if snap.Flipped {
		sb.WriteString(bold(snap.Card.TargetText))
	} else {
		sb.WriteString(bold(snap.Card.SourceText))
	}

	if snap.Card.Category != "" {
		sb.WriteString("\n")
		sb.WriteString(md("🏷 " + snap.Card.Category))
	}

	switch {
	case snap.IsKnown:
		sb.WriteString("\n")
		sb.WriteString(md("✓ Gewusst"))
	case snap.IsUnknown:
		sb.WriteString("\n")
		sb.WriteString(md("✗ Nicht gewusst"))
	}

	kb := buildFlashcardKeyboard(snap)
	return sb.String(), &kb
}

// renderLearn renders the word under the review cursor.
func renderLearn(snap service.LearnSnapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	if snap.Item == nil {
		kb := buildTierKeyboard(modeLearn, snap.Tier)
		return md(msgNoWords), &kb
	}

	var sb strings.Builder
	sb.WriteString(md(fmt.Sprintf("📖 Lernen · %s · Wort %d von %d",
		tierLabel(snap.Tier), snap.Index+1, snap.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(snap.Item.SourceText))
	sb.WriteString("\n")

	if snap.ShowTranslation {
		sb.WriteString(md(snap.Item.TargetText))
	} else {
		sb.WriteString(spoiler(snap.Item.TargetText))
	}

	if snap.Item.Category != "" {
		sb.WriteString("\n")
		sb.WriteString(md("🏷 " + snap.Item.Category))
	}

	kb := buildLearnKeyboard(snap)
	return sb.String(), &kb
}

// renderProgress renders the profile page.
func renderProgress(summary *service.ProgressSummary) (string, *tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(bold("📊 Dein Fortschritt"))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Level Fortschritt"))
	for _, t := range summary.Tiers {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s %d%% (%d/%d)",
			tierLabel(t.Tier), buildProgressBar(t.Learned, t.Total, 10), t.Percent, t.Learned, t.Total)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("📚 Gelernte Wörter: %d", summary.TotalLearned)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Quiz Genauigkeit: %d%%", summary.QuizAccuracy)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🏆 Punkte: %d", summary.Score)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Lernserie: %d (Rekord: %d)", summary.LearningStreak, summary.LongestStreak)))

	if last := summary.Progress.LastActiveDate; last != nil {
		sb.WriteString("\n")
		sb.WriteString(md("🕒 Zuletzt aktiv: " + last.Format("02.01.2006")))
	}

	kb := buildProgressKeyboard()
	return sb.String(), &kb
}
