package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
	"github.com/aliskhannn/vokabel-trainer/internal/service"
)

// Session modes a tier keyboard can target.
const (
	modeQuiz  = "quiz"
	modeCards = "cards"
	modeLearn = "learn"
)

// buildTierKeyboard lets the user pick the tier of a session mode.
func buildTierKeyboard(mode string, current entities.Tier) tgbotapi.InlineKeyboardMarkup {
	tiers := entities.SessionTiers
	if mode == modeLearn {
		tiers = append([]entities.Tier{entities.TierAll}, entities.SessionTiers...)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range tiers {
		label := tierLabel(t)
		if t == current {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildTierCallback(mode, t)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizAnswerKeyboard builds keyboard for a quiz question.
func buildQuizAnswerKeyboard(q *entities.QuizQuestion, questionIdx int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(questionIdx, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Quiz neu starten", buildQuizRestartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎚 Level wechseln", buildTierCallback(modeQuiz, "")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Mein Fortschritt", buildProgressCallback()),
		),
	)
}

// buildFlashcardKeyboard builds the controls under a flashcard.
func buildFlashcardKeyboard(snap service.FlashcardSnapshot) tgbotapi.InlineKeyboardMarkup {
	flip := "🔄 Karte umdrehen"
	if snap.Flipped {
		flip = "🔄 Zurückdrehen"
	}

	var nav []tgbotapi.InlineKeyboardButton
	if snap.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Zurück", buildCardsCallback(cardsPrev)))
	}
	if snap.Index < snap.Total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Weiter ▶️", buildCardsCallback(cardsNext)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(flip, buildCardsCallback(cardsFlip)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✗ Nicht gewusst", buildCardsCallback(cardsUnknown)),
			tgbotapi.NewInlineKeyboardButtonData("✓ Gewusst", buildCardsCallback(cardsKnown)),
		),
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("↩️ Neu starten", buildCardsCallback(cardsRestart)),
		tgbotapi.NewInlineKeyboardButtonData("🎚 Level", buildTierCallback(modeCards, "")),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLearnKeyboard builds the controls of the word review.
func buildLearnKeyboard(snap service.LearnSnapshot) tgbotapi.InlineKeyboardMarkup {
	translate := "👁 Übersetzung zeigen"
	if snap.ShowTranslation {
		translate = "🙈 Übersetzung verbergen"
	}

	var nav []tgbotapi.InlineKeyboardButton
	if snap.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Zurück", buildLearnCallback(learnPrev)))
	}
	if snap.Index < snap.Total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Weiter ▶️", buildLearnCallback(learnNext)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(translate, buildLearnCallback(learnTranslate)),
		),
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎚 Level", buildTierCallback(modeLearn, "")),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildWordsKeyboard offers a delete button per listed word and a filter
// button per category. active is the category currently shown, if any.
func buildWordsKeyboard(items []*entities.VocabularyItem, categories []string, active string) *tgbotapi.InlineKeyboardMarkup {
	if len(items) == 0 && len(categories) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+item.SourceText, buildWordDeleteCallback(item.ID)),
		))
	}

	if len(categories) > 0 {
		var filters []tgbotapi.InlineKeyboardButton
		if active != "" {
			filters = append(filters, tgbotapi.NewInlineKeyboardButtonData("📚 Alle", buildWordsCallback("")))
		}
		for i, category := range categories {
			label := "🏷 " + category
			if category == active {
				label = "• " + category
			}
			filters = append(filters, tgbotapi.NewInlineKeyboardButtonData(label, buildWordsCategoryCallback(i)))
		}
		rows = append(rows, lo.Chunk(filters, 3)...)
	}

	if active == "" && len(items) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Alle löschen", buildWordsCallback(wordsClear)),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func buildClearWordsConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ja", buildWordsCallback(wordsClearYes)),
			tgbotapi.NewInlineKeyboardButtonData("Nein", buildWordsCallback("")),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Aktualisieren", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Quiz starten", buildTierCallback(modeQuiz, "")),
			tgbotapi.NewInlineKeyboardButtonData("🃏 Karten", buildTierCallback(modeCards, "")),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ja, zurücksetzen", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Nein", buildResetCancelCallback()),
		),
	)
}
