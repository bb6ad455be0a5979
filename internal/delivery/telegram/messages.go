// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError       = "Etwas ist schiefgelaufen. Bitte versuche es später noch einmal."
	msgLoadFailed          = "Fehler beim Laden der Vokabeln. Bitte versuche es erneut."
	msgInsufficientItems   = "Nicht genügend Vokabeln. Füge mindestens 4 Vokabeln hinzu, um das Quiz zu starten."
	msgNoWords             = "Keine Vokabeln gefunden. Füge zuerst einige Vokabeln hinzu, um mit dem Lernen zu beginnen."
	msgNoWordsInCategory   = "Keine Vokabeln in dieser Kategorie."
	msgNotFound            = "Diese Vokabel existiert nicht oder gehört dir nicht."
	msgInvalidTier         = "Unbekanntes Level. Verfügbar: beginner, intermediate, advanced, personal."
	msgSessionNotActive    = "Diese Sitzung ist nicht mehr aktiv. Starte sie bitte neu."
	msgEmptyText           = "Wort und Übersetzung dürfen nicht leer sein."
	msgProgressUnavailable = "Fortschritt konnte nicht geladen werden. Bitte versuche es später noch einmal."
	msgSaveFailed          = "Dein Ergebnis konnte nicht gespeichert werden."
	msgUseAdd              = "Verwendung: /add Wort = Übersetzung [= Kategorie]"
	msgUseEdit             = "Verwendung: /edit N Wort = Übersetzung [= Kategorie]"
	msgUseDelete           = "Verwendung: /delete N"
	msgUnknownCommand      = "Unbekannter Befehl. Verfügbare Befehle:\n\n/quiz — Quiz starten\n/cards — Vokabelkarten\n/learn — Vokabeln lernen\n/words — eigene Vokabeln\n/progress — Fortschritt"
)

const (
	msgWordAdded    = "✅ Vokabel hinzugefügt."
	msgWordUpdated  = "✏️ Vokabel aktualisiert."
	msgWordDeleted  = "🗑 Vokabel gelöscht."
	msgResetConfirm = "Willst du wirklich deinen gesamten Fortschritt und alle eigenen Vokabeln löschen?"
	msgResetDone    = "Dein Fortschritt wurde zurückgesetzt."
	msgResetCancel  = "Zurücksetzen abgebrochen."
	msgChooseTier   = "Wähle ein Level:"
)

var tierLabels = map[entities.Tier]string{
	entities.TierBeginner:     "Anfänger",
	entities.TierIntermediate: "Fortgeschritten",
	entities.TierAdvanced:     "Experte",
	entities.TierPersonal:     "Persönlich",
	entities.TierAll:          "Alle",
}

func tierLabel(t entities.Tier) string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return string(t)
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func spoiler(s string) string {
	return "||" + md(s) + "||"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the welcome message.
func welcomeMarkdownV2(streak int) string {
	var sb strings.Builder

	sb.WriteString(bold("Willkommen beim Vokabeltrainer!"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Hier kannst du:"))
	sb.WriteString("\n\n")
	sb.WriteString(md("🃏 mit "))
	sb.WriteString(bold("Vokabelkarten"))
	sb.WriteString(md(" üben (/cards)"))
	sb.WriteString("\n")
	sb.WriteString(md("🎯 dein Wissen im "))
	sb.WriteString(bold("Quiz"))
	sb.WriteString(md(" testen (/quiz)"))
	sb.WriteString("\n")
	sb.WriteString(md("📖 Wort für Wort "))
	sb.WriteString(bold("lernen"))
	sb.WriteString(md(" (/learn)"))
	sb.WriteString("\n")
	sb.WriteString(md("✍️ eigene Vokabeln verwalten (/words, /add)"))
	sb.WriteString("\n")
	sb.WriteString(md("📊 deinen Fortschritt ansehen (/progress)"))

	if streak > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("🔥 Lernserie: %d Tag(e)", streak)))
	}

	return sb.String()
}

// scoreMessage picks the closing line of a quiz by accuracy band.
func scoreMessage(correct, total int) string {
	if total == 0 {
		return "Übe weiter, du schaffst das! 📚"
	}

	percentage := float64(correct) / float64(total) * 100
	switch {
	case percentage == 100:
		return "Perfekt! Du hast alle Fragen richtig beantwortet! 🎉"
	case percentage >= 80:
		return "Sehr gut gemacht! 🌟"
	case percentage >= 60:
		return "Gut gemacht! Weiter so! 👍"
	case percentage >= 40:
		return "Du bist auf dem richtigen Weg! 💪"
	default:
		return "Übe weiter, du schaffst das! 📚"
	}
}

// formatWord renders a word pair as one list line.
func formatWord(n int, item *entities.VocabularyItem) string {
	line := fmt.Sprintf("%s %s — %s", md(fmt.Sprintf("%d.", n)), bold(item.SourceText), md(item.TargetText))
	if item.Category != "" {
		line += " " + md("("+item.Category+")")
	}
	return line
}

// formatWordList renders the personal words of a user, optionally narrowed
// to one category. positions maps item ids to their number in the full list,
// which /edit and /delete refer to; items missing from it are numbered in order.
func formatWordList(items []*entities.VocabularyItem, positions map[string]int, category string) string {
	if len(items) == 0 {
		if category != "" {
			return md(msgNoWordsInCategory)
		}
		return md(msgNoWords)
	}

	title := fmt.Sprintf("✍️ Deine Vokabeln (%d)", len(items))
	if category != "" {
		title = fmt.Sprintf("✍️ %s (%d)", category, len(items))
	}

	var sb strings.Builder
	sb.WriteString(bold(title))
	sb.WriteString("\n\n")
	for i, item := range items {
		n, ok := positions[item.ID]
		if !ok {
			n = i + 1
		}
		sb.WriteString(formatWord(n, item))
		sb.WriteString("\n")
	}

	return sb.String()
}
