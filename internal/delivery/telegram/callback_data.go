package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz     = "quiz"
	actionCards    = "cards"
	actionLearn    = "learn"
	actionTier     = "tier"
	actionWords    = "words"
	actionProgress = "progress"
	actionReset    = "reset"
)

// Quiz sub-actions.
const (
	quizAnswer  = "a"
	quizRestart = "restart"
)

// Flashcard sub-actions.
const (
	cardsFlip    = "flip"
	cardsPrev    = "prev"
	cardsNext    = "next"
	cardsKnown   = "known"
	cardsUnknown = "unknown"
	cardsRestart = "restart"
)

// Learn sub-actions.
const (
	learnPrev      = "prev"
	learnNext      = "next"
	learnTranslate = "translate"
)

// Word list sub-actions.
const (
	wordsDelete   = "del"
	wordsCategory = "cat"
	wordsClear    = "clear"
	wordsClearYes = "clear_yes"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizAnswerCallback refers to the option by index; option texts may
// exceed the 64 byte callback limit. The question index guards against
// taps on an outdated keyboard.
func buildQuizAnswerCallback(questionIdx, optionIdx int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(questionIdx), strconv.Itoa(optionIdx)},
	}.encode()
}

func buildQuizRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}

func buildCardsCallback(sub string) string {
	return callbackData{Action: actionCards, Params: []string{sub}}.encode()
}

func buildLearnCallback(sub string) string {
	return callbackData{Action: actionLearn, Params: []string{sub}}.encode()
}

// buildTierCallback selects a tier for one of the session modes.
func buildTierCallback(mode string, tier entities.Tier) string {
	return callbackData{Action: actionTier, Params: []string{mode, string(tier)}}.encode()
}

func buildWordDeleteCallback(itemID string) string {
	return callbackData{Action: actionWords, Params: []string{wordsDelete, itemID}}.encode()
}

// buildWordsCategoryCallback refers to the category by its position in the
// category list; names are free text and may exceed the 64 byte limit.
func buildWordsCategoryCallback(idx int) string {
	return callbackData{Action: actionWords, Params: []string{wordsCategory, strconv.Itoa(idx)}}.encode()
}

func buildWordsCallback(sub string) string {
	return callbackData{Action: actionWords, Params: []string{sub}}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
