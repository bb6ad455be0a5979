package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

var errBadArguments = errors.New("bad command arguments")

// parseWordArgs parses "Wort = Übersetzung [= Kategorie]".
func parseWordArgs(args string) (entities.ItemEdit, error) {
	parts := strings.Split(args, "=")
	if len(parts) < 2 || len(parts) > 3 {
		return entities.ItemEdit{}, errBadArguments
	}

	edit := entities.ItemEdit{
		SourceText: strings.TrimSpace(parts[0]),
		TargetText: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		edit.Category = strings.TrimSpace(parts[2])
	}

	return edit, nil
}

// parseIndexArg splits "N rest" where N is a 1-based position in the word list.
func parseIndexArg(args string) (int, string, error) {
	args = strings.TrimSpace(args)
	head, rest, _ := strings.Cut(args, " ")

	n, err := strconv.Atoi(head)
	if err != nil || n < 1 {
		return 0, "", errBadArguments
	}

	return n - 1, strings.TrimSpace(rest), nil
}

// parseSessionTier parses the optional tier argument of /quiz and /cards.
func parseSessionTier(args string, fallback entities.Tier) (entities.Tier, error) {
	if strings.TrimSpace(args) == "" {
		return fallback, nil
	}

	tier, err := entities.ParseTier(args)
	if err != nil || tier == entities.TierAll {
		return "", entities.ErrInvalidTier
	}

	return tier, nil
}
