package entities

import "errors"

// Domain errors shared by the session engines and repositories.
var (
	ErrInsufficientItems      = errors.New("not enough vocabulary items to start a quiz")
	ErrNotFoundOrUnauthorized = errors.New("vocabulary not found or not authorized")
	ErrInvalidTier            = errors.New("invalid tier")
	ErrSessionNotActive       = errors.New("session is not active")
	ErrNoSelection            = errors.New("no option selected")
	ErrEmptyText              = errors.New("source and target text must not be empty")
	ErrPositionNotFound       = errors.New("review position not found")
	ErrUserNotFound           = errors.New("user not found")
)
