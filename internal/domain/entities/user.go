package entities

import (
	"strconv"
	"time"
)

// User is a learner known to the trainer.
type User struct {
	ID        string // stable user identifier
	ChatID    int64  // chat the trainer talks to, 0 for non-chat clients
	Username  string
	CreatedAt time.Time
}

// NewUser creates a user for a chat client.
func NewUser(id string, chatID int64, username string) *User {
	return &User{
		ID:        id,
		ChatID:    chatID,
		Username:  username,
		CreatedAt: time.Now(),
	}
}

// TelegramUserID converts a Telegram account id into a user identifier.
func TelegramUserID(id int64) string {
	return "tg:" + strconv.FormatInt(id, 10)
}
