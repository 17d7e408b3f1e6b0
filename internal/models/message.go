package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ChatMessage is one turn of the conversation, authored either by the
// user or by the persona. Rows are immutable after insert except for the
// image fields, which flip exactly once when the reward gate grants an
// unlock.
type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_message"`
	ID            string    `bun:"id,pk" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Message       string    `bun:"message" json:"message"`
	IsUser        bool      `bun:"is_user" json:"is_user"`
	HasImage      bool      `bun:"has_image" json:"has_image"`
	ImageUnlocked bool      `bun:"image_unlocked" json:"image_unlocked"`
	ImageURL      *string   `bun:"image_url" json:"image_url"`
	ContextTopic  *string   `bun:"context_topic" json:"context_topic"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// Lockable reports whether the message is a valid reward-gate target:
// it carries an image that has not been unlocked yet.
func (m *ChatMessage) Lockable() bool {
	return m.HasImage && !m.ImageUnlocked
}

func (m *ChatMessage) Topic() string {
	if m.ContextTopic == nil {
		return ""
	}
	return *m.ContextTopic
}
