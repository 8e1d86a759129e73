package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is an emoji attached to exactly one message. The reaction never
// mutates the message it targets; clients re-query message history to see
// the aggregated reaction list.
type Reaction struct {
	ID        uuid.UUID `json:"id"`
	Emoji     string    `json:"emoji"`
	UserID    int       `json:"userId"`
	MessageID int       `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
}
