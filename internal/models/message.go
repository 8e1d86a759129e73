package models

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeImage MessageType = "IMAGE"
	MessageTypeAudio MessageType = "AUDIO"
	MessageTypeVideo MessageType = "VIDEO"
	MessageTypeFile  MessageType = "FILE"
)

// ChatMessage is a persisted direct message between two users. Identity and
// creation time are assigned by the database; the core never mutates a
// message after it has been created.
type ChatMessage struct {
	ID           int          `json:"id"`
	SenderID     int          `json:"senderId"`
	ReceiverID   int          `json:"receiverId"`
	SenderName   string       `json:"senderName,omitempty"`
	ReceiverName string       `json:"receiverName,omitempty"`
	Content      string       `json:"content"`
	Type         MessageType  `json:"messageType"`
	FileName     *string      `json:"fileName,omitempty"`
	Duration     *float64     `json:"duration,omitempty"`
	ReplyToID    *int         `json:"replyToId,omitempty"`
	ReplyTo      *ChatMessage `json:"replyTo,omitempty"`
	Edited       bool         `json:"edited"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewMessage carries the fields a client controls when creating a message.
type NewMessage struct {
	SenderID   int
	ReceiverID int
	Content    string
	Type       MessageType
	FileName   *string
	Duration   *float64
	ReplyToID  *int
}
