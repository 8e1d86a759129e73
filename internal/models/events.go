package models

import "time"

// Event kinds carried in the wire envelope's message field (outbound) or the
// frame's type field (inbound).
const (
	EventChatMessage   = "chat_message"
	EventTyping        = "typing"
	EventMessageRead   = "message_read"
	EventReaction      = "reaction"
	EventOnlineUsers   = "online_users"
	EventUserStatus    = "user_status"
	EventUserSuspended = "user_suspended"

	EventAdminUserStatus    = "admin_user_status"
	EventAdminMessageSent   = "admin_message_sent"
	EventAdminUserSuspended = "admin_user_suspended"
)

// WireEnvelope wraps every outbound frame. Message holds the event kind.
type WireEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// InboundEvent is the first decoding pass over an inbound frame: only the
// discriminator. The full payload is decoded once the kind is recognized.
type InboundEvent struct {
	Type string `json:"type"`
}

type ChatMessagePayload struct {
	ReceiverID int         `json:"receiverId"`
	Content    string      `json:"content"`
	Type       MessageType `json:"messageType"`
	FileName   *string     `json:"fileName,omitempty"`
	Duration   *float64    `json:"duration,omitempty"`
	ReplyToID  *int        `json:"replyToId,omitempty"`
}

type TypingPayload struct {
	UserID     int  `json:"userId"`
	ReceiverID int  `json:"receiverId"`
	IsTyping   bool `json:"isTyping"`
}

type ReadPayload struct {
	MessageID int `json:"messageId"`
	SenderID  int `json:"senderId"`
	ReaderID  int `json:"readerId"`
}

type ReactionPayload struct {
	Emoji     string `json:"emoji"`
	MessageID int    `json:"messageId"`
}

type OnlineUsersPayload struct {
	UserIDs []int `json:"userIds"`
}

type UserStatusEvent struct {
	UserID     int       `json:"userId"`
	Online     bool      `json:"online"`
	LastActive time.Time `json:"lastActive"`
}

type UserSuspendedEvent struct {
	UserID    int  `json:"userId"`
	Suspended bool `json:"suspended"`
}

type AdminMessageSentEvent struct {
	UserID       int `json:"userId"`
	MessageCount int `json:"messageCount"`
}

type AdminUserSuspendedEvent struct {
	UserID      int  `json:"userId"`
	Suspended   bool `json:"suspended"`
	SuspendedBy int  `json:"suspendedBy"`
}

// APIResponse is the REST counterpart of WireEnvelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}
