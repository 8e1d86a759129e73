package services

import (
	"context"

	"peerchat/internal/database"
	"peerchat/internal/models"
	"peerchat/pkg/logger"
)

// MessageService persists a chat message and fans it out. Persistence is the
// one fatal step: clients must never see a message that does not exist in
// history. Everything after it is independent per target.
type MessageService struct {
	messages database.MessageRepository
	userRepo database.UserRepository
	users    Broadcaster
	admins   Broadcaster
}

func NewMessageService(messages database.MessageRepository, userRepo database.UserRepository, users, admins Broadcaster) *MessageService {
	return &MessageService{
		messages: messages,
		userRepo: userRepo,
		users:    users,
		admins:   admins,
	}
}

func (s *MessageService) HandleChatMessage(ctx context.Context, senderID int, payload *models.ChatMessagePayload) {
	msg, err := s.messages.CreateMessage(ctx, &models.NewMessage{
		SenderID:   senderID,
		ReceiverID: payload.ReceiverID,
		Content:    payload.Content,
		Type:       payload.Type,
		FileName:   payload.FileName,
		Duration:   payload.Duration,
		ReplyToID:  payload.ReplyToID,
	})
	if err != nil {
		logger.Error("Error persisting message from user %d: %v", senderID, err)
		return
	}

	// Best-effort: a counter failure must not abort delivery.
	if err := s.userRepo.IncrementMessageCount(ctx, senderID); err != nil {
		logger.Error("Error incrementing message count for user %d: %v", senderID, err)
	}

	// Best-effort enrichment of the echoed message.
	if payload.ReplyToID != nil {
		if reply, err := s.messages.GetMessageByID(ctx, *payload.ReplyToID); err != nil {
			logger.Debug("Could not resolve replyTo %d: %v", *payload.ReplyToID, err)
		} else {
			msg.ReplyTo = reply
		}
	}

	s.users.Send(payload.ReceiverID, models.EventChatMessage, msg)
	s.users.Send(senderID, models.EventChatMessage, msg)

	s.admins.BroadcastAll(models.EventAdminMessageSent, models.AdminMessageSentEvent{
		UserID:       senderID,
		MessageCount: 1,
	})
}
