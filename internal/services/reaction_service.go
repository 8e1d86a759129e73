package services

import (
	"context"

	"peerchat/internal/database"
	"peerchat/internal/models"
	"peerchat/pkg/logger"
)

// ReactionService persists a reaction and notifies both parties of the
// conversation the target message belongs to. Notification is best-effort:
// if the target message is gone the reaction is still recorded but nobody
// is told.
type ReactionService struct {
	reactions database.ReactionRepository
	messages  database.MessageRepository
	users     Broadcaster
}

func NewReactionService(reactions database.ReactionRepository, messages database.MessageRepository, users Broadcaster) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		messages:  messages,
		users:     users,
	}
}

func (s *ReactionService) HandleReaction(ctx context.Context, userID int, payload *models.ReactionPayload) {
	reaction, err := s.reactions.CreateReaction(ctx, payload.Emoji, userID, payload.MessageID)
	if err != nil {
		logger.Error("Error persisting reaction from user %d: %v", userID, err)
		return
	}

	msg, err := s.messages.GetMessageByID(ctx, payload.MessageID)
	if err != nil {
		logger.Debug("Could not resolve message %d for reaction delivery: %v", payload.MessageID, err)
		return
	}

	// Both conversation parties hear about the reaction, whoever reacted.
	s.users.Send(msg.SenderID, models.EventReaction, reaction)
	s.users.Send(msg.ReceiverID, models.EventReaction, reaction)
}
