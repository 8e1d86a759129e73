package services

import (
	"context"
	"time"

	"peerchat/internal/database"
	"peerchat/internal/models"
	"peerchat/pkg/logger"
)

// PresenceService publishes online/offline transitions. Every transition
// broadcasts the full current online set rather than a diff, so clients
// always hold ground truth. The user store is updated before the status
// broadcast goes out; a failed store write is logged and the broadcast still
// happens, since presence is best-effort rather than transactional.
type PresenceService struct {
	db     database.UserRepository
	users  Broadcaster
	admins Broadcaster
}

func NewPresenceService(db database.UserRepository, users, admins Broadcaster) *PresenceService {
	return &PresenceService{
		db:     db,
		users:  users,
		admins: admins,
	}
}

func (s *PresenceService) UserConnected(ctx context.Context, userID int) {
	logger.Info("User %d connected", userID)
	s.broadcastOnlineUsers()
	s.broadcastStatus(ctx, userID, true)
}

func (s *PresenceService) UserDisconnected(ctx context.Context, userID int) {
	logger.Info("User %d disconnected", userID)
	s.broadcastOnlineUsers()
	s.broadcastStatus(ctx, userID, false)
}

func (s *PresenceService) broadcastOnlineUsers() {
	s.users.BroadcastAll(models.EventOnlineUsers, models.OnlineUsersPayload{
		UserIDs: s.users.OnlineUserIDs(),
	})
}

func (s *PresenceService) broadcastStatus(ctx context.Context, userID int, online bool) {
	lastActive := time.Now().UTC()
	if err := s.db.SetPresence(ctx, userID, online, lastActive); err != nil {
		logger.Error("Error persisting presence for user %d: %v", userID, err)
	}

	event := models.UserStatusEvent{
		UserID:     userID,
		Online:     online,
		LastActive: lastActive,
	}
	s.users.BroadcastAll(models.EventUserStatus, event)
	s.admins.BroadcastAll(models.EventAdminUserStatus, event)
}
