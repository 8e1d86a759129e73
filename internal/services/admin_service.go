package services

import (
	"context"
	"fmt"

	"peerchat/internal/database"
	"peerchat/internal/models"
)

// AdminService applies moderation actions and feeds the resulting events to
// the admin audience and the affected user.
type AdminService struct {
	db     database.UserRepository
	users  Broadcaster
	admins Broadcaster
}

func NewAdminService(db database.UserRepository, users, admins Broadcaster) *AdminService {
	return &AdminService{
		db:     db,
		users:  users,
		admins: admins,
	}
}

func (s *AdminService) SuspendUser(ctx context.Context, adminID, userID int, suspended bool) (*models.User, error) {
	user, err := s.db.SetSuspended(ctx, userID, suspended)
	if err != nil {
		return nil, fmt.Errorf("failed to update suspension for user %d: %w", userID, err)
	}

	s.admins.BroadcastAll(models.EventAdminUserSuspended, models.AdminUserSuspendedEvent{
		UserID:      userID,
		Suspended:   suspended,
		SuspendedBy: adminID,
	})
	s.users.Send(userID, models.EventUserSuspended, models.UserSuspendedEvent{
		UserID:    userID,
		Suspended: suspended,
	})

	user.PasswordHash = ""
	return user, nil
}
