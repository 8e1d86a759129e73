package database

import (
	"context"
	"time"

	"peerchat/internal/models"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	SetPresence(ctx context.Context, userID int, online bool, lastActive time.Time) error
	IncrementMessageCount(ctx context.Context, userID int) error
	SetSuspended(ctx context.Context, userID int, suspended bool) (*models.User, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.NewMessage) (*models.ChatMessage, error)
	GetMessageByID(ctx context.Context, id int) (*models.ChatMessage, error)
}

type ReactionRepository interface {
	CreateReaction(ctx context.Context, emoji string, userID, messageID int) (*models.Reaction, error)
}

type Database interface {
	UserRepository
	MessageRepository
	ReactionRepository
	Close() error
}
