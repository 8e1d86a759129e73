package database

import (
	"context"
	"fmt"
	"time"

	"peerchat/internal/models"
	"peerchat/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(databaseURL string) (*PostgresDB, error) {
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully")
	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}

// User Repository Implementation

func (db *PostgresDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, user_role, status, bio,
		       online, last_active, message_count, suspended_at, created_at
		FROM users WHERE email = $1`

	return db.scanUser(db.pool.QueryRow(ctx, query, email))
}

func (db *PostgresDB) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, user_role, status, bio,
		       online, last_active, message_count, suspended_at, created_at
		FROM users WHERE id = $1`

	return db.scanUser(db.pool.QueryRow(ctx, query, id))
}

func (db *PostgresDB) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash, user_role, online, message_count, created_at)
		VALUES ($1, $2, $3, $4, false, 0, NOW())
		RETURNING id, created_at`

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	err = db.pool.QueryRow(ctx, query, req.Name, req.Email, string(hash), models.RoleUser).Scan(
		&user.ID, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (db *PostgresDB) SetPresence(ctx context.Context, userID int, online bool, lastActive time.Time) error {
	query := `UPDATE users SET online = $2, last_active = $3 WHERE id = $1`
	_, err := db.pool.Exec(ctx, query, userID, online, lastActive)
	return err
}

func (db *PostgresDB) IncrementMessageCount(ctx context.Context, userID int) error {
	query := `UPDATE users SET message_count = message_count + 1 WHERE id = $1`
	_, err := db.pool.Exec(ctx, query, userID)
	return err
}

func (db *PostgresDB) SetSuspended(ctx context.Context, userID int, suspended bool) (*models.User, error) {
	query := `
		UPDATE users
		SET suspended_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
		    status = CASE WHEN $2 THEN 'suspended' ELSE 'active' END
		WHERE id = $1
		RETURNING id, name, email, password_hash, avatar, user_role, status, bio,
		          online, last_active, message_count, suspended_at, created_at`

	return db.scanUser(db.pool.QueryRow(ctx, query, userID, suspended))
}

func (db *PostgresDB) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Avatar,
		&user.Role, &user.Status, &user.Bio, &user.Online, &user.LastActive,
		&user.MessageCount, &user.SuspendedAt, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Message Repository Implementation

func (db *PostgresDB) CreateMessage(ctx context.Context, msg *models.NewMessage) (*models.ChatMessage, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, type, file_name, duration, reply_to_id, edited, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
		RETURNING id, created_at`

	created := &models.ChatMessage{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		Type:       msg.Type,
		FileName:   msg.FileName,
		Duration:   msg.Duration,
		ReplyToID:  msg.ReplyToID,
	}
	err := db.pool.QueryRow(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.Content, msg.Type, msg.FileName, msg.Duration, msg.ReplyToID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	// Denormalize participant names for the echo; delivery does not depend
	// on this succeeding.
	nameQuery := `
		SELECT s.name, r.name
		FROM users s, users r
		WHERE s.id = $1 AND r.id = $2`
	if err := db.pool.QueryRow(ctx, nameQuery, msg.SenderID, msg.ReceiverID).Scan(
		&created.SenderName, &created.ReceiverName,
	); err != nil {
		logger.Error("Error loading participant names for message %d: %v", created.ID, err)
	}

	return created, nil
}

func (db *PostgresDB) GetMessageByID(ctx context.Context, id int) (*models.ChatMessage, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, s.name, r.name, m.content,
		       m.type, m.file_name, m.duration, m.reply_to_id, m.edited, m.created_at
		FROM messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users r ON m.receiver_id = r.id
		WHERE m.id = $1`

	msg := &models.ChatMessage{}
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.SenderName, &msg.ReceiverName,
		&msg.Content, &msg.Type, &msg.FileName, &msg.Duration, &msg.ReplyToID,
		&msg.Edited, &msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// Reaction Repository Implementation

func (db *PostgresDB) CreateReaction(ctx context.Context, emoji string, userID, messageID int) (*models.Reaction, error) {
	query := `
		INSERT INTO reactions (id, emoji, user_id, message_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`

	reaction := &models.Reaction{
		ID:        uuid.New(),
		Emoji:     emoji,
		UserID:    userID,
		MessageID: messageID,
	}
	err := db.pool.QueryRow(ctx, query, reaction.ID, emoji, userID, messageID).Scan(&reaction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create reaction: %w", err)
	}

	return reaction, nil
}
