package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Avatar       *string    `json:"avatar,omitempty"`
	Role         UserRole   `json:"role"`
	Status       *string    `json:"status,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	Online       bool       `json:"online"`
	LastActive   *time.Time `json:"lastActive,omitempty"`
	MessageCount int        `json:"messageCount"`
	SuspendedAt  *time.Time `json:"suspendedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SuspendRequest struct {
	Suspended bool `json:"suspended"`
}
