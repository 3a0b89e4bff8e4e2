package identity

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name     string `json:"nome" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"senha" binding:"required,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user usuario"`
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresAt time.Time
}

// UserInfo is the public profile of a user
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"usuario"`
}

// ToUserInfo converts a domain user to its public profile
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
