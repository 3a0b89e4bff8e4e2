package identity

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Role is the access role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a client supplied role to a Role. Empty input and the
// legacy "usuario" label both mean RoleUser.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "user", "usuario":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", shared.NewValidationError("role", "role inválido: %q", s)
}

// User is an account that owns companies, products and invoices
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// NewUser validates the input and hashes the password
func NewUser(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("nome", "nome is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return nil, shared.NewValidationError("nome", "nome cannot exceed 200 characters")
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role != RoleAdmin && role != RoleUser {
		return nil, shared.NewValidationError("role", "role inválido: %q", string(role))
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// VerifyPassword compares password with the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail validates an address and lower-cases it. Emails are
// compared case-insensitively.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewValidationError("email", "email is required")
	}
	if len(email) > 200 {
		return "", shared.NewValidationError("email", "email cannot exceed 200 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewValidationError("email", "email inválido")
	}
	return email, nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("senha", "senha is required")
	}
	// bcrypt only looks at the first 72 bytes
	if len(password) > 72 {
		return shared.NewValidationError("senha", "senha cannot exceed 72 bytes")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
