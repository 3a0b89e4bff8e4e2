package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenType is the scheme clients put in front of the token
const TokenType = "Bearer"

// AuthService handles registration, login and token revocation
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates an account and signs the user in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, identity.ErrEmailTaken
	}

	user, err := identity.NewUser(input.Name, email, input.Password, role)
	if err != nil {
		return nil, err
	}
	// a concurrent registration can still win the unique index; the
	// repository reports that as ErrEmailTaken too
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.issue(user)
}

// Login verifies the credentials. Unknown email and wrong password fail
// with the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Info("User logged out",
		zap.String("user_id", input.UserID.String()),
		zap.Duration("revoked_for", ttl))
	return nil
}

// GetCurrentUser returns the profile of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{
		Token:     token.Token,
		TokenType: TokenType,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserInfo(user),
	}, nil
}
