package auth

import (
	"errors"
	"time"

	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrMissingUserID    = errors.New("missing user ID in token")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims are the custom JWT claims issued at login and registration
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Identity is what the auth gate yields for a valid token
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Identity converts the claims into an Identity
func (c *Claims) Identity() (Identity, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return Identity{}, ErrMissingUserID
	}
	return Identity{UserID: id, Email: c.Email, Role: c.Role}, nil
}

// GenerateTokenInput contains the data needed to issue a token
type GenerateTokenInput struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IssuedToken is a signed token with its expiry
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	JTI       string
}

// JWTService signs and validates HS256 tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	exp := cfg.Expiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: exp,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
}

// Expiration returns the configured token lifetime
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken issues a token valid for the configured lifetime
func (s *JWTService) GenerateToken(input GenerateTokenInput) (*IssuedToken, error) {
	if input.UserID == uuid.Nil {
		return nil, ErrMissingUserID
	}

	now := s.now()
	expiresAt := now.Add(s.expiration)
	jti := uuid.New().String()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   input.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: input.UserID.String(),
		Email:  input.Email,
		Role:   input.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: signed, ExpiresAt: expiresAt, JTI: jti}, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
// Expired tokens yield ErrExpiredToken; every other failure ErrInvalidToken
// or one of the claim errors.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// GetRemainingTTL returns how long the token stays valid
func (s *JWTService) GetRemainingTTL(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl < 0 {
		return 0
	}
	return ttl
}
