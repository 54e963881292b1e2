package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	domain "github.com/example/recipe-share/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when the token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
	// ErrMissingSecret is returned at startup when no signing secret is
	// configured. There is deliberately no built-in fallback secret.
	ErrMissingSecret = errors.New("JWT_SECRET is not set")
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = 24 * time.Hour

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	SecretKey string
	TokenTTL  time.Duration
	Issuer    string
}

// LoadJWTConfig reads signing configuration from the environment. It fails
// when JWT_SECRET is absent: starting with a publicly known default secret
// would make every token forgeable.
func LoadJWTConfig() (JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return JWTConfig{}, ErrMissingSecret
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "recipe-share"
	}

	return JWTConfig{
		SecretKey: secret,
		TokenTTL:  TokenTTL,
		Issuer:    issuer,
	}, nil
}

// TokenClaims is the signed payload: the identity claims plus the
// registered time bounds.
type TokenClaims struct {
	UserID int64       `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts token claims back into a domain identity.
func (c *TokenClaims) Identity() domain.Claims {
	return domain.Claims{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   c.Role,
	}
}

// JWTManager issues and verifies HS256 bearer tokens.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{config: config}
}

// Generate mints a signed token for the given user. Expiry is always
// issuance time plus the configured TTL.
func (m *JWTManager) Generate(u *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   fmt.Sprintf("%d", u.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Validate checks the token signature and time bounds and returns the
// claims. Only HMAC-signed tokens are accepted; anything else, including
// unsigned tokens, is rejected.
func (m *JWTManager) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
