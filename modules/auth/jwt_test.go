package auth

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/recipe-share/domain/user"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey: "test-secret-key",
		TokenTTL:  TokenTTL,
		Issuer:    "test-issuer",
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:    123,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  domain.RoleUser,
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	u := testUser()

	before := time.Now()
	token, err := manager.Generate(u)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != u.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, u.ID)
	}
	if claims.Email != u.Email {
		t.Errorf("claims.Email = %v, want %v", claims.Email, u.Email)
	}
	if claims.Name != u.Name {
		t.Errorf("claims.Name = %v, want %v", claims.Name, u.Name)
	}
	if claims.Role != u.Role {
		t.Errorf("claims.Role = %v, want %v", claims.Role, u.Role)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}

	// Expiry is always issuance plus the fixed TTL.
	iat := claims.IssuedAt.Time
	exp := claims.ExpiresAt.Time
	if got := exp.Sub(iat); got != TokenTTL {
		t.Errorf("expiry - issuedAt = %v, want %v", got, TokenTTL)
	}
	if iat.Before(before.Add(-time.Second)) || iat.After(time.Now().Add(time.Second)) {
		t.Errorf("issuedAt %v outside issuance window", iat)
	}
}

func TestJWTManager_TokensUniquePerIssuance(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	u := testUser()

	token1, err := manager.Generate(u)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	token2, err := manager.Generate(u)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// The embedded jti keeps two tokens for the same claims distinct.
	if token1 == token2 {
		t.Error("two issuances produced identical tokens")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Fatal("Validate() should return error for invalid token")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	config1 := testJWTConfig()
	config2 := testJWTConfig()
	config2.SecretKey = "a-different-secret"

	manager1 := NewJWTManager(config1)
	manager2 := NewJWTManager(config2)

	token, err := manager1.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = manager2.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.TokenTTL = 1 * time.Millisecond
	manager := NewJWTManager(config)

	token, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestLoadJWTConfig(t *testing.T) {
	t.Run("missing secret fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadJWTConfig()
		if !errors.Is(err, ErrMissingSecret) {
			t.Errorf("expected ErrMissingSecret, got %v", err)
		}
	})

	t.Run("secret and defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "configured-secret")
		t.Setenv("JWT_ISSUER", "")

		config, err := LoadJWTConfig()
		if err != nil {
			t.Fatalf("LoadJWTConfig() error = %v", err)
		}
		if config.SecretKey != "configured-secret" {
			t.Errorf("SecretKey = %q", config.SecretKey)
		}
		if config.TokenTTL != TokenTTL {
			t.Errorf("TokenTTL = %v, want %v", config.TokenTTL, TokenTTL)
		}
		if config.Issuer != "recipe-share" {
			t.Errorf("Issuer = %q, want recipe-share", config.Issuer)
		}
	})
}
