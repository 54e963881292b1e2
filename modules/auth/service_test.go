package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/example/recipe-share/domain/user"
	"golang.org/x/crypto/bcrypt"
)

func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	pool := startTestPool(t, 2)
	manager := NewJWTManager(testJWTConfig())
	return NewAuthService(NewMemoryUserStore(), pool, manager)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID != 1 {
		t.Errorf("ID = %d, want 1", user.ID)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("Role = %v, want user", user.Role)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Error("password was not hashed")
	}
	if strings.Contains(user.PasswordHash, "password123") {
		t.Error("password hash contains the plaintext password")
	}
}

func TestAuthService_RegisterRoles(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		requested string
		want      domain.Role
	}{
		{
			name:      "empty role defaults to user",
			requested: "",
			want:      domain.RoleUser,
		},
		{
			name:      "admin role is honored",
			requested: "admin",
			want:      domain.RoleAdmin,
		},
		{
			name:      "unknown role collapses to user",
			requested: "superuser",
			want:      domain.RoleUser,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := "user" + string(rune('a'+i)) + "@example.com"
			user, err := svc.Register(ctx, "User", email, "password123", tt.requested)
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.Role != tt.want {
				t.Errorf("Role = %v, want %v", user.Role, tt.want)
			}
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name, userName, email, password string
	}{
		{name: "missing name", email: "a@example.com", password: "pw"},
		{name: "missing email", userName: "Alice", password: "pw"},
		{name: "missing password", userName: "Alice", email: "a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password, "")
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, "Other", "alice@example.com", "password456", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, user, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Error("Login() returned empty token")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("user.Email = %q", user.Email)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("claims.Role = %v, want user", claims.Role)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			want:     ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpassword",
			want:     ErrInvalidCredentials,
		},
		{
			name:     "missing email",
			email:    "",
			password: "password123",
			want:     ErrMissingFields,
		},
		{
			name:     "missing password",
			email:    "alice@example.com",
			password: "",
			want:     ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("Login() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.ValidateToken(context.Background(), "garbage-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_GetUser(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q", user.Email)
	}

	if _, err := svc.GetUser(ctx, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ListUsersStripsHashes(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := svc.Register(ctx, "User", email, "password123", ""); err != nil {
			t.Fatalf("Register(%s) error = %v", email, err)
		}
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("user %d still carries a password hash", u.ID)
		}
	}
}

func TestAuthService_LoginVerifiesAgainstBcrypt(t *testing.T) {
	// The stored hash must be a real bcrypt hash, not some other digest.
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("stored hash is not a valid bcrypt hash: %v", err)
	}
}
