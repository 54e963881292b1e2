package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/recipe-share/domain/user"
)

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so a caller cannot probe which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingFields is returned when a required registration or login
	// field is absent.
	ErrMissingFields = errors.New("all fields are required")
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	store  UserStore
	hashes *HashPool
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, hashes *HashPool, jwt *JWTManager) *AuthService {
	return &AuthService{
		store:  store,
		hashes: hashes,
		jwt:    jwt,
	}
}

// Register creates a new user account. The client may request the admin
// role; any other requested role collapses to "user".
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	passwordHash, err := s.hashes.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(name, email, passwordHash, domain.ParseRole(role))
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed bearer token together
// with the user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.hashes.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// ValidateToken verifies a bearer token and returns the identity claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return domain.Claims{}, err
	}
	return claims.Identity(), nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, id int64) (*domain.User, error) {
	return s.store.FindByID(id)
}

// ListUsers returns all users with their password hashes stripped.
func (s *AuthService) ListUsers(_ context.Context) ([]domain.User, error) {
	users, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
