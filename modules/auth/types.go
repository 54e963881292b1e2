package auth

import (
	domain "github.com/example/recipe-share/domain/user"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// RegisterResponse represents a user registration response. The password
// hash is stripped by the User JSON mapping.
type RegisterResponse struct {
	User domain.User `json:"user"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login: the bearer token plus the
// public user record.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response. Validation
// failures travel in Error rather than as a transport error.
type ValidateTokenResponse struct {
	Valid  bool          `json:"valid"`
	Claims domain.Claims `json:"claims,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID int64 `json:"userId"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	User domain.User `json:"user"`
}

// ListUsersRequest represents a list users request.
type ListUsersRequest struct{}

// ListUsersResponse represents a list users response, hashes stripped.
type ListUsersResponse struct {
	Users []domain.User `json:"users"`
}
