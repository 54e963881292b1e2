package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/recipe-share/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Port defines the interface other modules use to reach auth functionality.
type Port interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (domain.Claims, error)
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Adapter implements Port over the module's service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

// Register creates a new user account.
func (a *Adapter) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "register", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return RegisterResponse{}, fmt.Errorf("register request failed: %w", err)
	}
	return resp, nil
}

// Login authenticates a user and returns a token with the user record.
func (a *Adapter) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "login", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return LoginResponse{}, fmt.Errorf("login request failed: %w", err)
	}
	return resp, nil
}

// ValidateToken validates a bearer token and returns identity claims.
func (a *Adapter) ValidateToken(ctx context.Context, token string) (domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Claims{}, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return domain.Claims{}, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return resp.Claims, nil
}

// GetUser retrieves a user by ID, hash stripped.
func (a *Adapter) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.User{}, fmt.Errorf("get-user request failed: %w", err)
	}

	return resp.User, nil
}

// ListUsers retrieves all users, hashes stripped.
func (a *Adapter) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp ListUsersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-users", json.Marshal, json.Unmarshal, &ListUsersRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-users request failed: %w", err)
	}
	return resp.Users, nil
}
