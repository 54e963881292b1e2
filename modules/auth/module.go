package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides registration, login and token verification services.
type AuthModule struct {
	db      *gorm.DB
	store   UserStore
	pool    *HashPool
	service *AuthService
	backend string
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule. STORE_BACKEND selects the user store:
// "memory" (default) or "sqlite" (path from AUTH_DB_PATH).
func NewModule() *AuthModule {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "memory"
	}
	dbPath := os.Getenv("AUTH_DB_PATH")
	if dbPath == "" {
		dbPath = "recipe_auth.db"
	}
	return &AuthModule{
		backend: backend,
		dbPath:  dbPath,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the user store, hash pool and token manager. It fails
// when no signing secret is configured.
func (m *AuthModule) Start(ctx context.Context) error {
	jwtConfig, err := LoadJWTConfig()
	if err != nil {
		return fmt.Errorf("auth module cannot start: %w", err)
	}

	switch m.backend {
	case "memory":
		m.store = NewMemoryUserStore()
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		m.db = db
		store, err := NewGormUserStore(db)
		if err != nil {
			return fmt.Errorf("failed to migrate user schema: %w", err)
		}
		m.store = store
	default:
		return fmt.Errorf("unknown store backend %q", m.backend)
	}

	m.pool = NewHashPool(NewPasswordHasher())
	if err := m.pool.Start(ctx, hashWorkers()); err != nil {
		return err
	}

	m.service = NewAuthService(m.store, m.pool, NewJWTManager(jwtConfig))

	log.Printf("[auth] Module started (store: %s)", m.backend)
	return nil
}

// Stop shuts down the hash pool and the database connection, if any.
func (m *AuthModule) Stop(ctx context.Context) error {
	if m.pool != nil {
		if err := m.pool.Stop(ctx); err != nil {
			log.Printf("[auth] Hash pool stop: %v", err)
		}
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("failed to get database connection: %v", err),
			}
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("database ping failed: %v", err),
			}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store": m.backend,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"register": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		},
		"login": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		},
		"validate-token": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		},
		"get-user": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser)
		},
		"list-users": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-users", json.Unmarshal, json.Marshal, m.handleListUsers)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, validate-token, get-user, list-users")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{User: user.Public()}, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, user, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: token, User: user.Public()}, nil
}

// handleValidateToken handles token validation. Verification failures are
// part of the response, not transport errors.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{Valid: false, Error: errMsg}, nil
	}
	return ValidateTokenResponse{Valid: true, Claims: claims}, nil
}

// handleGetUser handles get user requests.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}
	return GetUserResponse{User: user.Public()}, nil
}

// handleListUsers handles list users requests.
func (m *AuthModule) handleListUsers(ctx context.Context, _ ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.service.ListUsers(ctx)
	if err != nil {
		return ListUsersResponse{}, err
	}
	return ListUsersResponse{Users: users}, nil
}

func hashWorkers() int {
	if v := os.Getenv("AUTH_HASH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultHashWorkers
}
