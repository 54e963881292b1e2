package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	domain "github.com/example/recipe-share/domain/user"
	"github.com/example/recipe-share/modules/auth"
	"github.com/example/recipe-share/modules/recipe"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// DefaultPort is the listen port when PORT is unset.
const DefaultPort = 5000

// APIModule is the HTTP API module.
type APIModule struct {
	app        *fiber.App
	authPort   auth.Port
	recipePort recipe.Port
	port       int
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule, reading the listen port from PORT.
func NewModule() *APIModule {
	port := DefaultPort
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "recipe"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAdapter(container)
	case "recipe":
		m.recipePort = recipe.NewAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil || m.recipePort == nil {
		return fmt.Errorf("auth/recipe dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(corsConfig()))

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authPort, m.recipePort)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := m.app.Group("/api")

	// Public routes
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Get("/recipes", handlers.ListRecipes)
	api.Get("/recipes/:id", handlers.GetRecipe)

	// Protected routes (require a verified identity)
	protected := api.Group("", AuthRequired(m.authPort))
	protected.Post("/recipes", handlers.CreateRecipe)
	protected.Put("/recipes/:id", handlers.UpdateRecipe)
	protected.Delete("/recipes/:id", handlers.DeleteRecipe)
	protected.Get("/profile", handlers.Profile)
	protected.Get("/admin/users", RequireRoles(domain.RoleAdmin), handlers.ListUsers)
}

// corsConfig honors CORS_ORIGIN when set, otherwise allows any origin.
func corsConfig() cors.Config {
	cfg := cors.ConfigDefault
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		cfg.AllowOrigins = origin
	}
	return cfg
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(MessageResponse{
		Message: message,
	})
}
