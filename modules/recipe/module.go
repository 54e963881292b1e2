package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	domain "github.com/example/recipe-share/domain/recipe"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RecipeModule provides recipe CRUD services.
type RecipeModule struct {
	db      *gorm.DB
	store   Store
	service *Service
	backend string
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*RecipeModule)(nil)
var _ mono.ServiceProviderModule = (*RecipeModule)(nil)
var _ mono.HealthCheckableModule = (*RecipeModule)(nil)

// NewModule creates a new RecipeModule. STORE_BACKEND selects the store:
// "memory" (default) or "sqlite" (path from RECIPE_DB_PATH).
func NewModule() *RecipeModule {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "memory"
	}
	dbPath := os.Getenv("RECIPE_DB_PATH")
	if dbPath == "" {
		dbPath = "recipes.db"
	}
	return &RecipeModule{
		backend: backend,
		dbPath:  dbPath,
	}
}

// Name returns the module name.
func (m *RecipeModule) Name() string {
	return "recipe"
}

// SetCache attaches the read cache to the recipe service. Called from
// main after all modules have started.
func (m *RecipeModule) SetCache(c Cacher) {
	if m.service != nil {
		m.service.SetCache(c)
	}
}

// Start initializes the recipe store and seeds sample data.
func (m *RecipeModule) Start(_ context.Context) error {
	switch m.backend {
	case "memory":
		m.store = NewMemoryStore()
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		m.db = db
		store, err := NewGormStore(db)
		if err != nil {
			return fmt.Errorf("failed to migrate recipe schema: %w", err)
		}
		m.store = store
	default:
		return fmt.Errorf("unknown store backend %q", m.backend)
	}

	if err := seed(m.store); err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}

	m.service = NewService(m.store)

	log.Printf("[recipe] Module started (store: %s)", m.backend)
	return nil
}

// Stop shuts down the database connection, if any.
func (m *RecipeModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[recipe] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *RecipeModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *RecipeModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"create": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"get": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list", json.Unmarshal, json.Marshal, m.handleList)
		},
		"update": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"delete": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[recipe] Registered services: create, get, list, update, delete")
	return nil
}

func (m *RecipeModule) handleCreate(ctx context.Context, req CreateRecipeRequest, _ *mono.Msg) (CreateRecipeResponse, error) {
	r, err := m.service.Create(ctx, req.Identity, req.Input)
	if err != nil {
		return CreateRecipeResponse{}, err
	}
	return CreateRecipeResponse{Recipe: *r}, nil
}

func (m *RecipeModule) handleGet(ctx context.Context, req GetRecipeRequest, _ *mono.Msg) (GetRecipeResponse, error) {
	r, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return GetRecipeResponse{}, err
	}
	return GetRecipeResponse{Recipe: *r}, nil
}

func (m *RecipeModule) handleList(ctx context.Context, _ ListRecipesRequest, _ *mono.Msg) (ListRecipesResponse, error) {
	recipes, err := m.service.List(ctx)
	if err != nil {
		return ListRecipesResponse{}, err
	}
	return ListRecipesResponse{Recipes: recipes}, nil
}

func (m *RecipeModule) handleUpdate(ctx context.Context, req UpdateRecipeRequest, _ *mono.Msg) (UpdateRecipeResponse, error) {
	r, err := m.service.Update(ctx, req.Identity, req.ID, req.Input)
	if err != nil {
		return UpdateRecipeResponse{}, err
	}
	return UpdateRecipeResponse{Recipe: *r}, nil
}

func (m *RecipeModule) handleDelete(ctx context.Context, req DeleteRecipeRequest, _ *mono.Msg) (DeleteRecipeResponse, error) {
	if err := m.service.Delete(ctx, req.Identity, req.ID); err != nil {
		return DeleteRecipeResponse{}, err
	}
	return DeleteRecipeResponse{Deleted: true}, nil
}

// seed inserts the two sample recipes into an empty store. Seeded recipes
// are system-owned, so only admins can change them.
func seed(store Store) error {
	count, err := store.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	samples := []*domain.Recipe{
		{
			Title:        "Classic Pancakes",
			Description:  "Fluffy homemade pancakes perfect for breakfast",
			Ingredients:  domain.StringList{"2 cups flour", "2 eggs", "1.5 cups milk", "2 tbsp sugar", "2 tsp baking powder"},
			Instructions: "Mix dry ingredients. Add wet ingredients. Cook on griddle until golden brown.",
			CookingTime:  20,
			Difficulty:   "Easy",
			Category:     "Breakfast",
			CreatedBy:    domain.SystemOwner(),
			CreatedAt:    now,
		},
		{
			Title:        "Vegetable Stir Fry",
			Description:  "Quick and healthy vegetable stir fry",
			Ingredients:  domain.StringList{"2 cups mixed vegetables", "2 tbsp soy sauce", "1 tbsp oil", "2 cloves garlic", "1 tsp ginger"},
			Instructions: "Heat oil, add garlic and ginger. Add vegetables and stir fry. Add soy sauce and serve.",
			CookingTime:  15,
			Difficulty:   "Easy",
			Category:     "Lunch",
			CreatedBy:    domain.SystemOwner(),
			CreatedAt:    now,
		},
	}

	for _, r := range samples {
		if _, err := store.Create(r); err != nil {
			return err
		}
	}

	log.Printf("[recipe] Seeded %d sample recipes", len(samples))
	return nil
}
