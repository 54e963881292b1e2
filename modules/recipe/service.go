package recipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	domain "github.com/example/recipe-share/domain/recipe"
	"github.com/example/recipe-share/domain/user"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrForbidden is returned when the acting identity may not mutate the
	// recipe. Update and delete share this check.
	ErrForbidden = errors.New("you can only modify your own recipes")
	// ErrMissingFields is returned when a required creation field is absent.
	ErrMissingFields = errors.New("required fields missing")
)

const listCacheKey = "all"

func recipeCacheKey(id int64) string {
	return "id:" + strconv.FormatInt(id, 10)
}

// Cacher is the read-cache surface the service needs. A nil Cacher
// disables caching entirely; cache failures are logged and never fail a
// request.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// CreateInput carries the fields a client may submit when creating a
// recipe. Ingredients accepts a bare string or a list.
type CreateInput struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Ingredients  domain.StringList `json:"ingredients"`
	Instructions string            `json:"instructions"`
	CookingTime  int               `json:"cookingTime"`
	Difficulty   string            `json:"difficulty"`
	Category     string            `json:"category"`
}

// UpdateInput carries a partial update. Nil fields are left untouched.
// id, createdBy and createdAt have no input fields at all: they are
// immutable no matter what the request body contains.
type UpdateInput struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Ingredients  *domain.StringList `json:"ingredients"`
	Instructions *string            `json:"instructions"`
	CookingTime  *int               `json:"cookingTime"`
	Difficulty   *string            `json:"difficulty"`
	Category     *string            `json:"category"`
}

// Service orchestrates recipe reads and authorized mutations.
type Service struct {
	store Store
	cache Cacher
	group singleflight.Group
}

// NewService creates a new Service without a cache.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SetCache attaches a read cache. Wired after module start, following the
// cache module's late-binding lifecycle.
func (s *Service) SetCache(c Cacher) {
	s.cache = c
}

// Create validates input, applies defaults and stores a new recipe owned
// by the acting identity.
func (s *Service) Create(ctx context.Context, identity user.Claims, input CreateInput) (*domain.Recipe, error) {
	if input.Title == "" || input.Description == "" || len(input.Ingredients) == 0 || input.Instructions == "" {
		return nil, ErrMissingFields
	}

	cookingTime := input.CookingTime
	if cookingTime == 0 {
		cookingTime = domain.DefaultCookingTime
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = domain.DefaultDifficulty
	}
	category := input.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	r := &domain.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		CookingTime:  cookingTime,
		Difficulty:   difficulty,
		Category:     category,
		CreatedBy:    domain.UserOwner(identity.UserID),
		CreatedAt:    time.Now(),
	}

	created, err := s.store.Create(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.invalidate(ctx, created.ID)
	return created, nil
}

// Get returns a single recipe. No identity is required for reads.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	if s.cache != nil {
		var cached domain.Recipe
		found, err := s.cache.Get(ctx, recipeCacheKey(id), &cached)
		if err != nil {
			log.Printf("[recipe] Cache get: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	// Collapse concurrent misses for the same id into one store read.
	v, err, _ := s.group.Do(recipeCacheKey(id), func() (any, error) {
		r, err := s.store.FindByID(id)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, recipeCacheKey(id), r); err != nil {
				log.Printf("[recipe] Cache set: %v", err)
			}
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Recipe), nil
}

// List returns all recipes in creation order.
func (s *Service) List(ctx context.Context) ([]*domain.Recipe, error) {
	if s.cache != nil {
		var cached []*domain.Recipe
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			log.Printf("[recipe] Cache get: %v", err)
		} else if found {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(listCacheKey, func() (any, error) {
		recipes, err := s.store.FindAll()
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, listCacheKey, recipes); err != nil {
				log.Printf("[recipe] Cache set: %v", err)
			}
		}
		return recipes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Recipe), nil
}

// Update merges the submitted fields over the stored recipe. The acting
// identity must own the recipe or hold the admin role. ID, owner and
// creation time survive unchanged.
func (s *Service) Update(ctx context.Context, identity user.Claims, id int64, input UpdateInput) (*domain.Recipe, error) {
	r, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(identity.UserID, identity.Role, r.CreatedBy) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		r.Title = *input.Title
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.Ingredients != nil {
		r.Ingredients = *input.Ingredients
	}
	if input.Instructions != nil {
		r.Instructions = *input.Instructions
	}
	if input.CookingTime != nil {
		r.CookingTime = *input.CookingTime
	}
	if input.Difficulty != nil {
		r.Difficulty = *input.Difficulty
	}
	if input.Category != nil {
		r.Category = *input.Category
	}
	now := time.Now()
	r.UpdatedAt = &now

	if err := s.store.Save(r); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return r, nil
}

// Delete removes a recipe entirely. Same ownership semantics as Update;
// deleting an already-deleted id reports not found.
func (s *Service) Delete(ctx context.Context, identity user.Claims, id int64) error {
	r, err := s.store.FindByID(id)
	if err != nil {
		return err
	}

	if !domain.CanMutate(identity.UserID, identity.Role, r.CreatedBy) {
		return ErrForbidden
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the cached entry and the cached list after a mutation.
func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recipeCacheKey(id)); err != nil {
		log.Printf("[recipe] Cache invalidate: %v", err)
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		log.Printf("[recipe] Cache invalidate: %v", err)
	}
}
