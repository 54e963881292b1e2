package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/recipe-share/domain/recipe"
	"github.com/example/recipe-share/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Port defines the interface other modules use to reach recipe services.
type Port interface {
	Create(ctx context.Context, identity user.Claims, input CreateInput) (domain.Recipe, error)
	Get(ctx context.Context, id int64) (domain.Recipe, error)
	List(ctx context.Context) ([]*domain.Recipe, error)
	Update(ctx context.Context, identity user.Claims, id int64, input UpdateInput) (domain.Recipe, error)
	Delete(ctx context.Context, identity user.Claims, id int64) error
}

// Adapter implements Port over the module's service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

// Create stores a new recipe owned by the acting identity.
func (a *Adapter) Create(ctx context.Context, identity user.Claims, input CreateInput) (domain.Recipe, error) {
	req := CreateRecipeRequest{Identity: identity, Input: input}
	var resp CreateRecipeResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Recipe{}, fmt.Errorf("create request failed: %w", err)
	}
	return resp.Recipe, nil
}

// Get retrieves a single recipe.
func (a *Adapter) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	req := GetRecipeRequest{ID: id}
	var resp GetRecipeResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Recipe{}, fmt.Errorf("get request failed: %w", err)
	}
	return resp.Recipe, nil
}

// List retrieves all recipes.
func (a *Adapter) List(ctx context.Context) ([]*domain.Recipe, error) {
	var resp ListRecipesResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &ListRecipesRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	return resp.Recipes, nil
}

// Update applies a partial update on behalf of the acting identity.
func (a *Adapter) Update(ctx context.Context, identity user.Claims, id int64, input UpdateInput) (domain.Recipe, error) {
	req := UpdateRecipeRequest{Identity: identity, ID: id, Input: input}
	var resp UpdateRecipeResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.Recipe{}, fmt.Errorf("update request failed: %w", err)
	}
	return resp.Recipe, nil
}

// Delete removes a recipe on behalf of the acting identity.
func (a *Adapter) Delete(ctx context.Context, identity user.Claims, id int64) error {
	req := DeleteRecipeRequest{Identity: identity, ID: id}
	var resp DeleteRecipeResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}
