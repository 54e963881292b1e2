package recipe

import (
	domain "github.com/example/recipe-share/domain/recipe"
	"github.com/example/recipe-share/domain/user"
)

// CreateRecipeRequest carries the verified identity attached by the HTTP
// layer together with the submitted fields. Handlers never re-verify the
// token; the identity here is already trusted.
type CreateRecipeRequest struct {
	Identity user.Claims `json:"identity"`
	Input    CreateInput `json:"input"`
}

// CreateRecipeResponse represents a created recipe.
type CreateRecipeResponse struct {
	Recipe domain.Recipe `json:"recipe"`
}

// GetRecipeRequest represents a get recipe request.
type GetRecipeRequest struct {
	ID int64 `json:"id"`
}

// GetRecipeResponse represents a get recipe response.
type GetRecipeResponse struct {
	Recipe domain.Recipe `json:"recipe"`
}

// ListRecipesRequest represents a list recipes request.
type ListRecipesRequest struct{}

// ListRecipesResponse represents a list recipes response.
type ListRecipesResponse struct {
	Recipes []*domain.Recipe `json:"recipes"`
}

// UpdateRecipeRequest represents an authorized partial update.
type UpdateRecipeRequest struct {
	Identity user.Claims `json:"identity"`
	ID       int64       `json:"id"`
	Input    UpdateInput `json:"input"`
}

// UpdateRecipeResponse represents the updated recipe.
type UpdateRecipeResponse struct {
	Recipe domain.Recipe `json:"recipe"`
}

// DeleteRecipeRequest represents an authorized delete.
type DeleteRecipeRequest struct {
	Identity user.Claims `json:"identity"`
	ID       int64       `json:"id"`
}

// DeleteRecipeResponse represents a delete acknowledgement.
type DeleteRecipeResponse struct {
	Deleted bool `json:"deleted"`
}
