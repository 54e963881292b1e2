package api

import (
	"log"
	"strconv"
	"strings"

	domain "github.com/example/recipe-share/domain/user"
	"github.com/example/recipe-share/modules/auth"
	"github.com/example/recipe-share/modules/recipe"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth    auth.Port
	recipes recipe.Port
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.Port, recipePort recipe.Port) *Handlers {
	return &Handlers{
		auth:    authPort,
		recipes: recipePort,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "All fields are required",
		})
	}

	resp, err := h.auth.Register(c.UserContext(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		Message: "User registered successfully",
		User:    userPayload(resp.User),
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Email and password are required",
		})
	}

	resp, err := h.auth.Login(c.UserContext(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message: "Login successful",
		Token:   resp.Token,
		User:    userPayload(resp.User),
	})
}

// Profile returns the authenticated user's own record.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Access token required",
		})
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "user not found") {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "User not found",
			})
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(userPayload(user))
}

// ListUsers returns all registered users, hashes stripped. Admin only;
// debug surface, no pagination.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}

	payload := make([]UserPayload, 0, len(users))
	for _, u := range users {
		payload = append(payload, userPayload(u))
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// ListRecipes returns all recipes. Public.
func (h *Handlers) ListRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipes.List(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(recipes)
}

// GetRecipe returns a single recipe by id. Public.
func (h *Handlers) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Recipe not found",
		})
	}

	r, err := h.recipes.Get(c.UserContext(), id)
	if err != nil {
		return h.handleRecipeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(r)
}

// CreateRecipe creates a recipe owned by the authenticated user.
func (h *Handlers) CreateRecipe(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Access token required",
		})
	}

	var input recipe.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	r, err := h.recipes.Create(c.UserContext(), claims, input)
	if err != nil {
		return h.handleRecipeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// UpdateRecipe applies a partial update to a recipe the authenticated user
// may mutate.
func (h *Handlers) UpdateRecipe(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Access token required",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Recipe not found",
		})
	}

	var input recipe.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	r, err := h.recipes.Update(c.UserContext(), claims, id, input)
	if err != nil {
		return h.handleRecipeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(r)
}

// DeleteRecipe removes a recipe the authenticated user may mutate.
func (h *Handlers) DeleteRecipe(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Access token required",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Recipe not found",
		})
	}

	if err := h.recipes.Delete(c.UserContext(), claims, id); err != nil {
		return h.handleRecipeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Recipe deleted successfully",
	})
}

// parseID extracts the numeric id path parameter.
func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// handleAuthError maps auth service failures to responses. Errors cross
// the service container as messages, so mapping is by stable message text.
// Unknown-email and wrong-password deliberately share one response.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "all fields are required"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "All fields are required",
		})
	case strings.Contains(errStr, "email already in use"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Email already in use",
		})
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Password must be at most 72 bytes",
		})
	default:
		return h.internalError(c, err)
	}
}

// handleRecipeError maps recipe service failures to responses.
func (h *Handlers) handleRecipeError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "required fields missing"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Required fields missing",
		})
	case strings.Contains(errStr, "recipe not found"):
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Recipe not found",
		})
	case strings.Contains(errStr, "only modify your own"):
		return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
			Message: "You can only modify your own recipes",
		})
	default:
		return h.internalError(c, err)
	}
}

// internalError logs the real error and returns a generic 500 body.
func (h *Handlers) internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
		Message: "An internal error occurred",
	})
}
