package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mealcart/internal/recipe"
	"mealcart/internal/shoppinglist"
)

// Store defines the data operations the handlers depend on.
type Store interface {
	CreateRecipe(ctx context.Context, r *recipe.Recipe) error
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context, query string) ([]*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, r *recipe.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error

	CreatePlan(ctx context.Context, p *recipe.MealPlan) error
	GetPlan(ctx context.Context, id string) (*recipe.MealPlan, error)
	ListPlans(ctx context.Context) ([]*recipe.MealPlan, error)
	DeletePlan(ctx context.Context, id string) error
	GetPlanDayMarkups(ctx context.Context, planID string) ([]recipe.DayMarkup, error)

	AddExclusions(ctx context.Context, planID string, names []string) error
	GetExclusions(ctx context.Context, planID string) ([]string, error)

	SaveShoppingList(ctx context.Context, planID, content string) error
}

// Handler handles HTTP requests.
type Handler struct {
	Store   Store
	Builder *shoppinglist.Builder
}

// NewHandler creates a new Handler whose shopping-list builder reads
// exclusions from the same store.
func NewHandler(store Store) *Handler {
	return &Handler{Store: store, Builder: shoppinglist.NewBuilder(store)}
}

// Routes registers every endpoint on the router.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.POST("/recipes", h.CreateRecipe)
	r.GET("/recipes", h.ListRecipes)
	r.GET("/recipes/:id", h.GetRecipe)
	r.PUT("/recipes/:id", h.UpdateRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)

	r.POST("/plans", h.CreatePlan)
	r.GET("/plans", h.ListPlans)
	r.GET("/plans/:id", h.GetPlan)
	r.DELETE("/plans/:id", h.DeletePlan)

	r.GET("/plans/:id/shopping-list", h.BuildShoppingList)
	r.POST("/plans/:id/exclusions", h.AddExclusions)
	r.GET("/plans/:id/exclusions", h.GetExclusions)
}

func dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

// --- recipes ---

type recipeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Markup      string `json:"markup"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
}

// CreateRecipe handles recipe creation.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}
	if req.Name == "" {
		c.String(http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	r := &recipe.Recipe{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Markup:      req.Markup,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := h.Store.CreateRecipe(ctx, r); err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to create recipe: %s", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListRecipes handles recipe listing, with an optional name search via ?q=.
func (h *Handler) ListRecipes(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	recipes, err := h.Store.ListRecipes(ctx, c.Query("q"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	r, err := h.Store.GetRecipe(ctx, c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateRecipe handles recipe updates.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}
	if req.Name == "" {
		c.String(http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	r := &recipe.Recipe{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Markup:      req.Markup,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := h.Store.UpdateRecipe(ctx, r); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.String(http.StatusNotFound, "Recipe not found")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to update recipe: %s", err.Error()))
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteRecipe handles recipe deletion.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Store.DeleteRecipe(ctx, c.Param("id")); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.String(http.StatusNotFound, "Recipe not found")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to delete recipe: %s", err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// --- plans ---

type planDayRequest struct {
	Day      string `json:"day"`
	RecipeID string `json:"recipe_id"`
}

type planRequest struct {
	Name string           `json:"name"`
	Days []planDayRequest `json:"days"`
}

// CreatePlan handles saving a meal plan with its ordered day slots.
func (h *Handler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}
	if req.Name == "" {
		c.String(http.StatusBadRequest, "name is required")
		return
	}
	for _, d := range req.Days {
		if d.Day == "" {
			c.String(http.StatusBadRequest, "every day needs a label")
			return
		}
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	p := &recipe.MealPlan{ID: uuid.NewString(), Name: req.Name}
	for _, d := range req.Days {
		p.Days = append(p.Days, recipe.PlanDay{Day: d.Day, RecipeID: d.RecipeID})
	}
	if err := h.Store.CreatePlan(ctx, p); err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to create plan: %s", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPlans handles listing saved meal plans.
func (h *Handler) ListPlans(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	plans, err := h.Store.ListPlans(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if plans == nil {
		plans = []*recipe.MealPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan handles requests to retrieve a single plan with its day slots.
func (h *Handler) GetPlan(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Store.GetPlan(ctx, c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if p == nil {
		c.String(http.StatusNotFound, "Plan not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePlan handles meal-plan deletion.
func (h *Handler) DeletePlan(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Store.DeletePlan(ctx, c.Param("id")); err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.String(http.StatusNotFound, "Plan not found")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to delete plan: %s", err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// --- shopping list ---

// BuildShoppingList builds the consolidated shopping list for a plan,
// persists the formatted text, and returns both the entries and the text.
func (h *Handler) BuildShoppingList(c *gin.Context) {
	planID := c.Param("id")

	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Store.GetPlan(ctx, planID)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if p == nil {
		c.String(http.StatusNotFound, "Plan not found")
		return
	}

	dayMarkups, err := h.Store.GetPlanDayMarkups(ctx, planID)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	days := make([]shoppinglist.PlanDay, 0, len(dayMarkups))
	for _, d := range dayMarkups {
		days = append(days, shoppinglist.PlanDay{Day: d.Day, Markup: d.Markup})
	}

	entries, err := h.Builder.Build(ctx, planID, days)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to build shopping list: %s", err.Error()))
		return
	}

	content := shoppinglist.Render(entries)
	if err := h.Store.SaveShoppingList(ctx, planID, content); err != nil {
		// The list is still valid; persisting it is best-effort.
		log.Printf("failed to persist shopping list for plan %s: %s", planID, err.Error())
	}

	c.JSON(http.StatusOK, gin.H{
		"plan_id": planID,
		"entries": entries,
		"text":    content,
	})
}

// --- exclusions ---

type exclusionsRequest struct {
	Names []string `json:"names"`
}

// AddExclusions merges names into the plan's exclusion set and returns the
// updated set.
func (h *Handler) AddExclusions(c *gin.Context) {
	planID := c.Param("id")

	var req exclusionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Builder.Filter().AddExclusions(ctx, planID, req.Names); err != nil {
		if errors.Is(err, shoppinglist.ErrInvalidExclusion) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to add exclusions: %s", err.Error()))
		return
	}

	names, err := h.Builder.Filter().GetExclusions(ctx, planID)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": planID, "names": names})
}

// GetExclusions returns the plan's current exclusion set.
func (h *Handler) GetExclusions(c *gin.Context) {
	planID := c.Param("id")

	ctx, cancel := dbContext(c)
	defer cancel()

	names, err := h.Builder.Filter().GetExclusions(ctx, planID)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": planID, "names": names})
}
