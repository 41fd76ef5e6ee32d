package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/myplate-diets/backend/internal/middleware"
	"github.com/pageza/myplate-diets/backend/internal/model"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

const maxPageSize = 200

type RecipeHandler struct {
	recipeService service.IRecipeService
	validator     middleware.TokenValidator
}

func NewRecipeHandler(recipeService service.IRecipeService, validator middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		protected := recipes.Group("", middleware.AuthMiddleware(h.validator))
		protected.POST("", h.CreateRecipe)
		protected.POST("/reclassify", h.ReclassifyRecipes)
		protected.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Diet:      c.Query("diet"),
		Course:    c.Query("course"),
		Cuisine:   c.Query("cuisine"),
		FoodGroup: c.Query("food_group"),
	}

	if v := c.Query("meets_requirements"); v != "" {
		meets, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "meets_requirements must be true or false"})
			return
		}
		filter.MeetsRequirements = &meets
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit", 50); err != nil || filter.Limit > maxPageSize || filter.Limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
		return
	}
	if filter.Offset, err = queryInt(c, "offset", 0); err != nil || filter.Offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[RecipeHandler] Failed to list recipes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] Failed to get recipe %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &model.Recipe{
		Title:         req.Title,
		RecipeURL:     req.RecipeURL,
		ImageURL:      req.ImageURL,
		Servings:      req.Servings,
		Description:   req.Description,
		Ingredients:   model.JSONBStringArray(req.Ingredients),
		Instructions:  model.JSONBStringArray(req.Instructions),
		NutritionInfo: model.JSONBStringMap(req.NutritionInfo),
		Courses:       model.JSONBStringArray(req.Courses),
		FoodGroups:    model.JSONBStringArray(req.FoodGroups),
		Cuisines:      model.JSONBStringArray(req.Cuisines),
	}

	saved, err := h.recipeService.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		log.Printf("[RecipeHandler] Failed to save recipe %s: %v", req.RecipeURL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	log.Printf("[RecipeHandler] Client %s saved recipe %s", c.GetString(middleware.ClientIDKey), saved.ID)
	c.JSON(http.StatusCreated, gin.H{"recipe": saved})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] Failed to delete recipe %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ReclassifyRecipes(c *gin.Context) {
	updated, err := h.recipeService.ReclassifyAll(c.Request.Context())
	if err != nil {
		log.Printf("[RecipeHandler] Reclassification failed after %d updates: %v", updated, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reclassify recipes", "updated": updated})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
