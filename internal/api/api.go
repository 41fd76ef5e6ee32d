package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/internal/middleware"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

// Dependencies are the services the HTTP API is built on. ClassifyLimiter is
// optional.
type Dependencies struct {
	DB              *gorm.DB
	Classifier      service.IClassificationService
	Recipes         service.IRecipeService
	Tokens          middleware.TokenValidator
	ClassifyLimiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := NewHealthHandler(deps.DB)
	router.GET("/health", health.HealthCheck)

	v1 := router.Group("/api/v1")

	dietHandler := NewDietHandler(deps.Classifier)
	v1.GET("/diets", dietHandler.ListDiets)
	if deps.ClassifyLimiter != nil {
		v1.POST("/classify", deps.ClassifyLimiter.RateLimitMiddleware(), dietHandler.Classify)
	} else {
		v1.POST("/classify", dietHandler.Classify)
	}

	NewRecipeHandler(deps.Recipes, deps.Tokens).RegisterRoutes(v1)
}
