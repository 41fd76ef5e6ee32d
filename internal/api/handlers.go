package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/internal/database"
	"github.com/pageza/myplate-diets/backend/internal/diet"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

// HealthHandler reports whether the API and its database are up
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "MyPlate diets API is running",
	})
}

// DietHandler serves the diet catalogue and ad-hoc classification
type DietHandler struct {
	classifier service.IClassificationService
}

func NewDietHandler(classifier service.IClassificationService) *DietHandler {
	return &DietHandler{classifier: classifier}
}

// ListDiets returns every diet label with the categories it excludes
func (h *DietHandler) ListDiets(c *gin.Context) {
	diets := make([]DietInfo, 0, len(diet.Rules())+1)
	for _, rule := range diet.Rules() {
		excludes := make([]string, len(rule.Excluded))
		for i, cat := range rule.Excluded {
			excludes[i] = string(cat)
		}
		diets = append(diets, DietInfo{Diet: string(rule.Diet), Excludes: excludes, Rule: "ingredients"})
	}
	diets = append(diets, DietInfo{Diet: string(diet.Keto), Rule: "macronutrients"})

	c.JSON(http.StatusOK, gin.H{
		"diets":                 diets,
		"reference_fingerprint": h.classifier.Reference().Fingerprint(),
	})
}

// Classify classifies a recipe without storing it
func (h *DietHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.classifier.Classify(c.Request.Context(), req.Ingredients, req.NutritionInfo)
	resp := ClassifyResponse{
		Diets:             result.Labels(),
		MeetsRequirements: result.MeetsRequirements,
	}
	if errs := result.Errors(); len(errs) > 0 {
		resp.Errors = errs
	}
	c.JSON(http.StatusOK, resp)
}
