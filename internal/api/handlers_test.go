package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/myplate-diets/backend/internal/diet"
	"github.com/pageza/myplate-diets/backend/internal/mocks"
	"github.com/pageza/myplate-diets/backend/internal/service"
	"github.com/pageza/myplate-diets/backend/internal/testhelpers"
	"github.com/pageza/myplate-diets/backend/internal/types"
)

func setupMockRouter(t *testing.T) (*gin.Engine, *mocks.MockClassificationService, *mocks.MockRecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	classifier := new(mocks.MockClassificationService)
	recipes := new(mocks.MockRecipeService)
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", testToken).Return(&types.TokenClaims{ClientID: "collector-1"}, nil)

	router := gin.New()
	RegisterRoutes(router, Dependencies{
		DB:         testhelpers.SetupSQLite(t),
		Classifier: classifier,
		Recipes:    recipes,
		Tokens:     validator,
	})
	return router, classifier, recipes
}

func TestClassifyPassesInputThrough(t *testing.T) {
	router, classifier, _ := setupMockRouter(t)

	ingredients := []string{"1 cup oats"}
	nutrition := map[string]string{"Dietary Fiber": "8 g"}
	classifier.On("Classify", mock.Anything, ingredients, nutrition).
		Return(diet.Result{Diets: []diet.Diet{diet.Vegan}, MeetsRequirements: true})

	w := doJSON(t, router, http.MethodPost, "/api/v1/classify", ClassifyRequest{Ingredients: ingredients, NutritionInfo: nutrition}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"diets":["vegan"],"meets_requirements":true}`, w.Body.String())
	classifier.AssertExpectations(t)
}

func TestRecipeHandlerServiceErrors(t *testing.T) {
	router, _, recipes := setupMockRouter(t)
	id := uuid.New()
	boom := errors.New("database is down")

	recipes.On("ListRecipes", mock.Anything, mock.Anything).Return(nil, boom)
	recipes.On("GetRecipe", mock.Anything, id).Return(nil, boom)
	recipes.On("DeleteRecipe", mock.Anything, id).Return(boom)
	recipes.On("ReclassifyAll", mock.Anything).Return(3, boom)
	recipes.On("CreateRecipe", mock.Anything, mock.Anything).Return(nil, boom)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		token  string
	}{
		{"list", http.MethodGet, "/api/v1/recipes", nil, ""},
		{"get", http.MethodGet, "/api/v1/recipes/" + id.String(), nil, ""},
		{"delete", http.MethodDelete, "/api/v1/recipes/" + id.String(), nil, testToken},
		{"reclassify", http.MethodPost, "/api/v1/recipes/reclassify", nil, testToken},
		{"create", http.MethodPost, "/api/v1/recipes", CreateRecipeRequest{Title: "X", RecipeURL: "https://example.com/x"}, testToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body, tt.token)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.NotContains(t, w.Body.String(), "database is down")
		})
	}
}

func TestListRecipesParsesFilter(t *testing.T) {
	router, _, recipes := setupMockRouter(t)

	meets := true
	want := service.RecipeFilter{
		Diet:              "keto",
		MeetsRequirements: &meets,
		Course:            "Breakfast",
		Cuisine:           "Southern",
		FoodGroup:         "Dairy",
		Limit:             10,
		Offset:            20,
	}
	recipes.On("ListRecipes", mock.Anything, want).Return(nil, nil).Once()

	w := doJSON(t, router, http.MethodGet,
		"/api/v1/recipes?diet=keto&meets_requirements=true&course=Breakfast&cuisine=Southern&food_group=Dairy&limit=10&offset=20", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":null,"count":0}`, w.Body.String())
	recipes.AssertExpectations(t)
}
