package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/myplate-diets/backend/internal/diet"
	"github.com/pageza/myplate-diets/backend/internal/model"
	"github.com/pageza/myplate-diets/backend/internal/reference"
	"github.com/pageza/myplate-diets/backend/internal/types"
)

// IClassificationService defines the interface for diet classification
type IClassificationService interface {
	Classify(ctx context.Context, ingredients []string, nutrition map[string]string) diet.Result
	Reference() *reference.ReferenceData
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ClassifyRecipe(ctx context.Context, recipe *model.Recipe)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	SaveRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error)
	ReclassifyAll(ctx context.Context) (int, error)
}

// ITokenService defines the interface for issuing and validating client tokens
type ITokenService interface {
	GenerateToken(clientID string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
