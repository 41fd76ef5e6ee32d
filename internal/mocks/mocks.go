package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/myplate-diets/backend/internal/diet"
	"github.com/pageza/myplate-diets/backend/internal/model"
	"github.com/pageza/myplate-diets/backend/internal/reference"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

// MockClassificationService is a mock implementation of the classification service
type MockClassificationService struct {
	mock.Mock
}

func (m *MockClassificationService) Classify(ctx context.Context, ingredients []string, nutrition map[string]string) diet.Result {
	args := m.Called(ctx, ingredients, nutrition)
	return args.Get(0).(diet.Result)
}

func (m *MockClassificationService) Reference() *reference.ReferenceData {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*reference.ReferenceData)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ClassifyRecipe(ctx context.Context, recipe *model.Recipe) {
	m.Called(ctx, recipe)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) SaveRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter service.RecipeFilter) ([]*model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) ReclassifyAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var (
	_ service.IClassificationService = (*MockClassificationService)(nil)
	_ service.IRecipeService         = (*MockRecipeService)(nil)
)
