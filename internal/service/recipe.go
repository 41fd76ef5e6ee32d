package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/internal/model"
)

// ErrRecipeNotFound is returned when no recipe matches the given ID
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows ListRecipes. Empty fields are ignored.
type RecipeFilter struct {
	Diet              string
	MeetsRequirements *bool
	Course            string
	Cuisine           string
	FoodGroup         string
	Limit             int
	Offset            int
}

// RecipeService handles recipe persistence
type RecipeService struct {
	db         *gorm.DB
	classifier IClassificationService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, classifier IClassificationService) *RecipeService {
	return &RecipeService{
		db:         db,
		classifier: classifier,
	}
}

// ClassifyRecipe sets Diets and MeetsRequirements from the recipe's ingredients
// and nutrition facts
func (s *RecipeService) ClassifyRecipe(ctx context.Context, recipe *model.Recipe) {
	result := s.classifier.Classify(ctx, recipe.Ingredients, recipe.NutritionInfo)
	recipe.Diets = model.JSONBStringArray(result.Labels())
	recipe.MeetsRequirements = result.MeetsRequirements
}

// CreateRecipe classifies and stores a recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	s.ClassifyRecipe(ctx, recipe)
	return s.SaveRecipe(ctx, recipe)
}

// SaveRecipe stores a recipe as given. A recipe with the same URL, including a
// previously deleted one, is replaced in place.
func (s *RecipeService) SaveRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	db := s.db.WithContext(ctx)

	var existing model.Recipe
	err := db.Unscoped().Where("recipe_url = ?", recipe.RecipeURL).First(&existing).Error
	switch {
	case err == nil:
		recipe.ID = existing.ID
		recipe.CreatedAt = existing.CreatedAt
		recipe.DeletedAt = gorm.DeletedAt{}
		if err := db.Unscoped().Save(recipe).Error; err != nil {
			return nil, fmt.Errorf("failed to update recipe %s: %w", recipe.RecipeURL, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(recipe).Error; err != nil {
			return nil, fmt.Errorf("failed to create recipe %s: %w", recipe.RecipeURL, err)
		}
	default:
		return nil, fmt.Errorf("failed to look up recipe %s: %w", recipe.RecipeURL, err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// ListRecipes lists recipes matching the filter, ordered by title
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Order("title ASC")

	query = s.whereJSONContains(query, "diets", filter.Diet)
	query = s.whereJSONContains(query, "courses", filter.Course)
	query = s.whereJSONContains(query, "cuisines", filter.Cuisine)
	query = s.whereJSONContains(query, "food_groups", filter.FoodGroup)

	if filter.MeetsRequirements != nil {
		query = query.Where("meets_requirements = ?", *filter.MeetsRequirements)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// whereJSONContains matches an exact element of a JSONB string array column.
// The value is bound as a parameter, never spliced into a LIKE pattern.
func (s *RecipeService) whereJSONContains(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}
	if s.db.Dialector.Name() == "postgres" {
		element, _ := json.Marshal([]string{value})
		return query.Where(column+" @> ?::jsonb", string(element))
	}
	return query.Where("EXISTS (SELECT 1 FROM json_each("+column+") WHERE json_each.value = ?)", value)
}

// ReclassifyAll recomputes the classification of every stored recipe, for use
// after the reference lists change. It returns the number of recipes updated.
func (s *RecipeService) ReclassifyAll(ctx context.Context) (int, error) {
	updated := 0
	var batch []model.Recipe

	err := s.db.WithContext(ctx).FindInBatches(&batch, 100, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			recipe := &batch[i]
			diets, meets := slices.Clone(recipe.Diets), recipe.MeetsRequirements

			s.ClassifyRecipe(ctx, recipe)
			if slices.Equal(diets, recipe.Diets) && meets == recipe.MeetsRequirements {
				continue
			}

			if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
				"diets":              recipe.Diets,
				"meets_requirements": recipe.MeetsRequirements,
			}).Error; err != nil {
				return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
			}
			updated++
		}
		return nil
	}).Error
	if err != nil {
		return updated, err
	}

	log.Printf("[RecipeService] Reclassified %d recipes", updated)
	return updated, nil
}
