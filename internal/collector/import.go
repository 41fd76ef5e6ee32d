package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pageza/myplate-diets/backend/internal/model"
)

// RecipeCreator classifies and stores a recipe
type RecipeCreator interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// ReadRecord decodes a record file written by BucketWriter
func ReadRecord(path string) (*model.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if rec.RecipeURL == "" {
		return nil, fmt.Errorf("%s has no recipe_url", path)
	}

	return &model.Recipe{
		Title:         rec.Title,
		RecipeURL:     rec.RecipeURL,
		ImageURL:      rec.ImageURL,
		Servings:      rec.Servings,
		Description:   rec.Description,
		Ingredients:   model.JSONBStringArray(rec.Ingredients),
		Instructions:  model.JSONBStringArray(rec.Instructions),
		NutritionInfo: model.JSONBStringMap(rec.NutritionInfo),
		Courses:       model.JSONBStringArray(rec.Courses),
		FoodGroups:    model.JSONBStringArray(rec.FoodGroups),
		Cuisines:      model.JSONBStringArray(rec.Cuisines),
	}, nil
}

// ImportRecords loads every record under both buckets of dir. Diets stored in
// the files are ignored and recomputed by the creator. Bad files are logged and
// skipped.
func ImportRecords(ctx context.Context, dir string, creator RecipeCreator) (int, error) {
	imported := 0
	for _, bucket := range []string{MeetRequirementsDir, OtherRecipesDir} {
		paths, err := filepath.Glob(filepath.Join(dir, bucket, "*.json"))
		if err != nil {
			return imported, err
		}
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return imported, err
			}
			recipe, err := ReadRecord(path)
			if err != nil {
				log.Printf("[Collector] Skipping %s: %v", path, err)
				continue
			}
			if _, err := creator.CreateRecipe(ctx, recipe); err != nil {
				return imported, fmt.Errorf("failed to import %s: %w", path, err)
			}
			imported++
		}
	}
	log.Printf("[Collector] Imported %d records from %s", imported, dir)
	return imported, nil
}
