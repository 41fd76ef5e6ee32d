package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pageza/myplate-diets/backend/internal/model"
)

const (
	MeetRequirementsDir = "meet_requirements_recipes"
	OtherRecipesDir     = "other_recipes"
)

// Record is the JSON document written for each recipe
type Record struct {
	Title             string            `json:"title"`
	RecipeURL         string            `json:"recipe_url"`
	ImageURL          string            `json:"image_url"`
	Servings          string            `json:"servings"`
	Description       string            `json:"description"`
	Ingredients       []string          `json:"ingredients"`
	Instructions      []string          `json:"instructions"`
	NutritionInfo     map[string]string `json:"nutrition_info"`
	Courses           []string          `json:"courses"`
	FoodGroups        []string          `json:"food_groups"`
	Cuisines          []string          `json:"cuisines"`
	Diets             []string          `json:"diets"`
	MeetsRequirements bool              `json:"meets_requirements"`
}

func newRecord(r *model.Recipe) Record {
	return Record{
		Title:             r.Title,
		RecipeURL:         r.RecipeURL,
		ImageURL:          r.ImageURL,
		Servings:          r.Servings,
		Description:       r.Description,
		Ingredients:       nonNil(r.Ingredients),
		Instructions:      nonNil(r.Instructions),
		NutritionInfo:     r.NutritionInfo,
		Courses:           nonNil(r.Courses),
		FoodGroups:        nonNil(r.FoodGroups),
		Cuisines:          nonNil(r.Cuisines),
		Diets:             nonNil(r.Diets),
		MeetsRequirements: r.MeetsRequirements,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// BucketWriter stores recipe records as indented JSON files, split by whether
// they meet the fiber and saturated fat requirements.
type BucketWriter struct {
	dir string
}

// NewBucketWriter creates both bucket directories under dir
func NewBucketWriter(dir string) (*BucketWriter, error) {
	for _, bucket := range []string{MeetRequirementsDir, OtherRecipesDir} {
		if err := os.MkdirAll(filepath.Join(dir, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &BucketWriter{dir: dir}, nil
}

// Write stores the recipe and returns the file path
func (w *BucketWriter) Write(recipe *model.Recipe) (string, error) {
	bucket := OtherRecipesDir
	if recipe.MeetsRequirements {
		bucket = MeetRequirementsDir
	}
	path := filepath.Join(w.dir, bucket, FileName(recipe.Title))

	data, err := json.MarshalIndent(newRecord(recipe), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", recipe.Title, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// FileName turns a recipe title into its record file name
func FileName(title string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(title) + ".json"
}
