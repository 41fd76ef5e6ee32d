package collector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/myplate-diets/backend/internal/model"
)

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Black Bean Soup":         "Black_Bean_Soup.json",
		"Salt/Pepper Rub":         "Salt_Pepper_Rub.json",
		"Mac & Cheese / Broccoli": "Mac_&_Cheese___Broccoli.json",
	}
	for title, want := range tests {
		assert.Equal(t, want, FileName(title), title)
	}
}

func TestBucketWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBucketWriter(dir)
	require.NoError(t, err)

	meets := &model.Recipe{
		Title:             "Lentil Salad",
		RecipeURL:         "https://www.myplate.gov/recipes/lentil-salad",
		Ingredients:       model.JSONBStringArray{"1 cup lentils"},
		NutritionInfo:     model.JSONBStringMap{"Dietary Fiber": "9 g"},
		Diets:             model.JSONBStringArray{"vegan"},
		MeetsRequirements: true,
	}
	path, err := w.Write(meets)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, MeetRequirementsDir, "Lentil_Salad.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "https://www.myplate.gov/recipes/lentil-salad", record["recipe_url"])
	assert.Equal(t, []interface{}{}, record["courses"])
	assert.Equal(t, []interface{}{"vegan"}, record["diets"])
	assert.NotContains(t, record, "id")
	assert.Contains(t, string(data), "\n  \"title\": \"Lentil Salad\"")

	other := &model.Recipe{Title: "Fried Dough", RecipeURL: "https://www.myplate.gov/recipes/fried-dough"}
	path, err = w.Write(other)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OtherRecipesDir, "Fried_Dough.json"), path)
}
