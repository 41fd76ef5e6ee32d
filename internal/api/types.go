package api

// ClassifyRequest is the body of POST /classify
type ClassifyRequest struct {
	Ingredients   []string          `json:"ingredients"`
	NutritionInfo map[string]string `json:"nutrition_info"`
}

// ClassifyResponse reports the diets of an ad-hoc recipe. Errors holds the
// nutrition rules that could not be evaluated.
type ClassifyResponse struct {
	Diets             []string          `json:"diets"`
	MeetsRequirements bool              `json:"meets_requirements"`
	Errors            map[string]string `json:"errors,omitempty"`
}

// DietInfo describes one diet label
type DietInfo struct {
	Diet     string   `json:"diet"`
	Excludes []string `json:"excludes,omitempty"`
	Rule     string   `json:"rule"`
}

// CreateRecipeRequest is the body of POST /recipes. Diets are always computed
// by the server.
type CreateRecipeRequest struct {
	Title         string            `json:"title" binding:"required"`
	RecipeURL     string            `json:"recipe_url" binding:"required,url"`
	ImageURL      string            `json:"image_url"`
	Servings      string            `json:"servings"`
	Description   string            `json:"description"`
	Ingredients   []string          `json:"ingredients"`
	Instructions  []string          `json:"instructions"`
	NutritionInfo map[string]string `json:"nutrition_info"`
	Courses       []string          `json:"courses"`
	FoodGroups    []string          `json:"food_groups"`
	Cuisines      []string          `json:"cuisines"`
}
