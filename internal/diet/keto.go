package diet

const (
	kcalPerGramFat     = 9
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
)

// Keto bounds, as percent of reported total calories. All are exclusive.
const (
	ketoFatMin     = 54.0
	ketoFatMax     = 81.0
	ketoProteinMin = 14.0
	ketoProteinMax = 36.0
	ketoCarbMax    = 10.0
)

// Macros holds the parsed macronutrient amounts of a recipe.
type Macros struct {
	Calories     float64 `json:"calories"`
	FatGrams     float64 `json:"fat_grams"`
	ProteinGrams float64 `json:"protein_grams"`
	CarbGrams    float64 `json:"carb_grams"`
}

// ParseMacros reads calories, fat, protein and carbohydrates from a nutrition
// mapping. Reported calories must be positive.
func ParseMacros(nutrition map[string]string) (Macros, error) {
	var m Macros
	var err error

	if m.Calories, err = Quantity(nutrition, TotalCalories); err != nil {
		return Macros{}, err
	}
	if m.Calories <= 0 {
		return Macros{}, &MalformedNutritionValueError{Nutrient: TotalCalories, Value: nutrition[TotalCalories]}
	}
	if m.FatGrams, err = Quantity(nutrition, TotalFat); err != nil {
		return Macros{}, err
	}
	if m.ProteinGrams, err = Quantity(nutrition, Protein); err != nil {
		return Macros{}, err
	}
	if m.CarbGrams, err = Quantity(nutrition, Carbohydrates); err != nil {
		return Macros{}, err
	}
	return m, nil
}

// Percentages returns the share of reported calories contributed by fat,
// protein and carbohydrates. The reported total is authoritative even when it
// differs from the sum of the contributions.
func (m Macros) Percentages() (fat, protein, carbs float64) {
	// multiply before dividing so round figures stay exact (280*100/2000 == 14)
	fat = m.FatGrams * kcalPerGramFat * 100 / m.Calories
	protein = m.ProteinGrams * kcalPerGramProtein * 100 / m.Calories
	carbs = m.CarbGrams * kcalPerGramCarbs * 100 / m.Calories
	return fat, protein, carbs
}

// IsKeto reports whether the macronutrient split is ketogenic:
// 54 < fat% < 81, 14 < protein% < 36 and carbs% < 10.
func IsKeto(nutrition map[string]string) (bool, error) {
	m, err := ParseMacros(nutrition)
	if err != nil {
		return false, err
	}

	fat, protein, carbs := m.Percentages()
	return fat > ketoFatMin && fat < ketoFatMax &&
		protein > ketoProteinMin && protein < ketoProteinMax &&
		carbs < ketoCarbMax, nil
}
