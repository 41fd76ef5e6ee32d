package diet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Nutrient labels as they appear in the MyPlate nutrition table.
const (
	TotalCalories = "Total Calories"
	TotalFat      = "Total Fat"
	Protein       = "Protein"
	Carbohydrates = "Carbohydrates"
	DietaryFiber  = "Dietary Fiber"
	SaturatedFat  = "Saturated Fat"
)

// MissingNutrientError is returned when a required nutrient label is absent.
// It only affects the recipe being classified.
type MissingNutrientError struct {
	Nutrient string
}

func (e *MissingNutrientError) Error() string {
	return fmt.Sprintf("missing nutrient %q", e.Nutrient)
}

// MalformedNutritionValueError is returned when the leading token of a
// nutrient value is not a usable number.
type MalformedNutritionValueError struct {
	Nutrient string
	Value    string
	Err      error
}

func (e *MalformedNutritionValueError) Error() string {
	return fmt.Sprintf("malformed value %q for nutrient %q", e.Value, e.Nutrient)
}

func (e *MalformedNutritionValueError) Unwrap() error {
	return e.Err
}

// Quantity returns the leading numeric token of a nutrient value, so "12 g"
// yields 12 and "4.5 g" yields 4.5. The unit suffix is ignored.
func Quantity(nutrition map[string]string, nutrient string) (float64, error) {
	value, ok := nutrition[nutrient]
	if !ok {
		return 0, &MissingNutrientError{Nutrient: nutrient}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, &MalformedNutritionValueError{Nutrient: nutrient, Value: value}
	}

	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &MalformedNutritionValueError{Nutrient: nutrient, Value: value, Err: err}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, &MalformedNutritionValueError{Nutrient: nutrient, Value: value}
	}
	return n, nil
}
