package diet

const (
	MinDietaryFiberGrams = 5.0
	MaxSaturatedFatGrams = 5.0
)

// MeetsRequirements reports whether a recipe has at least 5 g of dietary fiber
// and at most 5 g of saturated fat.
func MeetsRequirements(nutrition map[string]string) (bool, error) {
	fiber, err := Quantity(nutrition, DietaryFiber)
	if err != nil {
		return false, err
	}
	saturated, err := Quantity(nutrition, SaturatedFat)
	if err != nil {
		return false, err
	}
	return fiber >= MinDietaryFiberGrams && saturated <= MaxSaturatedFatGrams, nil
}
