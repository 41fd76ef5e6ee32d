package testhelpers

import "github.com/pageza/myplate-diets/backend/internal/reference"

// Reference returns a small, fixed set of reference lists for tests.
func Reference() *reference.ReferenceData {
	return reference.New(map[reference.Category][]string{
		reference.RedMeat: {"beef", "pork", "chicken", "turkey"},
		reference.Seafood: {"shrimp", "salmon", "tuna"},
		reference.Eggs:    {"egg"},
		reference.Dairy:   {"milk", "cheese", "butter", "yogurt"},
		reference.Gluten:  {"wheat", "flour", "pasta"},
		reference.Nuts:    {"almond", "peanut", "walnut"},
	})
}
