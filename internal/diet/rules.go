// Package diet classifies recipes against dietary restrictions.
//
// Ingredient rules are substring matches: an ingredient line fails a rule when
// any phrase of an excluded reference category appears anywhere in the
// lowercased line. This is deliberately permissive, so "cheese" catches
// "cheddar cheese", and it also means "egg" matches "eggplant". That false
// positive is accepted; switching to whole-word matching would change results.
package diet

import (
	"slices"
	"strings"

	"github.com/pageza/myplate-diets/backend/internal/reference"
)

// Diet is a label applied to a recipe.
type Diet string

const (
	GlutenFree  Diet = "gluten_free"
	Vegetarian  Diet = "vegetarian"
	Vegan       Diet = "vegan"
	Pescetarian Diet = "pescetarian"
	DairyFree   Diet = "dairy_free"
	SeafoodFree Diet = "seafood_free"
	NutFree     Diet = "nut_free"
	Keto        Diet = "keto"
)

// Rule maps a diet to the reference categories it excludes.
type Rule struct {
	Diet     Diet                 `json:"diet"`
	Excluded []reference.Category `json:"excluded_categories"`
}

var exclusionRules = []Rule{
	{Diet: GlutenFree, Excluded: []reference.Category{reference.Gluten}},
	{Diet: Vegetarian, Excluded: []reference.Category{reference.Seafood, reference.RedMeat}},
	{Diet: Vegan, Excluded: []reference.Category{reference.Seafood, reference.RedMeat, reference.Eggs, reference.Dairy}},
	{Diet: Pescetarian, Excluded: []reference.Category{reference.RedMeat, reference.Dairy}},
	{Diet: DairyFree, Excluded: []reference.Category{reference.Dairy}},
	{Diet: SeafoodFree, Excluded: []reference.Category{reference.Seafood}},
	{Diet: NutFree, Excluded: []reference.Category{reference.Nuts}},
}

// Rules returns the ingredient exclusion rules in classification order.
func Rules() []Rule {
	out := make([]Rule, len(exclusionRules))
	for i, r := range exclusionRules {
		out[i] = Rule{Diet: r.Diet, Excluded: slices.Clone(r.Excluded)}
	}
	return out
}

// ExcludedCategories returns the categories a diet excludes, or nil for diets
// that are not ingredient rules.
func ExcludedCategories(d Diet) []reference.Category {
	for _, r := range exclusionRules {
		if r.Diet == d {
			return slices.Clone(r.Excluded)
		}
	}
	return nil
}

// MatchesAny reports whether any ingredient line contains any phrase from any
// excluded category. An empty ingredient list never matches.
func MatchesAny(ingredients []string, excluded []reference.Category, ref *reference.ReferenceData) bool {
	for _, ingredient := range ingredients {
		line := strings.ToLower(ingredient)
		for _, c := range excluded {
			if ref.Contains(c, line) {
				return true
			}
		}
	}
	return false
}

func satisfies(d Diet, ingredients []string, ref *reference.ReferenceData) bool {
	return !MatchesAny(ingredients, ExcludedCategories(d), ref)
}

func IsGlutenFree(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(GlutenFree, ingredients, ref)
}

// IsVegetarian excludes meat and seafood. Dairy and eggs are allowed.
func IsVegetarian(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(Vegetarian, ingredients, ref)
}

// IsVegan excludes meat, seafood, eggs and dairy.
func IsVegan(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(Vegan, ingredients, ref)
}

// IsPescetarian excludes meat and dairy.
func IsPescetarian(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(Pescetarian, ingredients, ref)
}

func IsDairyFree(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(DairyFree, ingredients, ref)
}

func IsSeafoodFree(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(SeafoodFree, ingredients, ref)
}

func IsNutFree(ingredients []string, ref *reference.ReferenceData) bool {
	return satisfies(NutFree, ingredients, ref)
}
