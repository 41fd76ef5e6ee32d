package diet

import (
	"slices"

	"github.com/pageza/myplate-diets/backend/internal/reference"
)

// Result is the classification of a single recipe.
type Result struct {
	Diets             []Diet `json:"diets"`
	MeetsRequirements bool   `json:"meets_requirements"`

	// KetoErr and RequirementsErr record why the nutrition rules could not be
	// evaluated. They never affect the ingredient rules.
	KetoErr         error `json:"-"`
	RequirementsErr error `json:"-"`
}

// Has reports whether the diet applies.
func (r Result) Has(d Diet) bool {
	return slices.Contains(r.Diets, d)
}

// Labels returns the diets as plain strings.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Diets))
	for i, d := range r.Diets {
		labels[i] = string(d)
	}
	return labels
}

// Errors returns the per-recipe nutrition errors, keyed by the rule that failed.
func (r Result) Errors() map[string]string {
	errs := map[string]string{}
	if r.KetoErr != nil {
		errs[string(Keto)] = r.KetoErr.Error()
	}
	if r.RequirementsErr != nil {
		errs["meets_requirements"] = r.RequirementsErr.Error()
	}
	return errs
}

// Classify evaluates every diet rule for one recipe. Nutrition errors are
// recorded on the result rather than returned, so a bad recipe never stops a
// batch: keto is left out of Diets and MeetsRequirements is false.
func Classify(ingredients []string, nutrition map[string]string, ref *reference.ReferenceData) Result {
	result := Result{Diets: []Diet{}}

	for _, rule := range exclusionRules {
		if !MatchesAny(ingredients, rule.Excluded, ref) {
			result.Diets = append(result.Diets, rule.Diet)
		}
	}

	keto, err := IsKeto(nutrition)
	if err != nil {
		result.KetoErr = err
	} else if keto {
		result.Diets = append(result.Diets, Keto)
	}

	result.MeetsRequirements, result.RequirementsErr = MeetsRequirements(nutrition)
	return result
}
