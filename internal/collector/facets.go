package collector

import (
	"fmt"
	"net/url"
)

// Group is a family of listing facets. Each group has its own directory of
// link files under the category directory.
type Group string

const (
	Courses    Group = "courses"
	FoodGroups Group = "food_groups"
	Cuisines   Group = "cuisines"
)

// Groups returns every facet group in record order.
func Groups() []Group {
	return []Group{Courses, FoodGroups, Cuisines}
}

// Facet is one filter value of the recipe listing, e.g. the "Breakfast" course.
type Facet struct {
	Group Group
	Name  string
	// Filter and ID form the listing query value "<Filter>:<ID>".
	Filter string
	ID     string
}

var facets = []Facet{
	{Courses, "Appetizers", "course", "116"},
	{Courses, "Beverages", "course", "117"},
	{Courses, "Breads", "course", "118"},
	{Courses, "Breakfast", "course", "119"},
	{Courses, "Desserts", "course", "120"},
	{Courses, "Main Dishes", "course", "121"},
	{Courses, "Salads", "course", "122"},
	{Courses, "Sandwiches", "course", "123"},
	{Courses, "Sauces, Condiments and Seasonings", "course", "124"},
	{Courses, "Side Dishes", "course", "125"},
	{Courses, "Snacks", "course", "126"},
	{Courses, "Soups and Stews", "course", "127"},

	{FoodGroups, "Fruits", "food_groups", "88"},
	{FoodGroups, "Vegetables", "food_groups", "91"},
	{FoodGroups, "Grains", "food_groups", "97"},
	{FoodGroups, "Protein Foods", "food_groups", "100"},
	{FoodGroups, "Dairy", "food_groups", "108"},

	{Cuisines, "American", "cuisine", "132"},
	{Cuisines, "American_Indian&Alaska_Native", "cuisine", "137"},
	{Cuisines, "Asian&Pacific_Islander", "cuisine", "133"},
	{Cuisines, "Caribbean_(Haitian,_Jamaican)", "cuisine", "1193"},
	{Cuisines, "Latin_American&Hispanic", "cuisine", "134"},
	{Cuisines, "Mediterranean", "cuisine", "135"},
	{Cuisines, "Middle_Eastern", "cuisine", "136"},
	{Cuisines, "Southern", "cuisine", "138"},
	{Cuisines, "Vegetarian", "cuisine", "139"},
}

// Facets returns the known listing facets.
func Facets() []Facet {
	out := make([]Facet, len(facets))
	copy(out, facets)
	return out
}

// AllRecipesURL is the listing of every recipe, sorted by title. A page number
// is appended to it.
func AllRecipesURL(baseURL string) string {
	return baseURL + "/myplate-kitchen/recipes?sort_bef_combine=title_ASC&items_per_page=100&page="
}

// ListingURL is the listing filtered by the facet. A page number is appended
// to it.
func (f Facet) ListingURL(baseURL string) string {
	return fmt.Sprintf("%s/myplate-kitchen/recipes?%s=%s&page=",
		baseURL, url.QueryEscape("f[0]"), url.QueryEscape(f.Filter+":"+f.ID))
}
