package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FoodRoutePrefix is the route prefix of food detail targets.
const FoodRoutePrefix = "/foods/"

// NutrientValues holds the per-100g nutrient densities of a food as stored.
// A nil field means the value is unknown.
type NutrientValues struct {
	CaloriesPer100g *float64
	ProteinPer100g  *float64
	CarbsPer100g    *float64
	FatsPer100g     *float64
	FiberPer100g    *float64
	SugarPer100g    *float64
	SodiumPer100g   *float64
}

// FullNutrient is one entry of the extended nutrient table of a food.
type FullNutrient struct {
	// AttrID identifies the nutrient in the source database.
	AttrID *int

	// Value is the amount per 100g.
	Value *float64
}

// AltMeasure is an alternative household measure for a food.
type AltMeasure struct {
	// Measure is the human label, e.g. "cup, chopped".
	Measure string

	// Qty is how many measures the serving weight covers.
	Qty *float64

	// ServingWeight is the weight in grams of Qty measures.
	ServingWeight *float64
}

// Food is a catalog entry.
type Food struct {
	// ID is the catalog identifier. May be empty for bundled data.
	ID string

	// Name is the display name.
	Name string

	// Slug is the URL-safe key used by routes and lookups.
	Slug string

	// Description is optional secondary text.
	Description *string

	// Category is an optional grouping key used by search results.
	Category *string

	// Nutrients are the per-100g values.
	Nutrients NutrientValues

	// ServingSizeG is the canonical serving in grams. Zero means unknown.
	ServingSizeG float64

	// ServingSizeUnit is the human label of the canonical serving, e.g. "1 slice".
	ServingSizeUnit string

	// ImageURL is an optional full-size image.
	ImageURL string

	FullNutrients []FullNutrient
	AltMeasures   []AltMeasure

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile returns the complete nutrient profile of the food.
// Missing fields are reported together in a single ErrIncompleteProfile error.
func (f *Food) Profile() (NutrientProfile, error) {
	var missing []string
	get := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}

	p := NutrientProfile{
		CaloriesPer100g: get("caloriesPer100g", f.Nutrients.CaloriesPer100g),
		ProteinPer100g:  get("proteinPer100g", f.Nutrients.ProteinPer100g),
		CarbsPer100g:    get("carbsPer100g", f.Nutrients.CarbsPer100g),
		FatsPer100g:     get("fatsPer100g", f.Nutrients.FatsPer100g),
		FiberPer100g:    get("fiberPer100g", f.Nutrients.FiberPer100g),
		SugarPer100g:    get("sugarPer100g", f.Nutrients.SugarPer100g),
		SodiumPer100g:   get("sodiumPer100g", f.Nutrients.SodiumPer100g),
		ServingSizeG:    f.ServingSizeG,
		ServingSizeUnit: f.ServingSizeUnit,
	}
	if len(missing) > 0 {
		return NutrientProfile{}, fmt.Errorf("%s: missing %s: %w",
			f.Slug, strings.Join(missing, ", "), ErrIncompleteProfile)
	}
	if err := p.Validate(); err != nil {
		return NutrientProfile{}, fmt.Errorf("%s: %w", f.Slug, err)
	}
	return p, nil
}

// ResultID returns the identifier used for the food's search result:
// the catalog ID when present, otherwise the slug.
func (f *Food) ResultID() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Slug
}

// ThumbnailURL returns the small variant of the food image, or "".
func (f *Food) ThumbnailURL() string {
	if f.ImageURL == "" {
		return ""
	}
	return strings.Replace(f.ImageURL, "w=800&h=600", "w=100&h=100", 1)
}

// SearchResult converts the food into a matchable search result
// whose target is the food's detail route.
func (f *Food) SearchResult() SearchResult {
	r := SearchResult{
		ID:          f.ResultID(),
		Title:       f.Name,
		Description: f.Description,
		Category:    f.Category,
		ImageURL:    f.ThumbnailURL(),
	}
	if f.Slug != "" {
		target := FoodRoute(f.Slug)
		r.Target = &target
	}
	return r
}

// FoodRoute returns the detail route for a slug.
func FoodRoute(slug string) string {
	return FoodRoutePrefix + slug
}

// ParseFoodRoute extracts the slug from a detail route.
// It accepts both absolute URLs and bare routes.
func ParseFoodRoute(target string) (string, bool) {
	idx := strings.Index(target, FoodRoutePrefix)
	if idx < 0 {
		return "", false
	}
	slug := target[idx+len(FoodRoutePrefix):]
	if cut := strings.IndexAny(slug, "?#/"); cut >= 0 {
		slug = slug[:cut]
	}
	if slug == "" {
		return "", false
	}
	return slug, true
}

// Slugify derives a slug from a display name.
// "Greek Yogurt (plain)" becomes "greek-yogurt-plain".
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Float returns a pointer to v. Used to build optional nutrient values.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s. Used to build optional text fields.
func String(s string) *string {
	return &s
}
