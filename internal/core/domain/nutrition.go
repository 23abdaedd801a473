package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reference daily values used for percent-daily-value figures.
// These approximate the standard 2,000 kcal tables and must stay fixed.
const (
	DailyFatG      = 78.0
	DailySodiumMG  = 2300.0
	DailyCarbsG    = 275.0
	DailyFiberG    = 28.0
	KcalPerGramFat = 9.0
)

// LabelFootnote is printed under every nutrition label.
const LabelFootnote = "* Percent Daily Values are based on a 2,000 calorie diet. " +
	"Your daily values may be higher or lower depending on your calorie needs."

// NutrientProfile is a complete per-100g nutrient record.
type NutrientProfile struct {
	CaloriesPer100g float64
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatsPer100g     float64
	FiberPer100g    float64
	SugarPer100g    float64
	SodiumPer100g   float64

	// ServingSizeG is the canonical serving in grams.
	ServingSizeG float64

	// ServingSizeUnit is an optional label for the canonical serving.
	ServingSizeUnit string
}

// Validate rejects negative or non-finite nutrient values.
func (p NutrientProfile) Validate() error {
	values := map[string]float64{
		"caloriesPer100g": p.CaloriesPer100g,
		"proteinPer100g":  p.ProteinPer100g,
		"carbsPer100g":    p.CarbsPer100g,
		"fatsPer100g":     p.FatsPer100g,
		"fiberPer100g":    p.FiberPer100g,
		"sugarPer100g":    p.SugarPer100g,
		"sodiumPer100g":   p.SodiumPer100g,
	}
	for name, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a non-negative number: %w", name, ErrInvalidInput)
		}
	}
	return nil
}

// DisplayedNutrients are the label figures for one serving.
// Gram amounts keep their display formatting ("8.0g") because the
// derived figures are computed from the formatted values.
type DisplayedNutrients struct {
	ServingSizeG int `json:"servingSizeG"`

	Calories        int `json:"calories"`
	CaloriesFromFat int `json:"caloriesFromFat"`

	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
	Fiber   string `json:"fiber"`
	Sugars  string `json:"sugars"`

	SodiumMG int `json:"sodiumMg"`

	FatDV    int `json:"fatDv"`
	SodiumDV int `json:"sodiumDv"`
	CarbsDV  int `json:"carbsDv"`
	FiberDV  int `json:"fiberDv"`
}

// Scale computes the label figures of profile for a serving of servingG grams.
//
// Gram amounts are formatted to one decimal (sugars to none). Calories from fat
// and the fat, carbohydrate and fiber daily values are derived from the
// formatted amounts, the sodium daily value from the unformatted one.
// All rounding is half-up.
func Scale(p NutrientProfile, servingG int) DisplayedNutrients {
	s := float64(servingG)
	per := func(v float64) float64 { return v * s / 100 }

	protein := formatFixed(per(p.ProteinPer100g), 1)
	carbs := formatFixed(per(p.CarbsPer100g), 1)
	fats := formatFixed(per(p.FatsPer100g), 1)
	fiber := formatFixed(per(p.FiberPer100g), 1)
	sodium := per(p.SodiumPer100g)

	return DisplayedNutrients{
		ServingSizeG:    servingG,
		Calories:        roundHalfUp(per(p.CaloriesPer100g)),
		CaloriesFromFat: roundHalfUp(parseAmount(fats) * KcalPerGramFat),
		Protein:         protein + "g",
		Carbs:           carbs + "g",
		Fats:            fats + "g",
		Fiber:           fiber + "g",
		Sugars:          formatFixed(per(p.SugarPer100g), 0) + "g",
		SodiumMG:        roundHalfUp(sodium),
		FatDV:           roundHalfUp(parseAmount(fats) / DailyFatG * 100),
		SodiumDV:        roundHalfUp(sodium / DailySodiumMG * 100),
		CarbsDV:         roundHalfUp(parseAmount(carbs) / DailyCarbsG * 100),
		FiberDV:         roundHalfUp(parseAmount(fiber) / DailyFiberG * 100),
	}
}

// roundHalfUp rounds to the nearest integer, ties towards positive infinity.
func roundHalfUp(x float64) int {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return int(f)
}

// formatFixed formats x with the given number of decimals, resolving exact
// decimal ties upwards. strconv rounds exact ties to even, so ties are
// detected on the exact expansion and carried by hand.
func formatFixed(x float64, digits int) string {
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}
	exact := strconv.FormatFloat(x, 'f', -1, 64)
	dot := strings.IndexByte(exact, '.')
	if dot < 0 || len(exact)-dot-1 <= digits {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	// The shortest representation may hide the true binary value, so only
	// trust it as a tie when the full expansion agrees.
	full := strings.TrimRight(strconv.FormatFloat(x, 'f', 1100, 64), "0")
	tail := full[strings.IndexByte(full, '.')+1+digits:]
	if tail != "5" {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	kept := full[:strings.IndexByte(full, '.')+1+digits]
	return incrementDecimal(strings.TrimSuffix(kept, "."))
}

// incrementDecimal adds one unit in the last place to a non-negative
// decimal string.
func incrementDecimal(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '.' {
			continue
		}
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// LabelRow is one printed line of a nutrition label.
type LabelRow struct {
	// Name is the nutrient name, e.g. "Total Fat".
	Name string `json:"name"`

	// Amount is the formatted per-serving amount.
	Amount string `json:"amount"`

	// DailyValue is the formatted percentage, empty when not applicable.
	DailyValue string `json:"dailyValue,omitempty"`

	// Indent marks a sub-nutrient of the row above.
	Indent bool `json:"indent,omitempty"`

	// Bold marks a headline nutrient.
	Bold bool `json:"bold,omitempty"`
}

// NutritionLabel is a rendered-ready label for one food and serving.
type NutritionLabel struct {
	FoodName string `json:"foodName"`
	FoodSlug string `json:"foodSlug"`

	// CanonicalServingG and ServingSizeUnit describe the food's own serving.
	CanonicalServingG float64 `json:"canonicalServingG"`
	ServingSizeUnit   string  `json:"servingSizeUnit,omitempty"`

	Nutrients DisplayedNutrients `json:"nutrients"`
}

// NewNutritionLabel builds the label of food for servingG grams.
func NewNutritionLabel(food *Food, servingG int) (NutritionLabel, error) {
	profile, err := food.Profile()
	if err != nil {
		return NutritionLabel{}, err
	}
	return NutritionLabel{
		FoodName:          food.Name,
		FoodSlug:          food.Slug,
		CanonicalServingG: food.ServingSizeG,
		ServingSizeUnit:   food.ServingSizeUnit,
		Nutrients:         Scale(profile, servingG),
	}, nil
}

// ServingNote returns "(30g = 1 slice)" when the food names its serving.
func (l NutritionLabel) ServingNote() string {
	if l.ServingSizeUnit == "" {
		return ""
	}
	return fmt.Sprintf("(%sg = %s)", strconv.FormatFloat(l.CanonicalServingG, 'f', -1, 64), l.ServingSizeUnit)
}

// Rows returns the label body in print order. Saturated fat, trans fat and
// cholesterol are not tracked and always print as zero.
func (l NutritionLabel) Rows() []LabelRow {
	n := l.Nutrients
	pct := func(v int) string { return strconv.Itoa(v) + "%" }
	return []LabelRow{
		{Name: "Total Fat", Amount: n.Fats, DailyValue: pct(n.FatDV), Bold: true},
		{Name: "Saturated Fat", Amount: "0g", DailyValue: "0%", Indent: true},
		{Name: "Trans Fat", Amount: "0g", Indent: true},
		{Name: "Cholesterol", Amount: "0mg", DailyValue: "0%", Bold: true},
		{Name: "Sodium", Amount: strconv.Itoa(n.SodiumMG) + "mg", DailyValue: pct(n.SodiumDV), Bold: true},
		{Name: "Total Carbohydrate", Amount: n.Carbs, DailyValue: pct(n.CarbsDV), Bold: true},
		{Name: "Dietary Fiber", Amount: n.Fiber, DailyValue: pct(n.FiberDV), Indent: true},
		{Name: "Sugars", Amount: n.Sugars, Indent: true},
		{Name: "Protein", Amount: n.Protein, Bold: true},
	}
}
