package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// record is the on-disk shape of one food.
type record struct {
	ID              flexID         `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Description     *string        `json:"description"`
	Category        *string        `json:"category"`
	CaloriesPer100g *float64       `json:"caloriesPer100g"`
	ProteinPer100g  *float64       `json:"proteinPer100g"`
	CarbsPer100g    *float64       `json:"carbsPer100g"`
	FatsPer100g     *float64       `json:"fatsPer100g"`
	FiberPer100g    *float64       `json:"fiberPer100g"`
	SugarPer100g    *float64       `json:"sugarPer100g"`
	SodiumPer100g   *float64       `json:"sodiumPer100g"`
	ServingSizeG    float64        `json:"servingSizeG"`
	ServingSizeUnit string         `json:"servingSizeUnit"`
	FullNutrients   []fullNutrient `json:"fullNutrients"`
	AltMeasures     []altMeasure   `json:"altMeasures"`
	CreatedAt       *time.Time     `json:"createdAt"`
	UpdatedAt       *time.Time     `json:"updatedAt"`
	ImageURL        string         `json:"image_url"`
}

type fullNutrient struct {
	Value  *float64 `json:"value"`
	AttrID *int     `json:"attr_id"`
}

type altMeasure struct {
	Measure       string   `json:"measure"`
	Qty           *float64 `json:"qty"`
	ServingWeight *float64 `json:"serving_weight"`
}

// flexID accepts both numeric and string identifiers.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

func (r *record) toFood() domain.Food {
	food := domain.Food{
		ID:          string(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Slug:        r.Slug,
		Description: r.Description,
		Category:    r.Category,
		Nutrients: domain.NutrientValues{
			CaloriesPer100g: r.CaloriesPer100g,
			ProteinPer100g:  r.ProteinPer100g,
			CarbsPer100g:    r.CarbsPer100g,
			FatsPer100g:     r.FatsPer100g,
			FiberPer100g:    r.FiberPer100g,
			SugarPer100g:    r.SugarPer100g,
			SodiumPer100g:   r.SodiumPer100g,
		},
		ServingSizeG:    r.ServingSizeG,
		ServingSizeUnit: r.ServingSizeUnit,
		ImageURL:        r.ImageURL,
	}
	if food.Slug == "" {
		food.Slug = domain.Slugify(food.Name)
	}
	for _, n := range r.FullNutrients {
		food.FullNutrients = append(food.FullNutrients, domain.FullNutrient{AttrID: n.AttrID, Value: n.Value})
	}
	for _, m := range r.AltMeasures {
		food.AltMeasures = append(food.AltMeasures, domain.AltMeasure(m))
	}
	if r.CreatedAt != nil {
		food.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		food.UpdatedAt = *r.UpdatedAt
	}
	return food
}

// Parse decodes a JSON food list. Foods without a slug get one derived
// from their name; foods without a name or with a duplicate slug are
// rejected.
func Parse(data []byte) ([]domain.Food, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding food list: %w: %w", domain.ErrInvalidInput, err)
	}

	foods := make([]domain.Food, 0, len(records))
	seen := make(map[string]int, len(records))
	for i := range records {
		food := records[i].toFood()
		if food.Name == "" || food.Slug == "" {
			return nil, fmt.Errorf("food %d: name is required: %w", i, domain.ErrInvalidInput)
		}
		if prev, dup := seen[food.Slug]; dup {
			return nil, fmt.Errorf("food %d: slug %q already used by food %d: %w",
				i, food.Slug, prev, domain.ErrAlreadyExists)
		}
		seen[food.Slug] = i
		foods = append(foods, food)
	}
	return foods, nil
}
