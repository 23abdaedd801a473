package memory

import "github.com/custodia-labs/nutri-cli/internal/core/domain"

// SeedFoods returns the small hard-coded demo list.
func SeedFoods() []domain.Food {
	f := domain.Float
	str := domain.String
	food := func(slug, name, category, desc string, cal, protein, carbs, fats, fiber, sugar, sodium, serving float64, unit string) domain.Food {
		return domain.Food{
			Name:        name,
			Slug:        slug,
			Description: str(desc),
			Category:    str(category),
			Nutrients: domain.NutrientValues{
				CaloriesPer100g: f(cal),
				ProteinPer100g:  f(protein),
				CarbsPer100g:    f(carbs),
				FatsPer100g:     f(fats),
				FiberPer100g:    f(fiber),
				SugarPer100g:    f(sugar),
				SodiumPer100g:   f(sodium),
			},
			ServingSizeG:    serving,
			ServingSizeUnit: unit,
		}
	}

	return []domain.Food{
		food("pizza", "Pizza", "Food", "Cheese pizza with tomato sauce", 266, 11, 33, 10, 2.3, 3.6, 598, 107, "1 slice"),
		food("pasta", "Pasta", "Food", "Cooked spaghetti, unenriched", 158, 5.8, 31, 0.9, 1.8, 0.6, 1, 140, "1 cup"),
		food("apple", "Apple", "Fruit", "Raw apple with skin", 52, 0.3, 14, 0.2, 2.4, 10, 1, 182, "1 medium"),
		food("banana", "Banana", "Fruit", "Raw banana", 89, 1.1, 23, 0.3, 2.6, 12, 1, 118, "1 medium"),
		food("broccoli", "Broccoli", "Vegetables", "Raw broccoli florets", 34, 2.8, 7, 0.4, 2.6, 1.7, 33, 91, "1 cup chopped"),
		food("spinach", "Spinach", "Vegetables", "Raw baby spinach", 23, 2.9, 3.6, 0.4, 2.2, 0.4, 79, 30, "1 cup"),
		food("chicken-breast", "Chicken Breast", "Protein", "Roasted chicken breast, skinless", 165, 31, 0, 3.6, 0, 0, 74, 140, "1 breast"),
		food("salmon", "Salmon", "Protein", "Baked Atlantic salmon fillet", 206, 22, 0, 12, 0, 0, 61, 154, "1 fillet"),
	}
}
