// Package domain defines the core business entities for nutri.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Food: A catalog entry with per-100g nutrient values
//   - SearchResult: One matchable item shown by a search session
//   - NutrientProfile / DisplayedNutrients: Input and output of the label scaler
//   - ServingAdjustment: The user-chosen serving size of a food view
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
