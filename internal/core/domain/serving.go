package domain

import (
	"math"
	"strings"
)

// Serving size bounds in grams.
const (
	MinServingG       = 1
	MaxServingG       = 1000
	MaxSliderServingG = 500
	DefaultServingG   = 100
)

// ServingAdjustment is the serving size currently chosen on a food view.
// The zero value is not usable; create one with NewServingAdjustment.
type ServingAdjustment struct {
	grams int
}

// NewServingAdjustment starts from the food's canonical serving,
// or DefaultServingG when the food has none.
func NewServingAdjustment(food *Food) ServingAdjustment {
	var s ServingAdjustment
	s.Reset(food)
	return s
}

// Grams returns the current serving size.
func (s ServingAdjustment) Grams() int {
	return s.grams
}

// Reset re-initialises the serving from food. Called whenever the
// displayed food changes.
func (s *ServingAdjustment) Reset(food *Food) {
	g := DefaultServingG
	if food != nil && food.ServingSizeG > 0 {
		g = roundHalfUp(food.ServingSizeG)
	}
	s.Set(g)
}

// Set clamps g to [MinServingG, MaxServingG].
func (s *ServingAdjustment) Set(g int) {
	s.grams = clamp(g, MinServingG, MaxServingG)
}

// SetFromSlider clamps g to the slider range [MinServingG, MaxSliderServingG].
func (s *ServingAdjustment) SetFromSlider(g int) {
	s.grams = clamp(g, MinServingG, MaxSliderServingG)
}

// Step moves the slider by delta grams.
func (s *ServingAdjustment) Step(delta int) {
	s.SetFromSlider(s.grams + delta)
}

// ParseInput applies free-text input. The leading integer of v is used;
// input without one, or with a value below one, selects MinServingG.
func (s *ServingAdjustment) ParseInput(v string) {
	n, ok := leadingInt(v)
	if !ok || n == 0 {
		n = MinServingG
	}
	s.Set(n)
}

// leadingInt parses an optional sign followed by decimal digits after
// leading whitespace, ignoring anything that follows.
func leadingInt(v string) (int, bool) {
	v = strings.TrimLeft(v, " \t\n\r\f\v")
	neg := false
	if v != "" && (v[0] == '+' || v[0] == '-') {
		neg = v[0] == '-'
		v = v[1:]
	}
	n, digits := 0, 0
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n < math.MaxInt32 {
			n = n*10 + int(r-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
