package calculator

import "math"

// Nutrition holds the macro totals tracked for an ingredient line, meal, recipe or day.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// ForQuantity scales a per-100g nutrition basis to the given quantity in grams.
// Based on the rule: value = basis_per_100g × quantity_in_grams / 100
func ForQuantity(per100g Nutrition, grams float64) Nutrition {
	return Nutrition{
		Calories: per100g.Calories * grams / 100,
		Protein:  per100g.Protein * grams / 100,
	}
}

// Sum adds up any number of nutrition values. An empty input sums to zero.
func Sum(values ...Nutrition) Nutrition {
	var total Nutrition
	for _, v := range values {
		total.Calories += v.Calories
		total.Protein += v.Protein
	}
	return total
}

// Add returns n + other.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Sum(n, other)
}

// Sub returns n - other.
func (n Nutrition) Sub(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories - other.Calories,
		Protein:  n.Protein - other.Protein,
	}
}

// IsZero reports whether both totals are zero.
func (n Nutrition) IsZero() bool {
	return n.Calories == 0 && n.Protein == 0
}

// Round rounds both totals to one decimal place.
// Only presentation code calls this; stored and aggregated values stay exact.
func Round(n Nutrition) Nutrition {
	return Nutrition{
		Calories: roundTo(n.Calories, 1),
		Protein:  roundTo(n.Protein, 1),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
