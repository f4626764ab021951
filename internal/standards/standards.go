// Package standards holds the reference percentages a child is expected to
// reach per category at each age band.
package standards

import "github.com/multikids/portage/internal/catalog"

// Fallback is the ideal used when the table has no entry for a lookup.
const Fallback = 80.0

var table = map[string]map[catalog.Category]float64{
	"0-1": row(100, 100, 100, 100, 100),
	"1":   row(95, 90, 85, 88, 92),
	"2":   row(90, 85, 80, 82, 88),
	"3":   row(85, 80, 75, 78, 85),
	"4":   row(80, 75, 70, 75, 82),
	"5":   row(75, 70, 65, 72, 78),
	"6":   row(70, 65, 60, 68, 75),
}

func row(soc, cog, lin, aut, mot float64) map[catalog.Category]float64 {
	return map[catalog.Category]float64{
		catalog.CategorySocializacao: soc,
		catalog.CategoryCognicao:     cog,
		catalog.CategoryLinguagem:    lin,
		catalog.CategoryAutoajuda:    aut,
		catalog.CategoryMotricidade:  mot,
	}
}

// IdealScore returns the expected percentage for a category at an age band.
// Lookups are exact; anything not in the table gets Fallback.
func IdealScore(category catalog.Category, ageBand string) float64 {
	byCategory, ok := table[ageBand]
	if !ok {
		return Fallback
	}
	v, ok := byCategory[category]
	if !ok {
		return Fallback
	}
	return v
}
