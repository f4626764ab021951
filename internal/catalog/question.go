package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a PORTAGE developmental area.
type Category string

const (
	CategorySocializacao Category = "Socialização"
	CategoryCognicao     Category = "Cognição"
	CategoryLinguagem    Category = "Linguagem"
	CategoryAutoajuda    Category = "Autoajuda"
	CategoryMotricidade  Category = "Motricidade"
)

// ErrUnknownCategory is returned by ParseCategory.
var ErrUnknownCategory = errors.New("unknown category")

// AllCategories returns the five areas in questionnaire order.
func AllCategories() []Category {
	return []Category{CategorySocializacao, CategoryCognicao, CategoryLinguagem, CategoryAutoajuda, CategoryMotricidade}
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e", "í", "i",
	"ó", "o", "ô", "o", "õ", "o", "ú", "u", "ç", "c",
)

func fold(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseCategory accepts a category name ignoring case and accents, or a
// prefix of at least three letters: "socializacao", "mot".
func ParseCategory(s string) (Category, error) {
	f := fold(s)
	if len(f) >= 3 {
		for _, c := range AllCategories() {
			if strings.HasPrefix(fold(string(c)), f) {
				return c, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Age bands in questionnaire order. "0-1" covers the first year of life,
// the others are whole years.
const (
	AgeBandInfant = "0-1"
)

// AllAgeBands returns every age band the questionnaire knows about, youngest first.
func AllAgeBands() []string {
	return []string{AgeBandInfant, "1", "2", "3", "4", "5", "6"}
}

// AgeBandFor suggests the age band for a child's age in whole years. Ages
// past the last band use the last band.
func AgeBandFor(age int) string {
	bands := AllAgeBands()
	switch {
	case age < 1:
		return AgeBandInfant
	case age >= len(bands)-1:
		return bands[len(bands)-1]
	default:
		return bands[age]
	}
}

// Question is a single yes/sometimes/no item of the questionnaire.
type Question struct {
	ID       string
	Category Category
	AgeBand  string
	Text     string
}

// Sequence returns the question number within its (category, age band) group,
// which is the last dash-separated segment of the ID.
func Sequence(q Question) string {
	i := strings.LastIndex(q.ID, "-")
	if i < 0 {
		return q.ID
	}
	return q.ID[i+1:]
}
