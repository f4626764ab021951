package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

// group is one (category, age band) block of the embedded document.
type group struct {
	Category  Category `yaml:"category"`
	Prefix    string   `yaml:"prefix"`
	AgeRange  string   `yaml:"ageRange"`
	Questions []string `yaml:"questions"`
}

// Catalog is an immutable, indexed question set.
type Catalog struct {
	questions  []Question
	byID       map[string]int
	categories []Category
}

// std is the catalog loaded from the embedded document.
var std *Catalog

func init() {
	c, err := Parse(questionsYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	std = c
}

// Parse decodes a grouped YAML question document, expands question IDs and
// validates the result.
func Parse(data []byte) (*Catalog, error) {
	var groups []group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	var qs []Question
	for _, g := range groups {
		for i, text := range g.Questions {
			qs = append(qs, Question{
				ID:       fmt.Sprintf("%s-%s-%d", g.Prefix, g.AgeRange, i+1),
				Category: g.Category,
				AgeBand:  g.AgeRange,
				Text:     text,
			})
		}
	}
	return New(qs)
}

// New builds a catalog from an explicit question list, keeping its order.
func New(qs []Question) (*Catalog, error) {
	if err := validate(qs); err != nil {
		return nil, err
	}
	c := &Catalog{
		questions: slices.Clone(qs),
		byID:      make(map[string]int, len(qs)),
	}
	seen := make(map[Category]bool)
	for i, q := range c.questions {
		c.byID[q.ID] = i
		if !seen[q.Category] {
			seen[q.Category] = true
			c.categories = append(c.categories, q.Category)
		}
	}
	return c, nil
}

// Default returns the embedded PORTAGE catalog.
func Default() *Catalog {
	return std
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// QuestionsFor returns the questions of one category and age band, in catalog order.
func (c *Catalog) QuestionsFor(category Category, ageBand string) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Category == category && q.AgeBand == ageBand {
			out = append(out, q)
		}
	}
	return out
}

// QuestionIDs is QuestionsFor reduced to the IDs.
func (c *Catalog) QuestionIDs(category Category, ageBand string) []string {
	qs := c.QuestionsFor(category, ageBand)
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

// AgeBandsFor returns the distinct age bands of a category in catalog order.
func (c *Catalog) AgeBandsFor(category Category) []string {
	var bands []string
	for _, q := range c.questions {
		if q.Category == category && !slices.Contains(bands, q.AgeBand) {
			bands = append(bands, q.AgeBand)
		}
	}
	return bands
}

// Get returns a question by ID.
func (c *Catalog) Get(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	return slices.Clone(c.questions)
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Categories returns the categories of the embedded catalog.
func Categories() []Category { return std.Categories() }

// QuestionsFor filters the embedded catalog.
func QuestionsFor(category Category, ageBand string) []Question {
	return std.QuestionsFor(category, ageBand)
}

// QuestionIDs filters the embedded catalog down to IDs.
func QuestionIDs(category Category, ageBand string) []string {
	return std.QuestionIDs(category, ageBand)
}

// AgeBandsFor lists the embedded catalog's age bands for a category.
func AgeBandsFor(category Category) []string { return std.AgeBandsFor(category) }

// Get looks a question up in the embedded catalog.
func Get(id string) (Question, bool) { return std.Get(id) }

// All returns the embedded catalog's questions.
func All() []Question { return std.All() }
