package child

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
)

func sampleChild() Child {
	return Child{
		ID:    "c1",
		Name:  "Ana",
		Age:   2,
		Notes: "prematura",
		Evaluations: []Evaluation{
			{
				Category: catalog.CategoryMotricidade,
				AgeBand:  "2",
				Answers:  map[string]int{"mot-2-1": 2, "mot-2-2": 2, "mot-2-3": 1, "mot-2-4": 0, "mot-2-5": 2},
				Date:     time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
			},
		},
	}
}

func TestChild_JSONRoundTrip(t *testing.T) {
	in := sampleChild()
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Child
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestChild_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(sampleChild())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, k := range []string{"id", "name", "age", "notes", "evaluations"} {
		assert.Contains(t, raw, k)
	}

	eval := raw["evaluations"].([]any)[0].(map[string]any)
	for _, k := range []string{"category", "ageRange", "answers", "date"} {
		assert.Contains(t, eval, k)
	}
	assert.Equal(t, "2024-03-10T14:30:00Z", eval["date"])
}

func TestChild_DecodesStoredRecord(t *testing.T) {
	doc := `{"id":"1700000000000","name":"Bia","age":3,"notes":"",
	"evaluations":[{"category":"Linguagem","ageRange":"3","answers":{"lin-3-1":1},"date":"2023-11-14T22:13:20.000Z"}]}`

	var c Child
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	require.Len(t, c.Evaluations, 1)
	assert.Equal(t, catalog.CategoryLinguagem, c.Evaluations[0].Category)
	assert.Equal(t, 1, c.Evaluations[0].Answers["lin-3-1"])
	assert.Equal(t, 2023, c.Evaluations[0].Date.Year())
}

func TestEvaluationsIn(t *testing.T) {
	c := sampleChild()
	c = c.AppendEvaluation(Evaluation{Category: catalog.CategoryCognicao, AgeBand: "2"})
	c = c.AppendEvaluation(Evaluation{Category: catalog.CategoryMotricidade, AgeBand: "3"})

	mot := c.EvaluationsIn(catalog.CategoryMotricidade)
	require.Len(t, mot, 2)
	assert.Equal(t, "2", mot[0].AgeBand)
	assert.Equal(t, "3", mot[1].AgeBand)
	assert.Empty(t, c.EvaluationsIn(catalog.CategoryLinguagem))
}

func TestAppendEvaluation_DoesNotAlias(t *testing.T) {
	orig := sampleChild()
	updated := orig.AppendEvaluation(Evaluation{Category: catalog.CategoryCognicao})

	assert.Len(t, orig.Evaluations, 1)
	assert.Len(t, updated.Evaluations, 2)

	last, ok := updated.LastEvaluation()
	require.True(t, ok)
	assert.Equal(t, catalog.CategoryCognicao, last.Category)

	_, ok = Child{}.LastEvaluation()
	assert.False(t, ok)
}
