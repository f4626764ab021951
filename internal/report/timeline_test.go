package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
)

func TestTimeline_LastFiveChronological(t *testing.T) {
	var evals []child.Evaluation
	for i := 0; i < 7; i++ {
		evals = append(evals, eval(catalog.CategoryCognicao, "2", i, 2, 2, 2, 2, 2))
	}

	tl := Timeline(evals)
	require.Len(t, tl, TimelineLimit)
	assert.Equal(t, evals[2].Date, tl[0].Date)
	assert.Equal(t, evals[6].Date, tl[4].Date)
	for i := 1; i < len(tl); i++ {
		assert.True(t, tl[i].Date.After(tl[i-1].Date))
	}
}

func TestTimeline_Short(t *testing.T) {
	evals := []child.Evaluation{eval(catalog.CategoryCognicao, "2", 0, 1, 1, 1, 1, 1)}
	tl := Timeline(evals)
	require.Len(t, tl, 1)
	assert.Equal(t, 5, tl[0].Raw)
	assert.Equal(t, 10, tl[0].Max)
	assert.Equal(t, 50.0, tl[0].Percentage())

	assert.Empty(t, Timeline(nil))
}

func TestTimeline_MaxFromStoredKeys(t *testing.T) {
	// Only three answers stored: the timeline uses 3*2 while the report uses
	// the catalog's five questions.
	e := eval(catalog.CategoryMotricidade, "2", 0, 2, 2, 2)
	tl := Timeline([]child.Evaluation{e})
	require.Len(t, tl, 1)
	assert.Equal(t, 6, tl[0].Raw)
	assert.Equal(t, 6, tl[0].Max)

	r, err := Build(child.Child{Evaluations: []child.Evaluation{e}})
	require.NoError(t, err)
	assert.Equal(t, 10, r.Summaries[0].Max)
	assert.Equal(t, 60.0, r.Summaries[0].Percentage)
}

func TestTimeline_EmptyAnswers(t *testing.T) {
	tl := Timeline([]child.Evaluation{{Category: catalog.CategoryCognicao, AgeBand: "2"}})
	require.Len(t, tl, 1)
	assert.Zero(t, tl[0].Raw)
	assert.Zero(t, tl[0].Max)
	assert.Zero(t, tl[0].Percentage())
}

func TestHistory_AllEvaluations(t *testing.T) {
	var evals []child.Evaluation
	for i := 0; i < 7; i++ {
		evals = append(evals, eval(catalog.CategoryLinguagem, "3", i, 2, 1, 0, 2, 2))
	}

	h := History(evals)
	require.Len(t, h, 7)
	assert.Equal(t, evals[0].Date, h[0].Date)
	assert.Equal(t, 7, h[6].Raw)
	assert.Equal(t, 10, h[6].Max)
}
