// Package narrative produces the written recommendations attached to a
// report, either from fixed clinical text or from a configured LLM.
package narrative

import (
	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/scoring"
)

// Source tells where a recommendation's text came from.
type Source string

const (
	SourceStatic Source = "static"
	SourceLLM    Source = "llm"
)

// OverviewText is shown on the overview for every category needing attention.
const OverviewText = "Área que pode precisar de atenção especial no desenvolvimento da criança."

// DetailedActions are the actions listed on the detailed view.
var DetailedActions = []string{
	"Continuar monitorando o desenvolvimento nesta área",
	"Realizar atividades lúdicas para estimular o aprendizado",
	"Buscar orientação profissional se necessário",
}

// Recommendation is the guidance for one category below the expected level.
type Recommendation struct {
	Category catalog.Category `json:"category"`
	Class    scoring.Class    `json:"class"`
	Summary  string           `json:"summary"`
	Actions  []string         `json:"actions"`
	Source   Source           `json:"source"`
}
