package narrative

import (
	"fmt"
	"strings"

	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/scoring"
)

const systemPrompt = `Você é uma terapeuta ocupacional que acompanha crianças de 0 a 6 anos com o Inventário Portage Operacionalizado. Escreva orientações curtas, práticas e acolhedoras para a família, em português do Brasil. Não faça diagnósticos.`

func buildPrompt(f report.Full) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Criança: %d anos\n", f.Child.Age)
	if f.Child.Notes != "" {
		fmt.Fprintf(&b, "Observações: %s\n", f.Child.Notes)
	}

	b.WriteString("\nÁreas avaliadas:\n")
	for _, s := range f.Report.Summaries {
		fmt.Fprintf(&b, "- %s (faixa %s): %.1f%% de %.0f%% esperado, %s\n",
			s.Category, s.AgeBand, s.Percentage, s.Ideal, s.Class.Label())
	}

	b.WriteString("\nÁreas que precisam de orientação:\n")
	for _, s := range f.Report.Summaries {
		if s.Class == scoring.Adequado {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", s.Category)
	}

	b.WriteString(`
Instruções:
1. Escreva uma recomendação para cada área listada em "Áreas que precisam de orientação", e somente para elas.
2. Use o nome da área exatamente como aparece acima no campo category.
3. O resumo deve ter uma ou duas frases dirigidas à família.
4. Liste de 2 a 4 atividades simples que possam ser feitas em casa.`)

	return b.String()
}
