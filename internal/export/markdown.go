package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/multikids/portage/internal/report"
)

// Markdown writes the report as a Markdown document with one section per
// report tab.
func Markdown(w io.Writer, in Input) error {
	bw := bufio.NewWriter(w)
	writeMarkdown(bw, in)
	return bw.Flush()
}

func writeMarkdown(w io.Writer, in Input) {
	f := in.Full
	c := f.Child

	fmt.Fprintln(w, "# Relatório de Desenvolvimento PORTAGE")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Criança:** %s\n", mdEscape(c.Name))
	fmt.Fprintf(w, "- **Idade:** %d anos\n", c.Age)
	if in.Therapist != "" {
		fmt.Fprintf(w, "- **Terapeuta:** %s\n", mdEscape(in.Therapist))
	}
	fmt.Fprintf(w, "- **Data:** %s\n", formatDate(f.GeneratedAt))
	fmt.Fprintf(w, "- **Avaliações realizadas:** %d\n", f.Report.TotalEvaluations)
	if c.Notes != "" {
		fmt.Fprintf(w, "- **Observações:** %s\n", mdEscape(c.Notes))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Visão Geral")
	fmt.Fprintln(w)
	if len(f.Report.Summaries) == 0 {
		fmt.Fprintln(w, "Nenhuma avaliação registrada.")
	} else {
		fmt.Fprintln(w, "| Área | Faixa etária | Pontuação | Percentual | Ideal | Classificação |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|")
		for _, s := range f.Report.Summaries {
			fmt.Fprintf(w, "| %s | %s anos | %d/%d | %s | %s%% | %s |\n",
				s.Category, s.AgeBand, s.Raw, s.Max, pct(s.Percentage),
				report.FormatPercent(s.Ideal), s.Class.Label())
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Média geral: %s\n", pct(f.Report.Average))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "### Avaliações por área")
	fmt.Fprintln(w)
	for _, cc := range f.Report.CategoryCounts {
		fmt.Fprintf(w, "- %s: %d\n", cc.Category, cc.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Progresso")
	fmt.Fprintln(w)
	if len(f.Timeline) == 0 {
		fmt.Fprintln(w, "Nenhuma avaliação registrada.")
	} else {
		fmt.Fprintln(w, "| Data | Área | Faixa etária | Pontuação | Percentual |")
		fmt.Fprintln(w, "|---|---|---|---|---|")
		for _, e := range f.Timeline {
			fmt.Fprintf(w, "| %s | %s | %s anos | %d/%d | %s |\n",
				formatDate(e.Date), e.Category, e.AgeBand, e.Raw, e.Max, pct(e.Percentage()))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Detalhado")
	fmt.Fprintln(w)
	if len(in.Recommendations) == 0 {
		fmt.Fprintln(w, "Nenhuma área precisa de atenção especial.")
	}
	for _, r := range in.Recommendations {
		fmt.Fprintf(w, "### %s (%s)\n\n", r.Category, r.Class.Label())
		fmt.Fprintln(w, mdEscape(r.Summary))
		fmt.Fprintln(w)
		for _, a := range r.Actions {
			fmt.Fprintf(w, "- %s\n", mdEscape(a))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Metas")
	fmt.Fprintln(w)
	if len(f.Goals) == 0 {
		fmt.Fprintln(w, report.NoGoalsText)
		fmt.Fprintln(w)
		fmt.Fprintln(w, report.NoGoalsFollowUp)
		fmt.Fprintln(w)
	}
	for _, g := range f.Goals {
		fmt.Fprintf(w, "### %s (%s)\n\n", g.Category, g.Class.Label())
		fmt.Fprintln(w, g.Text())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Progresso: %s de %s%%\n\n", pct(g.Current), report.FormatPercent(g.Ideal))
		fmt.Fprintln(w, "Ações recomendadas:")
		fmt.Fprintln(w)
		for _, a := range g.Actions {
			fmt.Fprintf(w, "- %s\n", a)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "### Planejamento Futuro")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Próxima avaliação:** %s\n", formatDate(f.Plan.NextEvaluation))
	fmt.Fprintf(w, "- **Acompanhamento:** %s\n", f.Plan.FollowUp)
	fmt.Fprintf(w, "- **Atividades em casa:** %s\n", f.Plan.HomeActivities)
}

var mdReplacer = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
)

// mdEscape neutralizes user text so it cannot alter the document structure.
func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
