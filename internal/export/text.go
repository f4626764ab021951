package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/scoring"
)

// ColorEnabled reports whether w is a terminal that should get ANSI colors.
// NO_COLOR disables colors everywhere.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	bold, dim *color.Color
	tiers     map[scoring.Class]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		bold: color.New(color.Bold),
		dim:  color.New(color.FgHiBlack),
		tiers: map[scoring.Class]*color.Color{
			scoring.Adequado:    color.New(color.FgGreen, color.Bold),
			scoring.Atencao:     color.New(color.FgYellow, color.Bold),
			scoring.Intervencao: color.New(color.FgRed, color.Bold),
		},
	}
	for _, c := range append([]*color.Color{p.bold, p.dim}, p.tiers[scoring.Adequado], p.tiers[scoring.Atencao], p.tiers[scoring.Intervencao]) {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) tier(c scoring.Class) string {
	return p.tiers[c].Sprint(c.Label())
}

// Text writes a compact terminal report. Classifications are colored by
// tier when colored is true.
func Text(w io.Writer, in Input, colored bool) error {
	p := newPalette(colored)
	bw := bufio.NewWriter(w)
	f := in.Full

	fmt.Fprintln(bw, p.bold.Sprint("Relatório de Desenvolvimento PORTAGE"))
	fmt.Fprintf(bw, "%s, %d anos  |  %d avaliações  |  %s\n",
		f.Child.Name, f.Child.Age, f.Report.TotalEvaluations, formatDate(f.GeneratedAt))
	if in.Therapist != "" {
		fmt.Fprintf(bw, "Terapeuta: %s\n", in.Therapist)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, p.bold.Sprint("Visão Geral"))
	if len(f.Report.Summaries) == 0 {
		fmt.Fprintln(bw, p.dim.Sprint("  Nenhuma avaliação registrada."))
	}
	for _, s := range f.Report.Summaries {
		fmt.Fprintf(bw, "  %-13s %-4s %5d/%-3d %7s  ideal %3s%%  %s\n",
			s.Category, s.AgeBand, s.Raw, s.Max, pct(s.Percentage),
			report.FormatPercent(s.Ideal), p.tier(s.Class))
	}
	if len(f.Report.Summaries) > 0 {
		fmt.Fprintf(bw, "  Média geral: %s\n", pct(f.Report.Average))
	}

	if len(f.Timeline) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, p.bold.Sprint("Progresso"))
		for _, e := range f.Timeline {
			fmt.Fprintf(bw, "  %s  %-13s %-4s %7s\n",
				formatDate(e.Date), e.Category, e.AgeBand, pct(e.Percentage()))
		}
	}

	if len(in.Recommendations) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, p.bold.Sprint("Detalhado"))
		for _, r := range in.Recommendations {
			fmt.Fprintf(bw, "  %s (%s)\n", r.Category, p.tier(r.Class))
			fmt.Fprintf(bw, "    %s\n", r.Summary)
			for _, a := range r.Actions {
				fmt.Fprintf(bw, "    - %s\n", a)
			}
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, p.bold.Sprint("Metas"))
	if len(f.Goals) == 0 {
		fmt.Fprintf(bw, "  %s\n", report.NoGoalsText)
	}
	for _, g := range f.Goals {
		fmt.Fprintf(bw, "  %s (%s): %s\n", g.Category, p.tier(g.Class), g.Text())
		fmt.Fprintf(bw, "    %s %s de %s%%\n", progressBar(g.Progress, 20), pct(g.Current), report.FormatPercent(g.Ideal))
	}
	fmt.Fprintf(bw, "  Próxima avaliação: %s\n", formatDate(f.Plan.NextEvaluation))

	return bw.Flush()
}

// progressBar draws a fixed-width bar, clamping the fill to the bar width.
func progressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
