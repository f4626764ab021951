package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/evaluation"
	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/scoring"
)

// applyAnswers records "question=answer" pairs. The question is a full ID
// ("mot-2-3") or its number within the questionnaire ("3").
func applyAnswers(d *evaluation.Draft, pairs []string) error {
	for _, pair := range pairs {
		for _, item := range strings.Split(pair, ",") {
			q, v, ok := strings.Cut(strings.TrimSpace(item), "=")
			if !ok {
				return fmt.Errorf("answer %q: expected question=answer", item)
			}
			a, err := scoring.ParseAnswer(v)
			if err != nil {
				return err
			}
			id := resolveQuestion(d, strings.TrimSpace(q))
			if err := d.Answer(id, a); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveQuestion(d *evaluation.Draft, key string) string {
	for _, q := range d.Questions {
		if catalog.Sequence(q) == key {
			return q.ID
		}
	}
	return key
}

func newEvaluateCmd() *cobra.Command {
	evalCmd := &cobra.Command{
		Use:   "evaluate <child>",
		Short: "Record an evaluation for one category and age band",
		Long: "Record a finalized evaluation. Answers are given as question=answer, where the\n" +
			"answer is 2/sim, 1/às vezes or 0/não. --fill answers every question first.",
		Example: "  portage evaluate Ana --category motricidade --age 2 --answer 1=s,2=s,3=a,4=n,5=s\n" +
			"  portage evaluate Ana --category linguagem --fill sim --answer 4=nao",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catName, _ := cmd.Flags().GetString("category")
			band, _ := cmd.Flags().GetString("age")
			fill, _ := cmd.Flags().GetString("fill")
			pairs, _ := cmd.Flags().GetStringArray("answer")

			category, err := catalog.ParseCategory(catName)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			c, err := findChild(ctx, e.clinic, args[0])
			if err != nil {
				return err
			}
			if band == "" {
				band = catalog.AgeBandFor(c.Age)
			}

			d, err := evaluation.NewDraft(c.ID, category, band)
			if err != nil {
				return err
			}
			if fill != "" {
				a, err := scoring.ParseAnswer(fill)
				if err != nil {
					return err
				}
				if err := d.FillAll(a); err != nil {
					return err
				}
			}
			if err := applyAnswers(d, pairs); err != nil {
				return err
			}

			ev, err := e.clinic.Finalize(ctx, d)
			var inc *evaluation.IncompleteError
			if errors.As(err, &inc) {
				return fmt.Errorf("responda todas as perguntas: faltam %d (%s)", len(inc.Missing), strings.Join(inc.Missing, ", "))
			}
			if err != nil {
				return err
			}

			full, err := e.clinic.Report(ctx, c.ID, ev.Date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Avaliação registrada para %s em %s.\n", c.Name, ev.Date.Format(dateLayout))
			if s, ok := full.Report.Summary(category); ok {
				fmt.Fprintf(out, "%s (faixa %s): %d/%d = %.1f%% · esperado %s%% · %s\n",
					s.Category, s.AgeBand, s.Raw, s.Max, s.Percentage, report.FormatPercent(s.Ideal), s.Class.Label())
			}
			return nil
		},
	}
	evalCmd.Flags().String("category", "", "Area: Socialização, Cognição, Linguagem, Autoajuda or Motricidade")
	evalCmd.Flags().String("age", "", "Age band: 0-1, 1 ... 6 (default: from the child's age)")
	evalCmd.Flags().String("fill", "", "Answer every question with this value first")
	evalCmd.Flags().StringArray("answer", nil, "question=answer pairs, repeatable or comma-separated")
	_ = evalCmd.MarkFlagRequired("category")
	return evalCmd
}
