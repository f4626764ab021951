package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/catalog"
)

func newQuestionsCmd() *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "List questionnaire items by area and age band",
		Example: "  portage questions\n" +
			"  portage questions --category cognicao --age 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			catName, _ := cmd.Flags().GetString("category")
			band, _ := cmd.Flags().GetString("age")

			categories := catalog.Categories()
			if catName != "" {
				c, err := catalog.ParseCategory(catName)
				if err != nil {
					return err
				}
				categories = []catalog.Category{c}
			}

			out := cmd.OutOrStdout()
			found := false
			for _, c := range categories {
				bands := catalog.AgeBandsFor(c)
				if band != "" {
					bands = []string{band}
				}
				for _, b := range bands {
					qs := catalog.QuestionsFor(c, b)
					if len(qs) == 0 {
						continue
					}
					found = true
					fmt.Fprintf(out, "%s · faixa %s\n", c, b)
					for _, q := range qs {
						fmt.Fprintf(out, "  %-10s %s\n", q.ID, q.Text)
					}
					fmt.Fprintln(out)
				}
			}
			if !found {
				return fmt.Errorf("no questions for age band %q", band)
			}
			return nil
		},
	}
	questionsCmd.Flags().String("category", "", "Only this area")
	questionsCmd.Flags().String("age", "", "Only this age band")
	return questionsCmd
}
