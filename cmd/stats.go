package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/catalog"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals for children and evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			st, err := e.clinic.Stats(ctx)
			if err != nil {
				return err
			}
			children, err := e.clinic.Children(ctx)
			if err != nil {
				return err
			}

			perCategory := make(map[catalog.Category]int)
			for _, c := range children {
				for _, ev := range c.Evaluations {
					perCategory[ev.Category]++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Crianças:   %d\n", st.Children)
			fmt.Fprintf(out, "Avaliações: %d\n", st.Evaluations)
			if st.Evaluations == 0 {
				return nil
			}
			fmt.Fprintln(out)
			for _, c := range catalog.Categories() {
				fmt.Fprintf(out, "  %-14s %d\n", c, perCategory[c])
			}
			return nil
		},
	}
}
