package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/report"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <child>",
		Short: "List a child's evaluations, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			c, err := findChild(cmd.Context(), e.clinic, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(c.Evaluations) == 0 {
				fmt.Fprintf(out, "%s ainda não tem avaliações.\n", c.Name)
				return nil
			}

			entries := report.History(c.Evaluations)
			fmt.Fprintf(out, "%s · %d avaliações\n\n", c.Name, len(entries))
			fmt.Fprintf(out, "%-12s %-16s %-6s %8s %8s\n", "Data", "Área", "Faixa", "Pontos", "%")
			fmt.Fprintln(out, strings.Repeat("─", 54))
			for i := len(entries) - 1; i >= 0; i-- {
				h := entries[i]
				fmt.Fprintf(out, "%-12s %-16s %-6s %8s %7.1f%%\n",
					h.Date.Format(dateLayout), h.Category, h.AgeBand,
					fmt.Sprintf("%d/%d", h.Raw, h.Max), h.Percentage())
			}
			return nil
		},
	}
}
