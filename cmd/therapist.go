package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTherapistCmd() *cobra.Command {
	therapistCmd := &cobra.Command{
		Use:   "therapist",
		Short: "Show or set the therapist name printed on reports",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the therapist name",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			name, err := e.clinic.TherapistName(cmd.Context())
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum terapeuta definido.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Set the therapist name; an empty name clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			name := strings.TrimSpace(args[0])
			if err := e.clinic.SetTherapistName(cmd.Context(), name); err != nil {
				return err
			}
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Nome do terapeuta removido.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Terapeuta: %s\n", name)
			return nil
		},
	}

	therapistCmd.AddCommand(getCmd, setCmd)
	return therapistCmd
}
