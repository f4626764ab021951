package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/backup"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "portage", version)
			fmt.Fprintln(cmd.OutOrStdout(), "backup format", backup.FormatVersion)
		},
	}
}
