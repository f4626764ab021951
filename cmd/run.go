package cmd

import (
	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/app"
	"github.com/multikids/portage/internal/screens"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(screens.Deps{
		Clinic:    e.clinic,
		Narrative: newNarrative(cmd.Context(), e.cfg.Report.Narrative, e.logger, cmd.ErrOrStderr()),
	})
}
