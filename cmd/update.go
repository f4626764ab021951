package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/selfupdate"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update portage to the latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			out := cmd.OutOrStdout()
			err := checker.Update(ctx, &selfupdate.UpdateInput{
				CurrentVersion: version,
			}, func(p selfupdate.UpdateProgress) {
				fmt.Fprintln(out, p.Message)
			})

			if err == nil {
				return nil
			}
			if errors.Is(err, selfupdate.ErrDevBuild) {
				fmt.Fprintln(out, "Não é possível atualizar uma versão de desenvolvimento. Instale uma versão publicada.")
				return nil
			}
			if errors.Is(err, selfupdate.ErrAlreadyLatest) {
				fmt.Fprintln(out, "Você já está usando a versão mais recente.")
				return nil
			}
			if os.IsPermission(err) {
				return fmt.Errorf("%w\n\nTente: sudo portage update", err)
			}
			return err
		},
	}
}
