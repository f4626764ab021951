package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/multikids/portage/internal/backup"
)

func newBackupCmd() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all data as a JSON backup",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every child, evaluation and the therapist name to a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			doc, err := backup.Export(cmd.Context(), e.store.Children(), e.store.Therapist(), e.clinic.Now())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return backup.Write(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			if err := backup.Write(f, doc); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Backup salvo em %s (%d crianças)\n", output, len(doc.Children))
			return nil
		},
	}
	exportCmd.Flags().StringP("output", "o", "", "Backup file (default: stdout)")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup file",
		Long: "Restore a backup file. --mode replace discards the stored children first;\n" +
			"--mode merge keeps them and adds only children whose id is new.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeFlag, _ := cmd.Flags().GetString("mode")
			mode, err := backup.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open backup file: %w", err)
				}
				defer f.Close()
				r = f
			}
			doc, err := backup.Read(r)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := backup.Restore(cmd.Context(), e.store.Children(), e.store.Therapist(), doc, mode)
			if err != nil {
				return err
			}
			e.logger.Info("backup restored", zap.String("mode", mode.String()), zap.Int("added", res.Added), zap.Int("skipped", res.Skipped))
			fmt.Fprintf(cmd.OutOrStdout(), "Backup restaurado (%s): %d adicionadas, %d ignoradas, %d no total.\n",
				mode, res.Added, res.Skipped, res.Total)
			return nil
		},
	}
	importCmd.Flags().String("mode", "replace", "replace or merge")

	backupCmd.AddCommand(exportCmd, importCmd)
	return backupCmd
}
