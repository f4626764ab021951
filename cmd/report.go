package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/export"
	"github.com/multikids/portage/internal/narrative"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report <child>",
		Short: "Print or export a child's development report",
		Long: "Print a child's report to stdout, or write it to a file with --output.\n" +
			"Formats: text, markdown, html, xlsx, json. When --output is a directory the\n" +
			"file name is derived from the child's name and today's date.",
		Example: "  portage report Ana\n" +
			"  portage report Ana --format html --output ./relatorios\n" +
			"  portage report Ana --format xlsx --output ana.xlsx --narrative",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			format, err := export.ParseFormat(formatFlag)
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
			full, err := e.clinic.Report(ctx, c.ID, e.clinic.Now())
			if err != nil {
				return err
			}
			therapist, err := e.clinic.TherapistName(ctx)
			if err != nil {
				return err
			}

			useNarrative := e.cfg.Report.Narrative
			if cmd.Flags().Changed("narrative") {
				useNarrative, _ = cmd.Flags().GetBool("narrative")
			}
			var recs []narrative.Recommendation
			if useNarrative {
				recs = newNarrative(ctx, true, e.logger, cmd.ErrOrStderr()).Recommend(ctx, full)
			} else {
				recs = narrative.Static(full.Report)
			}

			in := export.Input{Full: full, Therapist: therapist, Recommendations: recs}

			if output == "" {
				if format == export.FormatXLSX {
					return fmt.Errorf("format %s needs --output", format)
				}
				out := cmd.OutOrStdout()
				return export.Write(out, format, in, export.Options{Color: export.ColorEnabled(out)})
			}

			path := output
			if info, err := os.Stat(output); err == nil && info.IsDir() {
				path = filepath.Join(output, export.FileName(full, format))
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			if err := export.Write(f, format, in, export.Options{}); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Relatório salvo em %s\n", path)
			return nil
		},
	}
	reportCmd.Flags().String("format", string(export.FormatText), "Output format: text, markdown, html, xlsx, json")
	reportCmd.Flags().StringP("output", "o", "", "Write to this file or directory instead of stdout")
	reportCmd.Flags().Bool("narrative", false, "Ask the configured AI provider for recommendations")
	return reportCmd
}
