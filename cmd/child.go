package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/store"
)

var errAmbiguousChild = errors.New("more than one child matches")

// findChild resolves a child by ID or, failing that, by case-insensitive name.
func findChild(ctx context.Context, svc *clinic.Service, ref string) (child.Child, error) {
	c, err := svc.Child(ctx, ref)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return c, err
	}
	children, err := svc.Children(ctx)
	if err != nil {
		return child.Child{}, err
	}
	var matches []child.Child
	for _, c := range children {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return child.Child{}, fmt.Errorf("child %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return child.Child{}, fmt.Errorf("%w %q, use the id", errAmbiguousChild, ref)
	}
}

func newChildCmd() *cobra.Command {
	childCmd := &cobra.Command{
		Use:   "child",
		Short: "Manage registered children",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a child",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			age, _ := cmd.Flags().GetInt("age")
			notes, _ := cmd.Flags().GetString("notes")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			c, err := e.clinic.RegisterChild(cmd.Context(), name, age, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Criança cadastrada: %s (%d anos)\nID: %s\n", c.Name, c.Age, c.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Child's name")
	addCmd.Flags().Int("age", 0, "Age in years")
	addCmd.Flags().String("notes", "", "Free-text notes")
	_ = addCmd.MarkFlagRequired("name")

	editCmd := &cobra.Command{
		Use:   "edit <child>",
		Short: "Change a child's name, age or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			name, age, notes := c.Name, c.Age, c.Notes
			if cmd.Flags().Changed("name") {
				name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("age") {
				age, _ = cmd.Flags().GetInt("age")
			}
			if cmd.Flags().Changed("notes") {
				notes, _ = cmd.Flags().GetString("notes")
			}
			c, err = e.clinic.UpdateChild(ctx, c.ID, name, age, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dados atualizados: %s (%d anos)\n", c.Name, c.Age)
			return nil
		},
	}
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().Int("age", 0, "New age in years")
	editCmd.Flags().String("notes", "", "New notes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered children",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			children, err := e.clinic.Children(cmd.Context())
			if err != nil {
				return err
			}
			if len(children) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma criança cadastrada.")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-36s  %-24s  %5s  %10s\n", "ID", "Nome", "Idade", "Avaliações")
			fmt.Fprintln(out, strings.Repeat("\u2500", 81))
			for _, c := range children {
				fmt.Fprintf(out, "%-36s  %-24s  %5d  %10d\n", c.ID, c.Name, c.Age, len(c.Evaluations))
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <child>",
		Short: "Show a child's details",
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
			fmt.Fprintf(out, "ID:          %s\n", c.ID)
			fmt.Fprintf(out, "Nome:        %s\n", c.Name)
			fmt.Fprintf(out, "Idade:       %d anos\n", c.Age)
			if c.Notes != "" {
				fmt.Fprintf(out, "Observações: %s\n", c.Notes)
			}
			fmt.Fprintf(out, "Avaliações:  %d\n", len(c.Evaluations))
			if last, ok := c.LastEvaluation(); ok {
				fmt.Fprintf(out, "Última:      %s (%s, faixa %s)\n", last.Date.Format(dateLayout), last.Category, last.AgeBand)
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <child>",
		Short: "Delete a child and all evaluations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := e.clinic.DeleteChild(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Criança excluída: %s\n", c.Name)
			return nil
		},
	}

	childCmd.AddCommand(addCmd, editCmd, listCmd, showCmd, deleteCmd)
	return childCmd
}

const dateLayout = "02/01/2006"
