package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/project"
)

// withLibrary opens the design library for the duration of fn.
func (a *app) withLibrary(fn func(*project.Library) error) error {
	lib, err := project.OpenLibrary(a.libraryPath())
	if err != nil {
		return err
	}
	defer lib.Close()
	return fn(lib)
}

func libraryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Manage the design library",
		Long:    "Save, list, open and delete designs in the SQLite design library",
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current design to the library",
		Long:  "Save the current design under name (default: the design's name). A design with the same name is replaced.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			p := s.Project()
			name := p.Name
			if len(args) == 1 {
				name = args[0]
			}
			return a.withLibrary(func(lib *project.Library) error {
				entry, err := lib.Save(context.Background(), name, p)
				if err != nil {
					return fmt.Errorf("failed to save design: %w", err)
				}
				printOK(cmd.OutOrStdout(), "Saved %s to library as %s (%d pieces)", name, idColor(entry.ID), entry.PieceCount)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLibrary(func(lib *project.Library) error {
				entries, err := lib.List(context.Background())
				if err != nil {
					return fmt.Errorf("failed to list designs: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No designs found")
					return nil
				}
				fmt.Fprintf(out, "Found %d design(s):\n\n", len(entries))
				for _, e := range entries {
					fmt.Fprintf(out, "%-10s %-30s %3d pieces  %s\n", idColor(e.ID), e.Name, e.PieceCount, dimColor(e.UpdatedAt))
				}
				return nil
			})
		},
	}

	var force bool
	openCmd := &cobra.Command{
		Use:   "open <name-or-id>",
		Short: "Write a saved design to the design file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refuseOverwrite(force); err != nil {
				return err
			}
			return a.withLibrary(func(lib *project.Library) error {
				p, err := lib.Load(context.Background(), args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				if err := a.saveProject(p); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), "Opened %s into %s", p.Name, a.projectPath)
				return nil
			})
		},
	}
	openCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing design file")

	deleteCmd := &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLibrary(func(lib *project.Library) error {
				if err := lib.Delete(context.Background(), args[0]); err != nil {
					return fmt.Errorf("failed to delete %s: %w", args[0], err)
				}
				printOK(cmd.OutOrStdout(), "Deleted %s", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(saveCmd, listCmd, openCmd, deleteCmd)
	return cmd
}
