package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/project"
)

func inventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Drill bits and sheet materials used by exports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List drill bits and sheet materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(a.inventoryPath())
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Drill bits (%d):\n", len(inv.Bits))
			for _, b := range inv.Bits {
				fmt.Fprintf(out, "  %s  %-24s %gmm  %d rpm\n", idColor(b.ID), b.Name, b.Diameter, b.SpindleSpeed)
			}
			fmt.Fprintf(out, "Materials (%d):\n", len(inv.Materials))
			for _, m := range inv.Materials {
				fmt.Fprintf(out, "  %s  %-24s %gx%g %gmm\n", idColor(m.ID), m.Name, m.Width, m.Height, m.Thickness)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Merge bits and materials from another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(a.inventoryPath())
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			merged, err := project.ImportInventory(args[0], inv)
			if err != nil {
				return fmt.Errorf("failed to import inventory: %w", err)
			}
			if err := project.SaveInventory(a.inventoryPath(), merged); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Imported %d bit(s) and %d material(s)",
				len(merged.Bits)-len(inv.Bits), len(merged.Materials)-len(inv.Materials))
			return nil
		},
	})

	return cmd
}

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "G-code post-processor profiles",
	}

	// saveCustom writes the registered custom profiles back to the home dir.
	saveCustom := func() error {
		return project.SaveCustomProfiles(a.profilesPath(), model.CustomProfiles)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in and custom profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range model.GetProfileNames() {
				p := model.GetProfile(name)
				kind := "custom"
				if p.IsBuiltIn {
					kind = "built-in"
				}
				fmt.Fprintf(out, "  %-16s %s  %s\n", name, dimColor(kind), p.Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Create a custom profile from the Generic one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := model.AddCustomProfile(model.NewCustomProfile(args[0])); err != nil {
				return err
			}
			if err := saveCustom(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Created profile %s (edit %s to customise)", args[0], a.profilesPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a custom profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := model.RemoveCustomProfile(args[0]); err != nil {
				return err
			}
			if err := saveCustom(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Removed profile %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write one profile to a file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.GetProfile(args[0])
			if !strings.EqualFold(p.Name, args[0]) {
				return fmt.Errorf("no profile named %q (have: %s)", args[0], strings.Join(model.GetProfileNames(), ", "))
			}
			if err := project.ExportProfile(args[1], p); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Exported profile %s to %s", p.Name, args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Add a profile written by `config profile export`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportProfile(args[0])
			if err != nil {
				return err
			}
			if err := model.AddCustomProfile(p); err != nil {
				return err
			}
			if err := saveCustom(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Imported profile %s", p.Name)
			return nil
		},
	})

	return cmd
}
