package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/project"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, back up and edit application settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print where settings and the library are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:    %s\n", a.configPath())
			fmt.Fprintf(out, "templates: %s\n", a.templatesPath())
			fmt.Fprintf(out, "profiles:  %s\n", a.profilesPath())
			fmt.Fprintf(out, "inventory: %s\n", a.inventoryPath())
			fmt.Fprintf(out, "library:   %s\n", a.libraryPath())
			return nil
		},
	}

	backupCmd := &cobra.Command{
		Use:   "backup <file>",
		Short: "Write config, inventory, templates and profiles to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(a.inventoryPath())
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			templates, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			profiles, err := project.LoadCustomProfiles(a.profilesPath())
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			if err := project.ExportAllData(args[0], a.cfg, inv, templates, profiles); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Backed up settings to %s", args[0])
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace settings with a backup written by `config backup`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.configPath(), data.Config); err != nil {
				return err
			}
			if err := project.SaveInventory(a.inventoryPath(), data.Inventory); err != nil {
				return fmt.Errorf("failed to save inventory: %w", err)
			}
			if err := project.SaveTemplates(a.templatesPath(), data.Templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			if err := project.SaveCustomProfiles(a.profilesPath(), data.Profiles); err != nil {
				return fmt.Errorf("failed to save profiles: %w", err)
			}
			printOK(cmd.OutOrStdout(), "Restored settings from %s (backup %s, %s)", args[0], data.Version, data.CreatedAt)
			return nil
		},
	}

	cmd.AddCommand(showCmd, pathCmd, backupCmd, restoreCmd, inventoryCmd(a), profileCmd(a))
	return cmd
}
