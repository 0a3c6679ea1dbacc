package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/project"
)

func templateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable design templates",
		Long:  "Save the current design as a template and start new designs from templates",
	}

	var description string
	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current design as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			templates, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}

			tmpl := model.NewDesignTemplate(args[0], description, s.Project())
			if old := templates.FindByName(args[0]); old != nil {
				tmpl.ID, tmpl.CreatedAt = old.ID, old.CreatedAt
				templates.Remove(old.ID)
			}
			templates.Add(tmpl)

			if err := project.SaveTemplates(a.templatesPath(), templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			printOK(cmd.OutOrStdout(), "Saved template %s: %s (%d pieces)", idColor(tmpl.ID), tmpl.Name, len(tmpl.Pieces))
			return nil
		},
	}
	saveCmd.Flags().StringVarP(&description, "description", "d", "", "Template description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(templates.Templates) == 0 {
				fmt.Fprintln(out, "No templates found")
				return nil
			}
			fmt.Fprintf(out, "Found %d template(s):\n\n", len(templates.Templates))
			for _, t := range templates.Templates {
				fmt.Fprintf(out, "%-10s %s  %s", idColor(t.ID), t.Name, dimColor(formatDims(t.Root)))
				if t.Description != "" {
					fmt.Fprintf(out, " - %s", t.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	var (
		projectName string
		force       bool
	)
	applyCmd := &cobra.Command{
		Use:   "apply <name-or-id>",
		Short: "Start a new design file from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refuseOverwrite(force); err != nil {
				return err
			}
			templates, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			tmpl := templates.FindByName(args[0])
			if tmpl == nil {
				tmpl = templates.FindByID(args[0])
			}
			if tmpl == nil {
				return fmt.Errorf("template not found: %s", args[0])
			}

			name := projectName
			if name == "" {
				name = tmpl.Name
			}
			p := tmpl.ToProject(name)
			if err := a.saveProject(p); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Created %s from template %s (%d pieces)", a.projectPath, tmpl.Name, len(p.Pieces))
			return nil
		},
	}
	applyCmd.Flags().StringVarP(&projectName, "name", "n", "", "Name of the new design (default: template name)")
	applyCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing design file")

	deleteCmd := &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := project.LoadTemplates(a.templatesPath())
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			id := args[0]
			if t := templates.FindByName(args[0]); t != nil {
				id = t.ID
			}
			if !templates.Remove(id) {
				return fmt.Errorf("template not found: %s", args[0])
			}
			if err := project.SaveTemplates(a.templatesPath(), templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			printOK(cmd.OutOrStdout(), "Deleted template %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(saveCmd, listCmd, applyCmd, deleteCmd)
	return cmd
}
