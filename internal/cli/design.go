package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/store"
)

func newCmd(a *app) *cobra.Command {
	var (
		width, height, depth, thickness float64
		force                           bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty design",
		Long: `Create an empty design file. The enclosure and panel thickness come from
the saved configuration unless given as flags.

Examples:
  carcass new Wardrobe --width 1200 --height 2000 --depth 580
  carcass new -p kitchen.carcass "Base unit" --thickness 19`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refuseOverwrite(force); err != nil {
				return err
			}

			p := a.cfg.NewProject()
			if len(args) == 1 {
				p.Name = args[0]
			}
			if cmd.Flags().Changed("width") {
				p.Root.Width = width
			}
			if cmd.Flags().Changed("height") {
				p.Root.Height = height
			}
			if cmd.Flags().Changed("depth") {
				p.Root.Depth = depth
			}
			if p.Root.IsDegenerate() {
				return fmt.Errorf("root %gx%gx%g: %w", p.Root.Width, p.Root.Height, p.Root.Depth, store.ErrInvalidDimensions)
			}
			if cmd.Flags().Changed("thickness") {
				if thickness <= 0 {
					return fmt.Errorf("thickness %g: %w", thickness, store.ErrInvalidDimensions)
				}
				p.DefaultThickness = thickness
			}

			if err := a.saveProject(p); err != nil {
				return fmt.Errorf("failed to create design: %w", err)
			}
			printOK(cmd.OutOrStdout(), "Created %s: %s (%s, %gmm panels)",
				a.projectPath, p.Name, formatDims(p.Root), p.DefaultThickness)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "Enclosure width in mm")
	cmd.Flags().Float64Var(&height, "height", 0, "Enclosure height in mm")
	cmd.Flags().Float64Var(&depth, "depth", 0, "Enclosure depth in mm")
	cmd.Flags().Float64VarP(&thickness, "thickness", "t", 0, "Default panel thickness in mm")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing design file")
	return cmd
}

func addCmd(a *app) *cobra.Command {
	var (
		thickness float64
		space     string
		name      string
		count     int
	)

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Insert a piece into the selected space",
		Long: `Insert a piece. Structural types (left, right, front, back, bottom, top)
shrink the space they are placed in; shelf and divider split it.

The piece goes into --space if given, else the selected space, else the
first active space.

Examples:
  carcass add left
  carcass add shelf --count 3
  carcass add divider --space main --thickness 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := model.ParsePieceType(args[0])
			if !ok {
				return fmt.Errorf("add %q: %w", args[0], store.ErrUnknownPieceType)
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("space") {
				if err := s.SelectSpace(space); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("thickness") {
				thickness = s.Project().DefaultThickness
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				p, err := s.AddPieceWithThickness(t, thickness)
				if err != nil {
					if i == 0 {
						return err
					}
					printWarnings(out, []string{fmt.Sprintf("stopped after %d: %v", i, err)})
					break
				}
				if name != "" {
					if err := s.RenamePiece(p.ID, name); err != nil {
						return err
					}
					p.Name = name
				}
				printOK(out, "Added %s %s in %s (%gmm)", idColor(p.ID), p.Name, p.ParentSpaceID, p.Thickness)
			}
			printWarnings(out, s.Layout().Warnings)
			return a.saveStore(s)
		},
	}

	cmd.Flags().Float64VarP(&thickness, "thickness", "t", 0, "Panel thickness in mm (default: design thickness)")
	cmd.Flags().StringVarP(&space, "space", "s", "", "Space to insert into (also selects it)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the piece")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "Number of pieces to insert")
	return cmd
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <piece-id>...",
		Aliases: []string{"rm"},
		Short:   "Remove pieces and everything generated from them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := s.RemovePiece(id); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), "Removed %s", idColor(id))
			}
			return a.saveStore(s)
		},
	}
}

func setCmd(a *app) *cobra.Command {
	var (
		name      string
		thickness float64
	)

	cmd := &cobra.Command{
		Use:   "set <piece-id>",
		Short: "Rename a piece or change its thickness",
		Example: `  carcass set a1b2c3d4 --name "Plinth Shelf"
  carcass set a1b2c3d4 --thickness 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("name") && !fs.Changed("thickness") {
				return fmt.Errorf("nothing to change (use --name or --thickness)")
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			id := args[0]
			if fs.Changed("name") {
				if err := s.RenamePiece(id, name); err != nil {
					return err
				}
			}
			if fs.Changed("thickness") {
				if err := s.SetThickness(id, thickness); err != nil {
					return err
				}
			}
			if err := a.saveStore(s); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Updated %s", idColor(id))
			printWarnings(cmd.OutOrStdout(), s.Layout().Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New display name")
	cmd.Flags().Float64VarP(&thickness, "thickness", "t", 0, "New thickness in mm")
	return cmd
}

func renameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			s.SetName(args[0])
			if err := a.saveStore(s); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Design renamed to %s", args[0])
			return nil
		},
	}
}

func rootDimsCmd(a *app) *cobra.Command {
	var thickness float64

	cmd := &cobra.Command{
		Use:   "root [width height depth]",
		Short: "Show or resize the enclosure",
		Long: `Without arguments, print the enclosure size. With three values, resize
it; every piece is laid out again against the new enclosure.

Examples:
  carcass root
  carcass root 1200 900 450
  carcass root --thickness 25`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected 0 or 3 arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 && !cmd.Flags().Changed("thickness") {
				p := s.Project()
				fmt.Fprintf(out, "Root: %s\n", formatDims(p.Root))
				fmt.Fprintf(out, "Default thickness: %gmm\n", p.DefaultThickness)
				return nil
			}

			if len(args) == 3 {
				vals := make([]float64, 3)
				for i, arg := range args {
					v, err := strconv.ParseFloat(arg, 64)
					if err != nil {
						return fmt.Errorf("invalid dimension %q: %w", arg, err)
					}
					vals[i] = v
				}
				dims := model.Dimensions{Width: vals[0], Height: vals[1], Depth: vals[2]}
				if err := s.UpdateRootDimensions(dims); err != nil {
					return err
				}
				printOK(out, "Root resized to %s", formatDims(dims))
			}
			if cmd.Flags().Changed("thickness") {
				if err := s.SetDefaultThickness(thickness); err != nil {
					return err
				}
				printOK(out, "Default thickness set to %gmm", thickness)
			}
			printWarnings(out, s.Layout().Warnings)
			return a.saveStore(s)
		},
	}

	cmd.Flags().Float64VarP(&thickness, "thickness", "t", 0, "Set the default panel thickness in mm")
	return cmd
}

func selectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select [space-id]",
		Short: "Select the space new pieces go into",
		Long: `Select an active space. New pieces are inserted there until the space is
split or the selection is cleared. Without an argument the selection is
cleared and pieces go into the first active space.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			if err := s.SelectSpace(id); err != nil {
				return err
			}
			if id == "" {
				printOK(cmd.OutOrStdout(), "Selection cleared")
			} else {
				printOK(cmd.OutOrStdout(), "Selected %s", idColor(id))
			}
			return a.saveStore(s)
		},
	}
}

func undoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last change to the design",
		Long: `Revert the last change made by a carcass command. The undo history is
kept next to the design file (<design>.history) and holds up to 50 steps.
Creating a design or applying a template starts a fresh history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			label, ok := s.Undo()
			if !ok {
				return fmt.Errorf("nothing to undo")
			}
			if err := a.saveStore(s); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Undid %s", label)
			return nil
		},
	}
}

func redoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Reapply the last undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			label := s.RedoLabel()
			if !s.Redo() {
				return fmt.Errorf("nothing to redo")
			}
			if err := a.saveStore(s); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Redid %s", label)
			return nil
		},
	}
}

func formatDims(d model.Dimensions) string {
	return fmt.Sprintf("%gx%gx%g mm", d.Width, d.Height, d.Depth)
}
