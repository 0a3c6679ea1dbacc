package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/export"
	"github.com/piwi3910/Carcass/internal/gcode"
	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/project"
)

// exportOptions are the machining overrides shared by every export.
type exportOptions struct {
	bit      string
	material string
	profile  string
}

// report builds the export report, applying inventory presets and the
// G-code profile given on the command line.
func (a *app) report(opts exportOptions) (export.Report, error) {
	s, err := a.openStore()
	if err != nil {
		return export.Report{}, err
	}
	p := s.Project()

	if opts.bit != "" || opts.material != "" {
		inv, err := project.LoadInventory(a.inventoryPath())
		if err != nil {
			return export.Report{}, fmt.Errorf("failed to load inventory: %w", err)
		}
		if opts.bit != "" {
			bit := inv.FindBitByName(opts.bit)
			if bit == nil {
				bit = inv.FindBitByID(opts.bit)
			}
			if bit == nil {
				return export.Report{}, fmt.Errorf("no drill bit named %q (have: %s)", opts.bit, strings.Join(inv.BitNames(), ", "))
			}
			bit.ApplyToSettings(&p.Settings)
		}
		if opts.material != "" {
			mat, err := pickMaterial(&inv, opts.material, p.DefaultThickness)
			if err != nil {
				return export.Report{}, err
			}
			mat.ApplyToSettings(&p.Settings)
		}
	}
	if opts.profile != "" {
		p.Settings.GCodeProfile = model.GetProfile(opts.profile).Name
	}
	return export.NewReport(p, s.Layout()), nil
}

// pickMaterial resolves a material by name or id. "auto" picks the preset
// matching the design's default thickness.
func pickMaterial(inv *model.Inventory, ref string, thickness float64) (*model.MaterialPreset, error) {
	if strings.EqualFold(ref, "auto") {
		if m := inv.MaterialForThickness(thickness); m != nil {
			return m, nil
		}
		return nil, fmt.Errorf("no %gmm material in the inventory", thickness)
	}
	if m := inv.FindMaterialByName(ref); m != nil {
		return m, nil
	}
	if m := inv.FindMaterialByID(ref); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("no material named %q (have: %s)", ref, strings.Join(inv.MaterialNames(), ", "))
}

// countDrillHits reads a written program back and counts the holes it drills.
func countDrillHits(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read back %s: %w", path, err)
	}
	return len(gcode.DrillPoints(gcode.ParseGCode(string(data)))), nil
}

// outputPath returns args[0], or the design file name with ext.
func (a *app) outputPath(args []string, ext string) string {
	if len(args) == 1 {
		return args[0]
	}
	return strings.TrimSuffix(a.projectPath, filepath.Ext(a.projectPath)) + ext
}

func exportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the design for the workshop",
		Long: `Export the laid-out design as a PDF report, QR labels, a spreadsheet,
a DXF drill map or per-face drilling G-code.

Examples:
  carcass export pdf
  carcass export labels labels.pdf
  carcass export gcode ./nc --profile Mach3 --bit "8mm Dowel Drill"`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.bit, "bit", "", "Drill bit from the inventory to use (name or id)")
	pf.StringVar(&opts.material, "material", "", "Sheet material to estimate with (name, id or \"auto\")")
	pf.StringVar(&opts.profile, "profile", "", "G-code profile (default: design setting)")

	fileExport := func(use, short, ext string, write func(string, export.Report) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [file]",
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.report(opts)
				if err != nil {
					return err
				}
				path := a.outputPath(args, ext)
				if err := write(path, r); err != nil {
					return fmt.Errorf("failed to export %s: %w", use, err)
				}
				printOK(cmd.OutOrStdout(), "Exported %s", path)
				return nil
			},
		}
	}

	cmd.AddCommand(fileExport("pdf", "Cut list, purchase estimate and drilling sheets as PDF", ".pdf", export.ExportPDF))
	cmd.AddCommand(fileExport("labels", "QR-coded panel labels (Avery 5160) as PDF", "-labels.pdf", export.ExportLabels))
	cmd.AddCommand(fileExport("xlsx", "Cut list, pieces and holes as an Excel workbook", ".xlsx", export.ExportXLSX))
	cmd.AddCommand(fileExport("dxf", "Drill map of every drilled face as DXF", ".dxf", export.ExportDXF))

	cmd.AddCommand(&cobra.Command{
		Use:   "gcode [dir]",
		Short: "One drilling program per drilled face",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.report(opts)
			if err != nil {
				return err
			}
			dir := a.outputPath(args, "-gcode")
			files, err := export.ExportGCode(dir, r)
			if err != nil {
				return fmt.Errorf("failed to export gcode: %w", err)
			}
			out := cmd.OutOrStdout()
			printOK(out, "Exported %d program(s) to %s (%s)", len(files), dir, r.Settings.GCodeProfile)
			for _, f := range files {
				holes, err := countDrillHits(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s %s\n", filepath.Base(f), dimColor(fmt.Sprintf("(%d holes)", holes)))
			}
			return nil
		},
	})

	return cmd
}
