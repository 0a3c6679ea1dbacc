package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/layout"
	"github.com/piwi3910/Carcass/internal/model"
)

// showOutput is the JSON shape of `carcass show --json`.
type showOutput struct {
	Name     string           `json:"name"`
	Root     model.Dimensions `json:"root"`
	Selected string           `json:"selected,omitempty"`
	Layout   layout.Result    `json:"layout"`
}

func showCmd(a *app) *cobra.Command {
	var (
		asJSON   bool
		cutList  bool
		showAll  bool
		estimate bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the design's spaces, pieces and warnings",
		Long: `Show the laid-out design.

Display modes:
  Default: active spaces and user pieces
  --all: every rendered piece, including slats, capping and cleats
  --cutlist: grouped cut list with sheet and banding estimates
  --json: the full layout as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			p := s.Project()
			res := s.Layout()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(showOutput{Name: p.Name, Root: p.Root, Selected: p.Selected, Layout: res})
			}

			fmt.Fprintf(out, "%s  %s\n", p.Name, dimColor(formatDims(p.Root)))
			fmt.Fprintln(out)

			active := res.ActiveSpaces()
			fmt.Fprintf(out, "Active spaces (%d):\n", len(active))
			for _, sp := range active {
				marker := ""
				if sp.ID == p.Selected {
					marker = okMark(" [selected]")
				}
				fmt.Fprintf(out, "  %-20s %s%s\n", idColor(sp.ID), formatDims(sp.CurrentDimensions), marker)
			}
			fmt.Fprintln(out)

			pieces := res.Pieces
			if !showAll {
				pieces = userPieces(res.Pieces)
			}
			fmt.Fprintf(out, "Pieces (%d):\n", len(pieces))
			for _, pc := range pieces {
				printPiece(out, pc)
			}

			if cutList {
				fmt.Fprintln(out)
				printCutList(out, model.BuildCutList(res.Pieces), p.Settings, estimate)
			}

			if len(res.Warnings) > 0 {
				fmt.Fprintln(out)
				printWarnings(out, res.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include generated pieces")
	cmd.Flags().BoolVar(&cutList, "cutlist", false, "Print the cut list")
	cmd.Flags().BoolVar(&estimate, "estimate", true, "Include sheet and banding estimates with --cutlist")
	return cmd
}

func userPieces(pieces []model.Piece) []model.Piece {
	var out []model.Piece
	for _, p := range pieces {
		if !p.Type.IsDerived() {
			out = append(out, p)
		}
	}
	return out
}

func printPiece(w io.Writer, p model.Piece) {
	fmt.Fprintf(w, "  %-10s %-24s %-18s pos (%.1f, %.1f, %.1f)",
		idColor(p.ID), p.Name, formatDims(p.Dimensions), p.Position.X, p.Position.Y, p.Position.Z)
	if len(p.Holes) > 0 {
		fmt.Fprintf(w, " %s", dimColor(fmt.Sprintf("%d holes", len(p.Holes))))
	}
	fmt.Fprintln(w)
}

func printCutList(w io.Writer, entries []model.CutListEntry, settings model.DrillSettings, estimate bool) {
	fmt.Fprintf(w, "Cut list (%d line(s)):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %3dx %-24s %6.0f x %-6.0f %4.0fmm", e.Quantity, e.Name, e.Length, e.Width, e.Thickness)
		if e.Holes > 0 {
			fmt.Fprintf(w, "  %d holes each", e.Holes)
		}
		fmt.Fprintln(w)
	}
	if !estimate || len(entries) == 0 {
		return
	}

	fmt.Fprintln(w)
	for _, est := range model.EstimateByThickness(entries, settings) {
		fmt.Fprintf(w, "  %gmm: %.2f m2, %d sheet(s) of %gx%g incl. %.0f%% waste\n",
			est.Thickness, est.TotalSquareMeters, est.SheetsWithWaste,
			settings.SheetWidth, settings.SheetHeight, est.WastePercent)
	}
	banding := model.CalculateEdgeBanding(entries, settings.BandingWastePercent)
	if banding.EdgeCount > 0 {
		fmt.Fprintf(w, "  Edge banding: %.2f m over %d edge(s), %.2f m with waste\n",
			banding.TotalLinearM, banding.EdgeCount, banding.TotalWithWasteM)
	}
}
