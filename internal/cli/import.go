package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/importer"
)

func importCmd(a *app) *cobra.Command {
	var space string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add pieces listed in a CSV or Excel file",
		Long: `Add pieces from a CSV (any of , ; tab | delimiters) or XLSX file. Columns
are matched by header (type, thickness, space, name, qty) or taken in that
order when there is no header. Rows without a space go into the selected
space, in file order.

Example file:
  type,thickness,space,name
  left,18,,
  right,18,,
  bottom,18,,
  shelf,18,,Upper shelf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.Import(args[0])
			out := cmd.OutOrStdout()
			printWarnings(out, result.Warnings)
			printErrors(out, result.Errors)
			if len(result.Pieces) == 0 {
				return fmt.Errorf("no pieces to import from %s", args[0])
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
			added, warnings := s.ImportPieces(result.Pieces)
			printWarnings(out, warnings)
			printOK(out, "Imported %d of %d piece(s)", added, len(result.Pieces))
			if added == 0 {
				return nil
			}
			printWarnings(out, s.Layout().Warnings)
			return a.saveStore(s)
		},
	}

	cmd.Flags().StringVarP(&space, "space", "s", "", "Space for rows that do not name one")
	return cmd
}
