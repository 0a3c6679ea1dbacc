package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/store"
)

// dowelFlags are the dowel options shared by slats and capping.
type dowelFlags struct {
	enabled  bool
	diameter float64
	depth    float64
	count    int
	offset   float64
}

func (d *dowelFlags) register(fs *pflag.FlagSet, withCount bool) {
	fs.BoolVar(&d.enabled, "dowels", true, "Drill dowel holes joining the panels")
	fs.Float64Var(&d.diameter, "dowel-diameter", 0, "Dowel diameter in mm")
	fs.Float64Var(&d.depth, "dowel-depth", 0, "Total dowel depth in mm, split between both panels")
	fs.Float64Var(&d.offset, "dowel-offset", 0, "Dowel distance from the panel ends in mm")
	if withCount {
		fs.IntVar(&d.count, "dowels-per-slat", 0, "Dowels per slat")
	}
}

// options returns the dowel settings given on the command line, or nil
// when none were, so the stored settings are kept. Disabled state is
// carried over from prev unless --dowels was given.
func (d *dowelFlags) options(fs *pflag.FlagSet, prev *model.DowelOptions) *model.DowelOptions {
	changed := false
	for _, name := range []string{"dowels", "dowel-diameter", "dowel-depth", "dowel-offset", "dowels-per-slat"} {
		if f := fs.Lookup(name); f != nil && f.Changed {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	opts := model.DowelOptions{
		Diameter:     d.diameter,
		Depth:        d.depth,
		CountPerSlat: d.count,
		EdgeOffset:   changedFloat(fs, "dowel-offset", d.offset),
	}
	if prev != nil {
		opts.Disabled = prev.Disabled
	}
	if fs.Changed("dowels") {
		opts.Disabled = !d.enabled
	}
	return &opts
}

// changedFloat returns v when flag name was given, so an explicit 0 is
// kept, and nil otherwise.
func changedFloat(fs *pflag.FlagSet, name string, v float64) *float64 {
	if fs.Changed(name) {
		return model.Float(v)
	}
	return nil
}

// requirePositive rejects an explicit zero or negative value for flags
// whose zero means "keep the stored value".
func requirePositive(fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if v, err := strconv.ParseFloat(f.Value.String(), 64); err == nil && v <= 0 {
			return fmt.Errorf("--%s %s: %w", name, f.Value.String(), store.ErrInvalidDimensions)
		}
	}
	return nil
}

// extensionFlags are the per-side overhangs of capping and cleats.
type extensionFlags struct {
	values map[model.Direction]*float64
}

func (e *extensionFlags) register(fs *pflag.FlagSet) {
	e.values = make(map[model.Direction]*float64)
	for _, d := range model.AllDirections {
		v := new(float64)
		e.values[d] = v
		fs.Float64Var(v, "ext-"+string(d), 0, fmt.Sprintf("Overhang towards the %s side in mm", d))
	}
}

func (e *extensionFlags) extensions(fs *pflag.FlagSet) model.Extensions {
	var ext model.Extensions
	for _, d := range model.AllDirections {
		if fs.Changed("ext-" + string(d)) {
			ext = ext.Set(d, *e.values[d])
		}
	}
	return ext
}

// storedGenerator returns the generator of kind already attached to piece id.
func storedGenerator(s *store.Store, id string, kind model.GeneratorKind) (model.Generator, bool) {
	p := s.Project()
	idx := p.FindPiece(id)
	if idx < 0 {
		return model.Generator{}, false
	}
	return p.Pieces[idx].Generator(kind)
}

// reportDerived prints how many pieces piece id now generates.
func reportDerived(w io.Writer, s *store.Store, id, what string) {
	res := s.Layout()
	n := 0
	for _, p := range res.Pieces {
		if p.SourceID == id {
			n++
		}
	}
	printOK(w, "%s on %s: %d generated piece(s)", what, idColor(id), n)
	printWarnings(w, res.Warnings)
}

func slatsCmd(a *app) *cobra.Command {
	var (
		direction, mode string
		spacing, width  float64
		slatThickness   float64
		count           int
		clear           bool
		dowels          dowelFlags
	)

	cmd := &cobra.Command{
		Use:   "slats <piece-id>",
		Short: "Turn a panel into a slatted panel",
		Long: `Attach or update a slat array on a panel's external face. Only the values
given are changed; the rest keep their previous or default values.

Examples:
  carcass slats a1b2c3d4 --mode count --count 8
  carcass slats a1b2c3d4 --direction horizontal --spacing 40 --dowels=false
  carcass slats a1b2c3d4 --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s, err := a.openStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if clear {
				if err := s.ClearSlats(id); err != nil {
					return err
				}
				printOK(out, "Slats cleared from %s", idColor(id))
				return a.saveStore(s)
			}

			fs := cmd.Flags()
			if err := requirePositive(fs, "count", "width", "slat-thickness", "dowel-diameter", "dowel-depth", "dowels-per-slat"); err != nil {
				return err
			}
			if spacing < 0 {
				return fmt.Errorf("--spacing %g: %w", spacing, store.ErrInvalidDimensions)
			}
			cfg := model.SlattedPanelConfig{
				Spacing:       changedFloat(fs, "spacing", spacing),
				Count:         count,
				Width:         width,
				SlatThickness: slatThickness,
			}
			switch direction {
			case "":
			case string(model.SlatsVertical), string(model.SlatsHorizontal):
				cfg.Direction = model.SlatDirection(direction)
			default:
				return fmt.Errorf("unknown slat direction %q (valid: vertical, horizontal)", direction)
			}
			switch mode {
			case "":
			case string(model.ModeCount), string(model.ModeSpacing):
				cfg.Mode = model.CalculationMode(mode)
			default:
				return fmt.Errorf("unknown calculation mode %q (valid: count, spacing)", mode)
			}
			var prev *model.DowelOptions
			if g, ok := storedGenerator(s, id, model.GeneratorSlats); ok && g.Slats != nil {
				prev = g.Slats.Dowels
			}
			cfg.Dowels = dowels.options(fs, prev)

			if err := s.SetSlats(id, cfg); err != nil {
				return err
			}
			reportDerived(out, s, id, "Slats")
			return a.saveStore(s)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&direction, "direction", "", "Slat orientation (vertical, horizontal)")
	fs.StringVar(&mode, "mode", "", "Derive the slat count from spacing or a fixed count (spacing, count)")
	fs.Float64Var(&spacing, "spacing", 0, "Target gap between slats in mm")
	fs.IntVar(&count, "count", 0, "Number of slats in count mode")
	fs.Float64Var(&width, "width", 0, "Slat width in mm")
	fs.Float64Var(&slatThickness, "slat-thickness", 0, "Slat thickness in mm")
	fs.BoolVar(&clear, "clear", false, "Remove the slats")
	dowels.register(fs, true)
	return cmd
}

func cappingCmd(a *app) *cobra.Command {
	var (
		thickness, gap float64
		remove         bool
		dowels         dowelFlags
		ext            extensionFlags
	)

	cmd := &cobra.Command{
		Use:   "capping <piece-id>",
		Short: "Cover a panel's external face with a capping panel",
		Long: `Attach or update a capping panel. Each side overhangs by --gap unless a
per-side --ext-<side> value is given.

Examples:
  carcass capping a1b2c3d4 --thickness 25 --gap 10
  carcass capping a1b2c3d4 --ext-front 0 --ext-back 0
  carcass capping a1b2c3d4 --remove`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s, err := a.openStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if remove {
				if err := s.RemoveCapping(id); err != nil {
					return err
				}
				printOK(out, "Capping removed from %s", idColor(id))
				return a.saveStore(s)
			}

			fs := cmd.Flags()
			if err := requirePositive(fs, "thickness", "dowel-diameter", "dowel-depth"); err != nil {
				return err
			}
			cfg := model.CappingConfig{
				Thickness:    thickness,
				GapExtension: changedFloat(fs, "gap", gap),
				Extensions:   ext.extensions(fs),
			}
			var prev *model.DowelOptions
			if g, ok := storedGenerator(s, id, model.GeneratorCapping); ok && g.Capping != nil {
				prev = g.Capping.Dowels
			}
			cfg.Dowels = dowels.options(fs, prev)

			if err := s.SetCapping(id, cfg); err != nil {
				return err
			}
			reportDerived(out, s, id, "Capping")
			return a.saveStore(s)
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&thickness, "thickness", 0, "Capping thickness in mm")
	fs.Float64Var(&gap, "gap", 0, "Default overhang on every side in mm")
	fs.BoolVar(&remove, "remove", false, "Remove the capping")
	dowels.register(fs, false)
	ext.register(fs)
	return cmd
}

func cleatsCmd(a *app) *cobra.Command {
	var (
		mounting, appearance string
		cleatThickness       float64
		cleatWidth           float64
		externalThickness    float64
		autoExtend           bool
		extensionAmount      float64
		gap                  float64
		remove               bool
		ext                  extensionFlags
	)

	cmd := &cobra.Command{
		Use:   "cleats <piece-id>",
		Short: "Mount a structural panel on cleats",
		Long: `Attach or update mounting cleats on a structural panel. Exposed cleats get
a visible external panel over them.

Examples:
  carcass cleats a1b2c3d4 --mounting both --appearance exposed
  carcass cleats a1b2c3d4 --auto-extend --extension-amount 18
  carcass cleats a1b2c3d4 --remove`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s, err := a.openStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if remove {
				if err := s.RemoveCleats(id); err != nil {
					return err
				}
				printOK(out, "Cleats removed from %s", idColor(id))
				return a.saveStore(s)
			}

			fs := cmd.Flags()
			if err := requirePositive(fs, "cleat-thickness", "cleat-width", "external-thickness"); err != nil {
				return err
			}
			cfg := model.CleatConfig{
				CleatThickness:    cleatThickness,
				CleatWidth:        cleatWidth,
				ExternalThickness: externalThickness,
				ExtensionAmount:   changedFloat(fs, "extension-amount", extensionAmount),
				GapExtension:      changedFloat(fs, "gap", gap),
				Extensions:        ext.extensions(fs),
			}
			if mounting != "" {
				if cfg.Mounting, err = model.ParseCleatMounting(mounting); err != nil {
					return err
				}
			}
			if appearance != "" {
				if cfg.Appearance, err = model.ParseCleatAppearance(appearance); err != nil {
					return err
				}
			}
			if fs.Changed("auto-extend") {
				cfg.AutoExtend = autoExtend
			} else if g, ok := storedGenerator(s, id, model.GeneratorCleats); ok && g.Cleats != nil {
				cfg.AutoExtend = g.Cleats.AutoExtend
			}

			if err := s.SetCleats(id, cfg); err != nil {
				return err
			}
			reportDerived(out, s, id, "Cleats")
			return a.saveStore(s)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&mounting, "mounting", "", "Edges carrying a cleat (front, back, both)")
	fs.StringVar(&appearance, "appearance", "", "Whether a visible panel covers the cleats (exposed, hidden)")
	fs.Float64Var(&cleatThickness, "cleat-thickness", 0, "Cleat thickness in mm")
	fs.Float64Var(&cleatWidth, "cleat-width", 0, "Cleat width in mm")
	fs.Float64Var(&externalThickness, "external-thickness", 0, "Visible panel thickness in mm")
	fs.BoolVar(&autoExtend, "auto-extend", false, "Extend every side by --extension-amount")
	fs.Float64Var(&extensionAmount, "extension-amount", 0, "Automatic extension in mm")
	fs.Float64Var(&gap, "gap", 0, "Default extension on every side in mm")
	fs.BoolVar(&remove, "remove", false, "Remove the cleats")
	ext.register(fs)
	return cmd
}
