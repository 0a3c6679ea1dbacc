// Package cli implements the carcass command tree. Every command loads the
// design file, applies one operation through the store and writes the
// design back.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/Carcass/internal/logging"
	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/project"
	"github.com/piwi3910/Carcass/internal/store"
	"github.com/piwi3910/Carcass/internal/version"
)

// DefaultProjectFile is the design file used when --project is not given.
const DefaultProjectFile = "design" + project.FileExtension

// app is the state shared by every command of one invocation.
type app struct {
	home        string
	projectPath string
	logLevel    string
	logFile     string
	noColor     bool

	cfg     model.AppConfig
	logger  *slog.Logger
	cleanup func()
}

func (a *app) dir() project.Home     { return project.Home(a.home) }
func (a *app) configPath() string    { return a.dir().Config() }
func (a *app) templatesPath() string { return a.dir().Templates() }
func (a *app) profilesPath() string  { return a.dir().Profiles() }
func (a *app) inventoryPath() string { return a.dir().Inventory() }

func (a *app) libraryPath() string {
	if a.cfg.LibraryPath != "" {
		return a.cfg.LibraryPath
	}
	return a.dir().Library()
}

// setup loads the configuration, builds the logger and registers custom
// G-code profiles. Flags override configuration values.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := project.LoadAppConfig(a.configPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	levelName := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		levelName = a.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logFile := cfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile = a.logFile
	}
	logger, cleanup, err := logging.Setup(logFile, level)
	if err != nil {
		return err
	}
	a.logger, a.cleanup = logger, cleanup

	if a.noColor || !cfg.Color {
		color.NoColor = true
	}

	// Profiles come from this home only.
	model.CustomProfiles = nil
	if _, err := project.RegisterCustomProfiles(a.profilesPath()); err != nil {
		a.logger.Warn("custom profiles not loaded", "path", a.profilesPath(), "error", err)
	}
	return nil
}

func (a *app) teardown() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

// openStore loads the design file into a fresh store.
func (a *app) openStore() (*store.Store, error) {
	p, err := project.LoadProject(a.projectPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no design at %s (run `carcass new` first)", a.projectPath)
		}
		return nil, err
	}
	s := store.New(p, a.logger)

	hist, err := project.LoadHistory(a.historyPath())
	if err != nil {
		a.logger.Warn("undo history not loaded", "path", a.historyPath(), "error", err)
		return s, nil
	}
	s.SetHistory(store.RestoreHistory(hist, store.DefaultHistoryDepth))
	return s, nil
}

func (a *app) historyPath() string { return project.HistoryPath(a.projectPath) }

// saveStore writes the store's design and its undo history back.
func (a *app) saveStore(s *store.Store) error {
	if err := a.writeProject(s.Project()); err != nil {
		return err
	}
	if err := project.SaveHistory(a.historyPath(), s.History().State()); err != nil {
		a.logger.Warn("undo history not saved", "error", err)
	}
	return nil
}

// saveProject writes a design that replaces the file outright, so any
// undo history of the previous design is dropped.
func (a *app) saveProject(p model.Project) error {
	if err := a.writeProject(p); err != nil {
		return err
	}
	return project.RemoveHistory(a.historyPath())
}

// writeProject saves p and records it as recent.
func (a *app) writeProject(p model.Project) error {
	if err := project.SaveProject(a.projectPath, p); err != nil {
		return err
	}
	if abs, err := filepath.Abs(a.projectPath); err == nil {
		a.cfg.AddRecent(abs)
		if err := project.SaveAppConfig(a.configPath(), a.cfg); err != nil {
			a.logger.Warn("recent projects not saved", "error", err)
		}
	}
	return nil
}

// refuseOverwrite fails when the design file exists and force is unset.
func (a *app) refuseOverwrite(force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(a.projectPath); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.projectPath)
	}
	return nil
}

// Root builds the carcass command tree.
func Root() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "carcass",
		Short:   "Carcass - parametric cabinet layout engine",
		Version: version.String(),
		Long: `Carcass lays out case-good furniture: side panels, top and bottom,
shelves and dividers inside a root enclosure, with slatted panels, capping
and cleats generated on demand. Designs export to PDF, labels, XLSX, DXF
and drilling G-code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.projectPath, "project", "p", DefaultProjectFile, "Design file to operate on")
	flags.StringVar(&a.home, "home", string(project.DefaultHome()), "Directory holding config, templates, profiles and the library")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "", "Also write JSON logs to this file")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable coloured output")

	// Design editing
	rootCmd.AddCommand(newCmd(a))
	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(removeCmd(a))
	rootCmd.AddCommand(setCmd(a))
	rootCmd.AddCommand(renameCmd(a))
	rootCmd.AddCommand(rootDimsCmd(a))
	rootCmd.AddCommand(selectCmd(a))
	rootCmd.AddCommand(undoCmd(a))
	rootCmd.AddCommand(redoCmd(a))
	rootCmd.AddCommand(slatsCmd(a))
	rootCmd.AddCommand(cappingCmd(a))
	rootCmd.AddCommand(cleatsCmd(a))
	rootCmd.AddCommand(showCmd(a))

	// Input and output
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(importCmd(a))

	// Storage
	rootCmd.AddCommand(libraryCmd(a))
	rootCmd.AddCommand(templateCmd(a))
	rootCmd.AddCommand(configCmd(a))

	return rootCmd
}

// Output helpers

var (
	okMark   = color.New(color.FgHiGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	errMark  = color.New(color.FgRed).SprintFunc()
	idColor  = color.New(color.FgCyan).SprintFunc()
	dimColor = color.New(color.FgHiBlack).SprintFunc()
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okMark("✓"), fmt.Sprintf(format, args...))
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "%s %s\n", warnMark("⚠"), msg)
	}
}

func printErrors(w io.Writer, errs []string) {
	for _, msg := range errs {
		fmt.Fprintf(w, "%s %s\n", errMark("✗"), msg)
	}
}
