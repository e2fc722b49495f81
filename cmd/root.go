// Package cmd implements the CLI command structure for trainreg.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/trainreg/internal/config"
	"github.com/nibzard/trainreg/internal/logging"
	"github.com/nibzard/trainreg/internal/repl"
	"github.com/nibzard/trainreg/internal/trains"
	"github.com/nibzard/trainreg/internal/ui"
	"github.com/nibzard/trainreg/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the trainreg CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("trainreg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand starts the interactive shell
	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "repl":
		return replCommand(ctx, cfg, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, remainingArgs)
	case "select":
		return selectCommand(cfg, remainingArgs)
	case "validate":
		return validateCommand(cfg, remainingArgs)
	case "view":
		return viewCommand(ctx, cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newStore builds a store honoring the validate and schema settings.
func newStore(cfg *config.Config) (*trains.Store, error) {
	store, err := trains.NewStore(trains.StoreOptions{
		Validate:   cfg.ValidateOnLoad,
		SchemaPath: cfg.SchemaFile,
	})
	if err != nil {
		return nil, fmt.Errorf("preparing store: %w", err)
	}
	return store, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewConsoleLoggerFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// replCommand runs the interactive shell.
func replCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trainreg repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	loadPath := fs.String("load", cfg.DataFile, "Trains file to load before the first prompt")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	logger.Debug("store ready", "validate", store.Validating())

	var journal *logging.Journal
	if cfg.Journal {
		journal, err = logging.NewJournal(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			return fmt.Errorf("creating journal: %w", err)
		}
		defer journal.Close()
		logger.Debug("journal opened", "path", journal.LogPath)
	}

	session := repl.NewSession(store, stdin, stdout,
		repl.WithPrompt(cfg.Prompt),
		repl.WithKeepOnMissing(cfg.KeepOnMissing),
		repl.WithPreserveArgCase(cfg.PreserveArgCase),
		repl.WithLogger(logger),
		repl.WithJournal(journal),
	)

	if *loadPath != "" {
		n, err := session.Load(*loadPath)
		switch {
		case errors.Is(err, trains.ErrNotFound):
			logger.Warn("trains file not found, starting empty", "path", *loadPath)
		case err != nil:
			return fmt.Errorf("loading %s: %w", *loadPath, err)
		default:
			logger.Info("loaded trains", "path", *loadPath, "count", n)
		}
	}

	if utils.IsInteractive(stdin) {
		fmt.Fprintln(stdout, "Train registry. Type 'help' for commands.")
	}
	return session.Run(ctx)
}

// loadRecords reads a trains file for the one-shot commands.
func loadRecords(cfg *config.Config, path string) ([]trains.Record, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	records, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return trains.NewRegistry(records...).Records(), nil
}

// resolveDataPath picks the file argument or the configured data file.
func resolveDataPath(cfg *config.Config, args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	case len(args) == 1:
		return args[0], nil
	case cfg.DataFile != "":
		return cfg.DataFile, nil
	}
	return "", fmt.Errorf("no trains file given (pass a path or set data_file)")
}

// listCommand prints every record of a trains file.
func listCommand(cfg *config.Config, args []string) error {
	path, err := resolveDataPath(cfg, args)
	if err != nil {
		return err
	}
	records, err := loadRecords(cfg, path)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, ui.RenderTable(records))
	return nil
}

// selectCommand prints the records departing at or after a time.
func selectCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trainreg select <time> [file]")
	}
	searchTime := args[0]
	path, err := resolveDataPath(cfg, args[1:])
	if err != nil {
		return err
	}
	records, err := loadRecords(cfg, path)
	if err != nil {
		return err
	}

	selected := trains.SelectFrom(records, searchTime)
	fmt.Fprintf(stdout, "Trains departing at or after %s:\n", searchTime)
	if len(selected) == 0 {
		fmt.Fprintf(stdout, "No trains depart at or after %s.\n", searchTime)
		return nil
	}
	fmt.Fprintln(stdout, ui.RenderTable(selected))
	return nil
}

// validateCommand checks a trains file against the schema and reports every
// violation.
func validateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trainreg validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "List records of a valid file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := resolveDataPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	// Validation is forced here even when loads skip it.
	validator := store.Validator()
	if validator == nil {
		if validator, err = trains.NewValidator(cfg.SchemaFile); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Schema: %s\n", validator.Source())
	fmt.Fprintf(stdout, "Trains file: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(stdout, "  ❌ Not found")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		}
		return fmt.Errorf("validation failed")
	}

	if err := validator.ValidateJSON(data); err != nil {
		var verrs trains.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintf(stdout, "  ❌ %d problem(s):\n", len(verrs))
			for _, line := range verrs.Lines() {
				fmt.Fprintf(stdout, "     - %s\n", line)
			}
		} else {
			fmt.Fprintf(stdout, "  ❌ %v\n", err)
		}
		return fmt.Errorf("validation failed")
	}

	// Parse through the store as well so the report matches what load accepts.
	records, err := store.Load(path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ %v\n", err)
		return fmt.Errorf("validation failed")
	}
	records = trains.NewRegistry(records...).Records()
	fmt.Fprintf(stdout, "  ✅ Valid (%d trains)\n", len(records))
	if *verbose {
		for _, rec := range records {
			fmt.Fprintf(stdout, "    - %s %s %s\n", rec.DepartureTime, rec.TrainNumber, rec.Destination)
		}
	}
	return nil
}

// viewCommand opens the terminal viewer.
func viewCommand(ctx context.Context, cfg *config.Config, args []string) error {
	path, err := resolveDataPath(cfg, args)
	if err != nil {
		return err
	}
	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	return ui.RunViewer(ctx, store, path)
}

// tailCommand prints the latest REPL journal.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trainreg tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No journal files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// configCommand prints the effective configuration.
func configCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if path := config.ActiveConfigFile(); path != "" {
		fmt.Fprintf(stdout, "# Config file: %s\n", path)
	} else {
		fmt.Fprintln(stdout, "# Config file: (none, defaults)")
	}
	return cfg.WriteTOML(stdout)
}

// initCommand writes an example config and the bundled schema into the
// project root. Existing files are kept unless -force is given.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trainreg init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite existing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	files := []struct {
		name string
		data []byte
	}{
		{name: config.ProjectConfigNames[0], data: []byte(config.ExampleConfig())},
		{name: trains.BundledSchemaName, data: trains.BundledSchema()},
	}

	for _, f := range files {
		path := filepath.Join(cfg.ProjectRoot, f.name)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Fprintf(stdout, "Skipped %s (exists)\n", path)
			continue
		}
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	return nil
}

func versionCommand() error {
	fmt.Fprintf(stdout, "trainreg version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "trainreg - a train departure registry")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  trainreg [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl [-load file]      Interactive shell (default command)")
	fmt.Fprintln(w, "  list [file]            Print all trains in a file")
	fmt.Fprintln(w, "  select <time> [file]   Print trains departing at or after <time>")
	fmt.Fprintln(w, "  validate [-v] [file]   Check a file against the schema")
	fmt.Fprintln(w, "  view [file]            Browse a file in a terminal UI")
	fmt.Fprintln(w, "  tail [-n N] [-f]       Print the latest REPL journal")
	fmt.Fprintln(w, "  config                 Print the effective configuration")
	fmt.Fprintln(w, "  init [-force]          Write trainreg.toml and the bundled schema")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "REPL commands:")
	repl.WriteHelp(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
