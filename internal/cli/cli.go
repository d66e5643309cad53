package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/courseplan/internal/app"
	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/config"
	"github.com/specialistvlad/courseplan/internal/scheduler"
)

// Exit codes returned by the courseplan binary.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitCycle    = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error returned by Parse or App.Run to a process exit
// code. A nil error maps to 0.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, catalog.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, scheduler.ErrCycleDetected):
		return ExitCycle
	default:
		return ExitFailure
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags may appear before or after the command.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return parse(args, output, config.Source{})
}

func parse(args []string, output io.Writer, src config.Source) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("courseplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
courseplan - plan a course of study from a catalog of prerequisites.

Usage:
  courseplan [options] COMMAND [COURSE]

Commands:
  list          Print every course, sorted by code.
  show COURSE   Print one course and its prerequisites.
  order         Print a recommended order that respects prerequisites.
  export        Print the catalog as HCL.
  menu          Start the interactive planner (default).
  serve         Serve the queries over HTTP.

Options:
`)
		flagSet.PrintDefaults()
	}

	flagSet.String("catalog", "", "Path to a catalog file or directory (.csv, .txt, .hcl).")
	flagSet.String("c", "", "Path to a catalog file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a YAML config file. Defaults to "+config.DefaultFile+" if present.")
	envFileFlag := flagSet.String("env-file", "", "Path to a .env file. Defaults to "+config.DefaultDotEnv+" if present.")
	flagSet.String("output", "text", "Output format. Options: 'text', 'json' or 'yaml'.")
	flagSet.String("o", "text", "Output format (shorthand).")
	flagSet.String("listen", config.DefaultListen, "Address for the HTTP server in serve mode.")
	flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	// The flag package stops at the first positional argument; keep parsing
	// so flags may follow the command.
	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.", "positional", positional)

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configFlag != "" {
		src.File = *configFlag
	}
	if *envFileFlag != "" {
		src.DotEnv = *envFileFlag
	}
	cfg, err := config.Load(src)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Configuration file and environment loaded.")

	// Flags override the file and the environment only when given.
	override := func(dst *string, names ...string) {
		for _, name := range names {
			if set[name] {
				*dst = flagSet.Lookup(name).Value.String()
				return
			}
		}
	}
	override(&cfg.Catalog, "catalog", "c")
	override(&cfg.Output, "output", "o")
	override(&cfg.Listen, "listen")
	override(&cfg.Logging.Level, "log-level")
	override(&cfg.Logging.Format, "log-format")

	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid configuration: " + err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	command := app.CommandMenu
	var commandArgs []string
	if len(positional) > 0 {
		command = strings.ToLower(positional[0])
		commandArgs = positional[1:]
	}

	appConfig, err := app.NewConfig(app.Config{
		Command:     command,
		Args:        commandArgs,
		CatalogPath: cfg.Catalog,
		Output:      cfg.Output,
		Listen:      cfg.Listen,
		LogFormat:   cfg.Logging.Format,
		LogLevel:    cfg.Logging.Level,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}
