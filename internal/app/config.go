package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/courseplan/internal/config"
)

// Commands understood by App.Run.
const (
	CommandList   = "list"
	CommandShow   = "show"
	CommandOrder  = "order"
	CommandExport = "export"
	CommandMenu   = "menu"
	CommandServe  = "serve"
)

// Commands lists every command in the order they are documented.
var Commands = []string{CommandList, CommandShow, CommandOrder, CommandExport, CommandMenu, CommandServe}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	Args    []string

	CatalogPath string // file or directory
	Output      string // text, json or yaml
	Listen      string // serve only

	LogFormat string
	LogLevel  string
}

// NewConfig checks that the command and its arguments fit together. The
// enumerated settings are expected to be validated by config.Validate.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains(Commands, cfg.Command) {
		return nil, fmt.Errorf("unknown command %q: must be one of %s", cfg.Command, strings.Join(Commands, ", "))
	}

	wantArgs := 0
	if cfg.Command == CommandShow {
		wantArgs = 1
	}
	if len(cfg.Args) != wantArgs {
		if wantArgs == 1 {
			return nil, errors.New("show requires exactly one COURSE argument")
		}
		return nil, fmt.Errorf("%s takes no arguments, got %q", cfg.Command, cfg.Args)
	}

	switch cfg.Command {
	case CommandList, CommandShow, CommandOrder, CommandExport:
		if cfg.CatalogPath == "" {
			return nil, fmt.Errorf("%s requires a catalog: use --catalog or %s", cfg.Command, config.EnvCatalog)
		}
	case CommandServe:
		if cfg.Listen == "" {
			return nil, errors.New("serve requires a listen address")
		}
	}

	return &cfg, nil
}
