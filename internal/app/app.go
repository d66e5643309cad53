package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/present"
	"github.com/specialistvlad/courseplan/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	inR     io.Reader
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	session *session.Session
	printer *present.Printer

	ctx        context.Context
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Presentation output
// goes to outW and log records to logW; the interactive menu reads inR.
func NewApp(inR io.Reader, outW, logW io.Writer, cfg *Config, opts ...session.Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	sess := session.New(opts...)
	logger.Debug("Logger configured successfully.", "session_id", sess.ID())

	return &App{
		inR:     inR,
		outW:    outW,
		logger:  logger,
		config:  cfg,
		session: sess,
		printer: present.NewPrinter(outW, present.Format(cfg.Output)),
		ctx:     sess.Context(ctxlog.WithLogger(context.Background(), logger)),
	}
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = a.session.Context(ctxlog.WithLogger(ctx, a.logger))
	a.ctx = ctx
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandList:
		err = a.runList(ctx)
	case CommandShow:
		err = a.runShow(ctx, a.config.Args[0])
	case CommandOrder:
		err = a.runOrder(ctx)
	case CommandExport:
		err = a.runExport(ctx)
	case CommandMenu:
		err = a.runMenu(ctx)
	case CommandServe:
		err = a.runServe(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	logger.Debug("App.Run method finished.", "error", err)
	return err
}

// loadCatalog loads the configured catalog into the session.
func (a *App) loadCatalog(ctx context.Context) error {
	if _, err := a.session.Load(ctx, a.config.CatalogPath); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return nil
}
