package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/planner"
)

const shutdownTimeout = 5 * time.Second

// reloadView is the body of a successful POST /reload.
type reloadView struct {
	Source   string    `json:"source"`
	Courses  int       `json:"courses"`
	Records  int       `json:"records"`
	Skipped  []string  `json:"skipped"`
	LoadedAt time.Time `json:"loaded_at"`
}

type errorView struct {
	Error string `json:"error"`
	Query string `json:"query,omitempty"`
}

// Handler returns the HTTP routes served by the serve command.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /courses", a.coursesHandler)
	mux.HandleFunc("GET /courses/{code}", a.courseHandler)
	mux.HandleFunc("GET /order", a.orderHandler)
	mux.HandleFunc("POST /reload", a.reloadHandler)
	return mux
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) coursesHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, planner.ListSorted(a.session.Catalog()))
}

func (a *App) courseHandler(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	detail, err := planner.Lookup(a.session.Catalog(), code)
	if errors.Is(err, catalog.ErrNotFound) {
		a.writeJSON(w, http.StatusNotFound, errorView{Error: "course not found", Query: code})
		return
	}
	if err != nil {
		a.writeJSON(w, http.StatusInternalServerError, errorView{Error: err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, detail)
}

// orderHandler always answers 200; an incomplete plan is reported in the
// body through its complete flag.
func (a *App) orderHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, planner.RecommendedOrder(a.requestContext(r), a.session.Catalog()))
}

// reloadHandler loads the configured catalog again. Query parameters are
// ignored: the server never reads a path chosen by the caller. A failed
// reload keeps the current catalog.
func (a *App) reloadHandler(w http.ResponseWriter, r *http.Request) {
	path := a.config.CatalogPath
	if path == "" {
		a.writeJSON(w, http.StatusBadRequest, errorView{Error: "no catalog path configured"})
		return
	}

	snap, err := a.session.Load(a.requestContext(r), path)
	if err != nil {
		a.writeJSON(w, http.StatusInternalServerError, errorView{Error: err.Error()})
		return
	}

	view := reloadView{
		Source:   snap.Source,
		Courses:  snap.Catalog.Len(),
		Records:  snap.Report.Records,
		Skipped:  make([]string, 0, len(snap.Report.Skipped)),
		LoadedAt: snap.LoadedAt,
	}
	for _, s := range snap.Report.Skipped {
		view.Skipped = append(view.Skipped, s.String())
	}
	a.writeJSON(w, http.StatusOK, view)
}

// requestContext carries the session logger into a request context.
func (a *App) requestContext(r *http.Request) context.Context {
	return ctxlog.WithLogger(r.Context(), ctxlog.FromContext(a.ctx))
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.FromContext(a.ctx).Error("Failed to write response.", "error", err)
	}
}

// runServe loads the configured catalog, if any, and serves HTTP until ctx
// is cancelled.
func (a *App) runServe(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if a.config.CatalogPath != "" {
		if err := a.loadCatalog(ctx); err != nil {
			return err
		}
	}

	a.httpServer = &http.Server{
		Addr:              a.config.Listen,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting.", "address", a.config.Listen)
		errCh <- a.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		// ListenAndServe only returns ErrServerClosed after Shutdown.
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return a.closeServer()
	}
}

func (a *App) closeServer() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Closing HTTP server...")

	if a.httpServer == nil {
		logger.Debug("HTTP server was not running.")
		return nil
	}

	// The run context is already cancelled; shut down on a fresh deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}

	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
