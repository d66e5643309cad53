// Package session owns the catalog currently in use. A Session holds one
// immutable snapshot at a time; a reload builds a complete new catalog and
// swaps it in with a single atomic store, so readers never observe a
// half-loaded catalog and a failed reload leaves the previous one in place.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/specialistvlad/courseplan/internal/catalog"
	"github.com/specialistvlad/courseplan/internal/ctxlog"
	"github.com/specialistvlad/courseplan/internal/loader"
)

// LoadFunc reads a catalog from path.
type LoadFunc func(ctx context.Context, path string) (*catalog.Catalog, loader.Report, error)

// Snapshot is one loaded catalog and where it came from. A zero Source
// means nothing has been loaded yet.
type Snapshot struct {
	Catalog  *catalog.Catalog
	Source   string
	LoadedAt time.Time
	Report   loader.Report
}

// Loaded reports whether the snapshot came from a successful load.
func (s *Snapshot) Loaded() bool {
	return s.Source != ""
}

// Session holds the current catalog snapshot.
type Session struct {
	id   string
	load LoadFunc
	now  func() time.Time

	// reloadMu serializes reloads; readers never take it.
	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

// Option configures a Session.
type Option func(*Session)

// WithLoadFunc replaces loader.LoadPath as the catalog source.
func WithLoadFunc(fn LoadFunc) Option {
	return func(s *Session) { s.load = fn }
}

// WithClock replaces time.Now for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a session with an empty catalog and a fresh random ID.
func New(opts ...Option) *Session {
	s := &Session{
		id:   uuid.NewString(),
		load: loader.LoadPath,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&Snapshot{Catalog: catalog.Empty()})
	return s
}

// ID returns the session identifier used to correlate log lines.
func (s *Session) ID() string {
	return s.id
}

// Context returns ctx with a logger that tags every record with the
// session ID.
func (s *Session) Context(ctx context.Context) context.Context {
	return ctxlog.With(ctx, "session_id", s.id)
}

// Snapshot returns the current snapshot. The result is never nil and never
// changes; a later reload installs a new one.
func (s *Session) Snapshot() *Snapshot {
	return s.current.Load()
}

// Catalog returns the current catalog.
func (s *Session) Catalog() *catalog.Catalog {
	return s.Snapshot().Catalog
}

// Load reads a catalog from path and makes it current. On error the current
// snapshot is left untouched and the error from the loader is returned.
// Pass a context from Context to get session-tagged log lines.
func (s *Session) Load(ctx context.Context, path string) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	logger := ctxlog.FromContext(ctx)

	cat, report, err := s.load(ctx, path)
	if err != nil {
		logger.Error("Catalog load failed; keeping previous catalog.", "path", path, "error", err)
		return nil, err
	}

	snap := &Snapshot{
		Catalog:  cat,
		Source:   path,
		LoadedAt: s.now(),
		Report:   report,
	}
	s.current.Store(snap)
	logger.Debug("Catalog snapshot replaced.", "path", path, "courses", cat.Len())
	return snap, nil
}
