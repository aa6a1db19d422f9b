package tools

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/NERVsystems/mapmeasure/pkg/measure"
	"github.com/NERVsystems/mapmeasure/pkg/surface"
)

// Session is one measurement workspace: a headless map and the
// controller measuring on it. Tool calls on the same session are
// serialized by its lock.
type Session struct {
	ID      string
	Created time.Time

	mu      sync.Mutex
	surface *surface.Headless
	ctrl    *measure.Controller
}

// Do runs fn with the session locked.
func (s *Session) Do(fn func(h *surface.Headless, c *measure.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.surface, s.ctrl)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Close()
}

// Workspace owns the live sessions. When more than the configured
// number are open the least recently used one is closed.
type Workspace struct {
	sessions *lru.Cache[string, *Session]
	logger   *slog.Logger
}

// NewWorkspace returns a workspace holding at most max sessions.
func NewWorkspace(max int, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sessions, err := lru.NewWithEvict[string, *Session](max, func(id string, s *Session) {
		s.close()
		logger.Debug("measurement session closed", "session_id", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	return &Workspace{sessions: sessions, logger: logger}, nil
}

// Start opens a new session with an inactive controller.
func (w *Workspace) Start() *Session {
	id := uuid.NewString()
	logger := w.logger.With("session_id", id)
	h := surface.NewHeadless(logger)
	s := &Session{
		ID:      id,
		Created: time.Now().UTC(),
		surface: h,
		ctrl:    measure.NewController(h, measure.WithLogger(logger)),
	}
	w.sessions.Add(s.ID, s)
	w.logger.Debug("measurement session started", "session_id", s.ID)
	return s
}

// Get returns the session with id.
func (w *Workspace) Get(id string) (*Session, bool) {
	return w.sessions.Get(id)
}

// Close closes and forgets the session with id. It reports whether the
// session existed.
func (w *Workspace) Close(id string) bool {
	return w.sessions.Remove(id)
}

// CloseAll closes every session.
func (w *Workspace) CloseAll() {
	w.sessions.Purge()
}

// Len returns the number of open sessions.
func (w *Workspace) Len() int {
	return w.sessions.Len()
}
