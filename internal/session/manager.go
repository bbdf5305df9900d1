package session

import (
	"context"
	"sync"

	"github.com/ziadkadry99/previewkit/internal/payload"
)

// Manager tracks the live sessions of a server.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults Options
}

// NewManager returns a Manager whose sessions start from defaults. The
// Send and Scheduler fields of defaults are ignored.
func NewManager(defaults Options) *Manager {
	defaults.Send = nil
	defaults.Scheduler = nil
	return &Manager{sessions: make(map[string]*Session), defaults: defaults}
}

// Open starts a session for a stored preview. It runs until ctx is done or
// the session is closed, and is forgotten by the manager afterwards.
func (m *Manager) Open(ctx context.Context, previewID string, kind payload.Kind, text string, send SendFunc) (*Session, error) {
	opts := m.defaults
	opts.Send = send
	s, err := New(previewID, kind, text, opts)
	if err != nil {
		return nil, err
	}

	// The page already shows the initial render; mounting brings the
	// engine to the same state.
	s.Mount()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go func() {
		s.Run(ctx)
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
	}()
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll stops every live session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()
	for _, s := range live {
		s.Close()
	}
}
