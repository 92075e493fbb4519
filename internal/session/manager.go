package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager holds the in-memory sessions, keyed by the random ID carried
// in the browser cookie. Idle sessions are dropped by a background
// sweeper; the form itself is never persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewManager creates a session manager with the given idle TTL.
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// GetOrCreate resolves the session for the given cookie ID, creating a
// fresh session (and ID) when the cookie is missing or unknown.
func (m *Manager) GetOrCreate(id string) (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.Touch()
			return id, s
		}
	}

	id = newSessionID()
	s := New()
	m.sessions[id] = s

	m.logger.Debug("Session created", zap.String("session_id", id))
	return id, s
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps expired sessions until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if s.expired(m.ttl, now) {
			delete(m.sessions, id)
			m.logger.Debug("Session expired", zap.String("session_id", id))
		}
	}
}

// newSessionID returns a 128-bit random hex identifier.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
