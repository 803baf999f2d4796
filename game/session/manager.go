package session

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
)

// RandFactory supplies the random source for each new session's engine
type RandFactory func() engine.Rand

// SeededRandFactory returns a factory for session random sources. A zero
// seed uses the process-wide source; otherwise the n-th session created gets
// a source seeded with seed+n, so a server replays the same games in order.
func SeededRandFactory(seed uint64) RandFactory {
	if seed == 0 {
		return func() engine.Rand { return engine.NewRand(0) }
	}
	var n atomic.Uint64
	return func() engine.Rand {
		return engine.NewRand(seed + n.Add(1) - 1)
	}
}

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	newRand  RandFactory
	mu       sync.RWMutex
}

// NewManager creates a new session manager. A nil factory uses the
// process-wide random source.
func NewManager(newRand RandFactory) *Manager {
	if newRand == nil {
		newRand = SeededRandFactory(0)
	}
	return &Manager{
		sessions: make(map[string]*service.Session),
		newRand:  newRand,
	}
}

// Create creates a new session with the given ID and a freshly dealt board
func (m *Manager) Create(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.create(id)
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[key(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, exists := m.sessions[key(id)]; exists && id != "" {
		return session, nil
	}
	return m.create(id)
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(id)
	if _, exists := m.sessions[k]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, k)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[key(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the
// given duration. Sessions named in keep are never removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration, keep ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pinned := make(map[string]bool, len(keep))
	for _, id := range keep {
		pinned[key(id)] = true
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for k, session := range m.sessions {
		if pinned[k] {
			continue
		}
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
			log.Debug("session expired", "session", session.ID, "last_accessed", session.LastAccessedAt)
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// create adds a session. Callers hold m.mu.
func (m *Manager) create(id string) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	}

	if _, exists := m.sessions[key(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         engine.NewEngine(m.newRand()),
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[key(id)] = session
	return session, nil
}

// generateSessionID generates a random 4-character session ID not yet in use.
// Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	for {
		rand.Read(bytes)
		id := hex.EncodeToString(bytes)
		if _, exists := m.sessions[id]; !exists {
			return id
		}
	}
}

func key(id string) string {
	return strings.ToLower(id)
}
