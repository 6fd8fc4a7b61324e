package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfwall/pkg/errors"
)

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Missing and expired sessions both
	// return ErrCodeSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any session with the same ID.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a store that expires sessions idle for longer
// than ttl. A ttl <= 0 uses [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{sessions: make(map[string]*Session), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.now().Sub(s.UpdatedAt()) > m.ttl
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	if m.expired(s) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, notFound(id)
	}
	return s, nil
}

func (m *MemoryStore) Set(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)

// Janitor calls Cleanup on store every interval until ctx is done.
func Janitor(ctx context.Context, store Store, interval time.Duration, logger *log.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := store.Cleanup(ctx)
			if err != nil {
				logger.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
