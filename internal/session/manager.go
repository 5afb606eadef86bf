package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaki95/audio-downloader/internal/form"
)

// Manager keeps the in-memory form sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newForm  func() *form.Controller
	now      func() time.Time
}

// NewManager creates a manager that builds each session's form with newForm
func NewManager(newForm func() *form.Controller) *Manager {
	if newForm == nil {
		newForm = func() *form.Controller { return form.New() }
	}
	return &Manager{
		sessions: make(map[string]*Session),
		newForm:  newForm,
		now:      time.Now,
	}
}

// Create starts a new session with a fresh form
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Form:      m.newForm(),
		CreatedAt: now,
		lastSeen:  now,
	}
	s.unsubscribe = s.Form.Subscribe(s.record)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Debug("Session created", "sessionId", s.ID)
	return s
}

// Get retrieves a session by ID and marks it as seen
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	m.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.touch(m.now())
	return s, nil
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, exists := m.sessions[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	s.detach()
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List returns sessions ordered by creation time with pagination
func (m *Manager) List(page, pageSize int) *Response {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	total := len(sessions)
	response := &Response{
		Sessions:   []*Snapshot{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return response
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	for _, s := range sessions[start:end] {
		response.Sessions = append(response.Sessions, s.Snapshot())
	}
	return response
}

// Prune removes sessions not seen within ttl. Sessions with a simulated
// request still loading are kept.
func (m *Manager) Prune(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	var removed []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && !s.Form.State().IsLoading {
			delete(m.sessions, id)
			removed = append(removed, s)
		}
	}
	m.mu.Unlock()

	for _, s := range removed {
		s.detach()
	}
	return len(removed)
}

// StartCleanupWorker prunes idle sessions every interval until stop is closed
func (m *Manager) StartCleanupWorker(interval, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := m.Prune(ttl); removed > 0 {
					slog.Info("Session cleanup completed", "sessions_removed", removed)
				}
			case <-stop:
				return
			}
		}
	}()
	slog.Info("Session cleanup worker started", "interval", interval, "ttl", ttl)
}
