package session

import (
	"sync"
	"time"

	"github.com/jaki95/audio-downloader/internal/form"
	"github.com/jaki95/audio-downloader/internal/progress"
)

// Constants for pagination
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// MaxEvents bounds the event history kept per session.
const MaxEvents = 50

// Session is one visitor's form instance
type Session struct {
	ID        string
	Form      *form.Controller
	CreatedAt time.Time

	mu          sync.Mutex
	lastSeen    time.Time
	events      []progress.Event
	unsubscribe func()
}

// Snapshot is the JSON view of a session
type Snapshot struct {
	ID        string           `json:"id"`
	State     form.State       `json:"state"`
	Stage     progress.Stage   `json:"stage"`
	Events    []progress.Event `json:"events"`
	CreatedAt time.Time        `json:"createdAt"`
	LastSeen  time.Time        `json:"lastSeen"`
}

// Response represents a page of sessions
type Response struct {
	Sessions   []*Snapshot `json:"sessions"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns the last time the session was looked up
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// detach stops recording the form's events
func (s *Session) detach() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *Session) record(event progress.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > MaxEvents {
		s.events = s.events[len(s.events)-MaxEvents:]
	}
}

// Events returns a copy of the recorded event history, oldest first
func (s *Session) Events() []progress.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]progress.Event, len(s.events))
	copy(events, s.events)
	return events
}

// Snapshot captures the session for serialization
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		ID:        s.ID,
		State:     s.Form.State(),
		Stage:     s.Form.Stage().Stage,
		Events:    s.Events(),
		CreatedAt: s.CreatedAt,
		LastSeen:  s.LastSeen(),
	}
}
