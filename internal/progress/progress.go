package progress

import (
	"encoding/json"
	"sync"
	"time"
)

// Stage represents the visual state of a form
type Stage string

const (
	StageIdle    Stage = "idle"
	StageLoading Stage = "loading"
	StageError   Stage = "error"
)

// Event represents a visual feedback transition
type Event struct {
	Stage     Stage     `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Listener receives events published by a Tracker
type Listener func(Event)

// Tracker records the current stage of a form and fans events out to listeners
type Tracker struct {
	mu        sync.RWMutex
	stage     Stage
	message   string
	err       error
	nextID    int
	listeners map[int]Listener
}

// NewTracker creates a new Tracker in the idle stage
func NewTracker() *Tracker {
	return &Tracker{
		stage:     StageIdle,
		listeners: make(map[int]Listener),
	}
}

// AddListener registers a listener and returns a function that removes it
func (t *Tracker) AddListener(listener Listener) (remove func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = listener
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Update moves the tracker to stage and notifies all listeners
func (t *Tracker) Update(stage Stage, message string) {
	t.mu.Lock()
	t.stage = stage
	t.message = message
	t.err = nil
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// SetError sets the error stage and notifies all listeners
func (t *Tracker) SetError(err error) {
	t.mu.Lock()
	t.stage = StageError
	t.message = err.Error()
	t.err = err
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     StageError,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

func (t *Tracker) notifyListeners(event Event) {
	t.mu.RLock()
	listeners := make([]Listener, 0, len(t.listeners))
	for id := 0; id < t.nextID; id++ {
		if l, ok := t.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	t.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Current returns the current state as an event
func (t *Tracker) Current() Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	event := Event{
		Stage:     t.stage,
		Message:   t.message,
		Timestamp: time.Now(),
	}
	if t.err != nil {
		event.Error = t.err.Error()
	}
	return event
}

// MarshalJSON implements json.Marshaler for Event
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
		Alias:     (*Alias)(&e),
	})
}

// UnmarshalJSON implements json.Unmarshaler for Event
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, aux.Timestamp)
	if err != nil {
		return err
	}
	e.Timestamp = t
	return nil
}
