// Package form implements the audio download form: its state, setters, URL
// validation and the simulated download request.
package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/jaki95/audio-downloader/internal/progress"
)

// DefaultDelay is how long a simulated request keeps the form loading.
const DefaultDelay = 2000 * time.Millisecond

const (
	loadingMessage = "Processing..."
	idleMessage    = "Download Audio"
)

// State is a snapshot of the form fields and its visual feedback.
type State struct {
	URL       string        `json:"url"`
	Format    media.Format  `json:"format"`
	Bitrate   media.Bitrate `json:"bitrate"`
	IsLoading bool          `json:"isLoading"`
	Error     string        `json:"error,omitempty"`
}

// Scheduler runs f once after d has elapsed. f must run on another goroutine
// or after the Scheduler call has returned.
type Scheduler func(d time.Duration, f func())

func timerScheduler(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaults sets the format and bitrate a new form starts with.
func WithDefaults(format media.Format, bitrate media.Bitrate) Option {
	return func(c *Controller) {
		c.state.Format = format
		c.state.Bitrate = bitrate
	}
}

// WithDelay overrides the duration of the simulated request.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithScheduler replaces the timer used to end the simulated request.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.schedule = s
	}
}

// Controller owns a single form instance. It is safe for concurrent use.
type Controller struct {
	// transition serialises state changes with their published events so
	// listeners observe them in the order they happened
	transition sync.Mutex

	mu       sync.Mutex
	state    State
	idle     chan struct{}
	delay    time.Duration
	schedule Scheduler
	tracker  *progress.Tracker
}

// New creates a form with the default format (mp3) and bitrate (320).
func New(opts ...Option) *Controller {
	c := &Controller{
		state: State{
			Format:  media.DefaultFormat,
			Bitrate: media.DefaultBitrate,
		},
		delay:    DefaultDelay,
		schedule: timerScheduler,
		tracker:  progress.NewTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetURL replaces the URL field.
func (c *Controller) SetURL(value string) {
	c.mu.Lock()
	c.state.URL = value
	c.mu.Unlock()
}

// SetFormat replaces the selected format.
func (c *Controller) SetFormat(value media.Format) {
	c.mu.Lock()
	c.state.Format = value
	c.mu.Unlock()
}

// SetBitrate replaces the selected bitrate.
func (c *Controller) SetBitrate(value media.Bitrate) {
	c.mu.Lock()
	c.state.Bitrate = value
	c.mu.Unlock()
}

// Validate reports whether url is a supported YouTube or SoundCloud URL.
func (c *Controller) Validate(url string) bool {
	return media.ValidateURL(url)
}

// State returns a snapshot of the form.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers listener for visual feedback transitions and returns
// a function that unregisters it.
func (c *Controller) Subscribe(listener progress.Listener) func() {
	return c.tracker.AddListener(listener)
}

// Stage returns the current visual stage.
func (c *Controller) Stage() progress.Event {
	return c.tracker.Current()
}

// Submit clears any previous error and validates the URL. An invalid URL sets
// the error message and returns an *media.InvalidURLError without engaging
// the loading state. A valid URL starts a simulated request that keeps the
// form loading for the configured delay; it cannot fail or be cancelled.
// Listeners must not call Submit.
func (c *Controller) Submit() error {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	c.state.Error = ""
	if err := media.CheckURL(c.state.URL); err != nil {
		c.state.Error = err.Error()
		c.mu.Unlock()
		c.tracker.SetError(err)
		return err
	}

	c.state.IsLoading = true
	idle := make(chan struct{})
	c.idle = idle
	snapshot := c.state
	c.mu.Unlock()

	slog.Debug("Simulated download started",
		"url", snapshot.URL,
		"format", snapshot.Format,
		"bitrate", snapshot.Bitrate,
		"delay", c.delay)
	c.tracker.Update(progress.StageLoading, loadingMessage)

	c.schedule(c.delay, func() {
		c.finish(idle)
	})
	return nil
}

func (c *Controller) finish(idle chan struct{}) {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	c.state.IsLoading = false
	c.idle = nil
	c.mu.Unlock()

	c.tracker.Update(progress.StageIdle, idleMessage)
	close(idle)
	slog.Debug("Simulated download finished")
}

// Wait blocks until no simulated request is loading or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
