// Package notify shows short-lived success and error messages.
//
// A Center holds at most one visible notification. Showing a new one
// replaces the previous one and cancels its timer; every notification is
// dismissed automatically after the configured duration or earlier by
// Dismiss.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-clientes-sync/internal/logging"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Kind distinguishes success from error notifications.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is one message shown to the operator.
type Notification struct {
	ID      uuid.UUID
	Kind    Kind
	Text    string
	ShownAt time.Time
}

// Listener is called after the visible notification changes. visible is
// false when the notification was dismissed and nothing replaced it.
type Listener func(n Notification, visible bool)

// Center owns the visible notification and its dismissal timer.
type Center struct {
	duration time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	current   *Notification
	timer     *time.Timer
	listeners []Listener
	closed    bool
}

// Option configures a Center.
type Option func(*Center)

// WithLogger logs every notification at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Center) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCenter returns a center dismissing notifications after d.
// A non-positive d uses DefaultDuration.
func NewCenter(d time.Duration, opts ...Option) *Center {
	if d <= 0 {
		d = DefaultDuration
	}
	c := &Center{duration: d, logger: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Duration returns the auto-dismiss delay.
func (c *Center) Duration() time.Duration {
	return c.duration
}

// Success shows a success notification.
func (c *Center) Success(text string) Notification {
	return c.Show(KindSuccess, text)
}

// Error shows an error notification.
func (c *Center) Error(text string) Notification {
	return c.Show(KindError, text)
}

// Show replaces the visible notification with a new one.
func (c *Center) Show(kind Kind, text string) Notification {
	n := Notification{ID: uuid.New(), Kind: kind, Text: text, ShownAt: time.Now()}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return n
	}
	c.stopTimerLocked()
	c.current = &n
	c.timer = time.AfterFunc(c.duration, func() { c.Dismiss(n.ID) })
	listeners := c.listenersLocked()
	c.mu.Unlock()

	c.logger.Debug("notification", "kind", kind.String(), "text", text)
	for _, fn := range listeners {
		fn(n, true)
	}
	return n
}

// Dismiss hides the notification with id. It reports false when that
// notification is no longer visible.
func (c *Center) Dismiss(id uuid.UUID) bool {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return false
	}
	n := *c.current
	c.current = nil
	c.stopTimerLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(n, false)
	}
	return true
}

// Current returns the visible notification, if any.
func (c *Center) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// OnChange registers fn to be called after every show and dismissal.
func (c *Center) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Close hides the visible notification and stops its timer. Later calls to
// Show are ignored.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.current = nil
	c.stopTimerLocked()
}

func (c *Center) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Center) listenersLocked() []Listener {
	return append([]Listener(nil), c.listeners...)
}
