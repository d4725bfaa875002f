// Package session manages the request/response lifecycle of one open
// search overlay: idle until a query is submitted, loading while the
// request is in flight, then success or error. Closing the overlay
// discards the session; a response that arrives for a closed or
// superseded session is silently dropped.
package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/search"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// GenericErrorMessage is the only failure text shown to users; the
// underlying cause is logged, never rendered.
const GenericErrorMessage = "Something went wrong while searching. Please try again."

// Searcher issues one search request. *search.Client satisfies this.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Response, error)
}

// Event is the host-page notification dispatched on every submission,
// mirroring the liz-search DOM custom event. Delivery is best effort.
type Event struct {
	Name    string
	Query   string
	Variant config.Variant
}

// EventName is the well-known name of the submission event.
const EventName = "liz-search"

// Controller drives one search session. All methods are safe for
// concurrent use; the zero value is not usable, call New.
type Controller struct {
	searcher Searcher
	variant  config.Variant
	timeout  time.Duration
	notify   func(Event)
	onUpdate func()

	mu     sync.Mutex
	status Status
	query  string
	result *search.Response
	errMsg string
	gen    uint64
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithNotifier installs the host-page event hook.
func WithNotifier(fn func(Event)) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithUpdateHook installs a callback invoked after every state transition.
// The shell uses it to re-render; tests use it to observe transitions.
func WithUpdateHook(fn func()) Option {
	return func(c *Controller) { c.onUpdate = fn }
}

// New creates an idle session for an overlay rendered with the given variant.
func New(searcher Searcher, variant config.Variant, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		variant:  variant,
		timeout:  search.DefaultTimeout,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit starts a search for the given query. Empty or whitespace-only
// queries are a no-op and leave the session idle. A second submission
// while loading is not prevented here; the UI disables the submit control
// instead. Returns whether a request was issued.
func (c *Controller) Submit(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.gen++
	gen := c.gen
	c.status = StatusLoading
	c.query = query
	c.result = nil
	c.errMsg = ""
	c.mu.Unlock()

	if c.notify != nil {
		c.notify(Event{Name: EventName, Query: query, Variant: c.variant})
	}
	c.update()

	go c.run(gen, query)
	return true
}

// run performs the request and applies the outcome unless the session has
// moved on. There is no cancellation of the in-flight request on close;
// the stale response is discarded instead.
func (c *Controller) run(gen uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result, err := c.searcher.Search(ctx, query)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		log.Printf("session: discarding stale response for query %q", query)
		return
	}
	if err != nil {
		c.status = StatusError
		c.errMsg = GenericErrorMessage
		c.mu.Unlock()
		log.Printf("session: search %q failed: %v", query, err)
		c.update()
		return
	}
	c.status = StatusSuccess
	c.result = result
	c.mu.Unlock()
	c.update()
}

// Close terminates the session. Any in-flight response is discarded on
// arrival. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	c.status = StatusIdle
	c.query = ""
	c.result = nil
	c.errMsg = ""
	c.mu.Unlock()
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Query returns the most recently submitted query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Result returns the search result, or nil unless the status is success.
func (c *Controller) Result() *search.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// ErrMessage returns the user-facing error text, empty unless the status
// is error.
func (c *Controller) ErrMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SessionSnapshot is a consistent view of the session state, taken under
// one lock so renderers never observe a half-applied transition.
type SessionSnapshot struct {
	Status     Status
	Query      string
	Result     *search.Response
	ErrMessage string
}

// Snapshot returns the current state as one consistent view.
func (c *Controller) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionSnapshot{
		Status:     c.status,
		Query:      c.query,
		Result:     c.result,
		ErrMessage: c.errMsg,
	}
}

// Closed reports whether the session has been terminated.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) update() {
	if c.onUpdate != nil {
		c.onUpdate()
	}
}
