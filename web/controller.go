// ABOUTME: Search controller driving the UI state machine
// ABOUTME: Runs one proxy request per submit and notifies observers of every transition

package web

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"repo-search-api/core/interfaces"
	"repo-search-api/reposearch"
)

// Messages shown when the proxy gave no usable error text
const (
	MsgUnexpected = "An unexpected error occurred while fetching repositories."
	MsgTimedOut   = "Request timed out. Please try again."
)

// DefaultRequestTimeout bounds one search as seen from the UI
const DefaultRequestTimeout = 2 * time.Minute

// Searcher runs a search against the proxy.
// *reposearch.Client satisfies it; errors carrying a proxy message should be *reposearch.Error.
type Searcher interface {
	Search(ctx context.Context, criteria reposearch.Criteria) ([]reposearch.Repository, error)
}

// Observer receives every state transition on the goroutine that caused it
type Observer func(State)

// Controller owns the search state.
// A new submit cancels the request of the previous one; late answers of a superseded request are dropped.
type Controller struct {
	searcher Searcher
	timeout  time.Duration
	logger   interfaces.Logger

	// mu guards seq, cancel and observers
	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	observers []Observer

	// notifyMu keeps observer notifications in transition order
	notifyMu sync.Mutex
	state    atomic.Value
	searched atomic.Bool
}

type stateBox struct{ State }

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithRequestTimeout overrides the per-search timeout
func WithRequestTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

// WithLogger sets the controller logger
func WithLogger(logger interfaces.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller in the Idle state
func NewController(searcher Searcher, opts ...ControllerOption) *Controller {
	c := &Controller{
		searcher: searcher,
		timeout:  DefaultRequestTimeout,
	}
	c.state.Store(stateBox{Idle{}})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers an observer. Observers may read State but must not call Submit or Subscribe.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// State returns the current state
func (c *Controller) State() State {
	return c.state.Load().(stateBox).State
}

// HasSearched reports whether Submit was called at least once
func (c *Controller) HasSearched() bool {
	return c.searched.Load()
}

// Submit runs one search and blocks until it completes.
// It returns the state the search ended in, or the current state when a newer submit superseded it.
func (c *Controller) Submit(ctx context.Context, criteria reposearch.Criteria) State {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	c.cancel = cancel
	c.searched.Store(true)
	c.transition(Loading{Criteria: criteria})

	results, err := c.searcher.Search(ctx, criteria)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		current := c.State()
		c.log().Debug("Dropping superseded search result", map[string]interface{}{
			"keywords": criteria.Keywords,
		})
		return current
	}
	c.cancel = nil

	var next State
	if err != nil {
		next = Failure{Message: failureMessage(ctx, err)}
		c.log().Warn("Search failed", map[string]interface{}{
			"keywords": criteria.Keywords,
			"error":    err.Error(),
		})
	} else {
		if results == nil {
			results = []reposearch.Repository{}
		}
		next = Success{Results: results}
	}
	c.transition(next)
	return next
}

// transition stores next and notifies observers. It is entered with c.mu held and releases it.
func (c *Controller) transition(next State) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.state.Store(stateBox{next})
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o(next)
	}
}

func failureMessage(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return MsgTimedOut
	}

	if msg := reposearch.ErrorMessage(err); msg != "" {
		return msg
	}
	return MsgUnexpected
}

func (c *Controller) log() interfaces.Logger {
	if c.logger == nil {
		return nopLogger{}
	}
	return c.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
