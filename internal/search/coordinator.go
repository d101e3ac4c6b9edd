package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/domain"
	"heropick/internal/eventbus"
)

// Searcher performs a character name search. Implementations must honour ctx
// cancellation.
type Searcher interface {
	SearchCharacters(ctx context.Context, query string, limit int) ([]domain.CharacterSummary, error)
}

// SearchResultMsg carries the outcome of one search request back to the Update loop
type SearchResultMsg struct {
	RequestID uint64
	Query     string
	Results   []domain.CharacterSummary
	Err       error
}

// Options configure a Coordinator
type Options struct {
	MinChars int
	Limit    int
	Timeout  time.Duration // per request; 0 disables
}

// DefaultOptions mirror the client config defaults
func DefaultOptions() Options {
	return Options{MinChars: 2, Limit: 10, Timeout: 10 * time.Second}
}

// Coordinator issues at most one search request per settled query, cancels
// superseded requests and commits only the outcome of the latest one.
// Like the Debouncer it must be driven from a single Update loop.
type Coordinator struct {
	searcher Searcher
	opts     Options
	bus      eventbus.EventBus
	state    SearchState
	inflight *slot
}

// NewCoordinator creates a coordinator. ctx bounds every request it issues.
func NewCoordinator(ctx context.Context, searcher Searcher, opts Options, bus eventbus.EventBus) *Coordinator {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if opts.MinChars < 1 {
		opts.MinChars = 1
	}
	return &Coordinator{
		searcher: searcher,
		opts:     opts,
		bus:      bus,
		state:    SearchState{Results: []domain.CharacterSummary{}},
		inflight: newSlot(ctx, opts.Timeout),
	}
}

// MinChars returns the minimum query length that triggers a request
func (c *Coordinator) MinChars() int {
	return c.opts.MinChars
}

// State returns a snapshot of the search state
func (c *Coordinator) State() SearchState {
	s := c.state
	s.Results = append([]domain.CharacterSummary(nil), c.state.Results...)
	return s
}

// Settle handles a settled query and returns the command for the request it
// issues, or nil when the query is below the minimum length.
func (c *Coordinator) Settle(query string) tea.Cmd {
	return c.dispatch(QuerySettled{Query: query})
}

// Retry re-issues the current settled query
func (c *Coordinator) Retry() tea.Cmd {
	return c.dispatch(RetryRequested{})
}

// Clear returns to Idle, cancelling any outstanding request
func (c *Coordinator) Clear() {
	c.dispatch(QuerySettled{Query: ""})
}

// Resolve commits msg if it belongs to the current request. It reports
// whether the state changed.
func (c *Coordinator) Resolve(msg SearchResultMsg) bool {
	next, eff := Reduce(c.state, ResultArrived{RequestID: msg.RequestID, Results: msg.Results, Err: msg.Err}, c.opts.MinChars)
	if !eff.Committed {
		return false
	}
	c.state = next
	c.inflight.release()

	if msg.Err != nil {
		c.bus.Publish(domain.SearchFailedEvent{RequestID: msg.RequestID, Query: msg.Query, Err: msg.Err})
	} else {
		c.bus.Publish(domain.SearchCompletedEvent{RequestID: msg.RequestID, Query: msg.Query, Results: len(msg.Results)})
	}
	return true
}

// Close aborts any outstanding request
func (c *Coordinator) Close() {
	c.inflight.abort()
}

func (c *Coordinator) dispatch(ev Event) tea.Cmd {
	prev := c.state.Request
	next, eff := Reduce(c.state, ev, c.opts.MinChars)
	c.state = next

	if eff.Cancel {
		c.inflight.abort()
		c.bus.Publish(domain.SearchSupersededEvent{RequestID: eff.Cancelled, Query: prev.Query})
	}
	if eff.Issue == nil {
		if prev.Phase != PhaseIdle && next.Request.Phase == PhaseIdle {
			c.bus.Publish(domain.SearchClearedEvent{})
		}
		return nil
	}
	return c.issue(*eff.Issue)
}

func (c *Coordinator) issue(is Issue) tea.Cmd {
	ctx := c.inflight.begin()
	searcher, limit := c.searcher, c.opts.Limit

	c.bus.Publish(domain.SearchIssuedEvent{RequestID: is.RequestID, Query: is.Query, CallCount: c.state.CallCount})

	return func() tea.Msg {
		results, err := searcher.SearchCharacters(ctx, is.Query, limit)
		return SearchResultMsg{RequestID: is.RequestID, Query: is.Query, Results: results, Err: err}
	}
}
