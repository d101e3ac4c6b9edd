package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/apierr"
	"heropick/internal/domain"
	"heropick/internal/eventbus"
)

// DetailFetcher loads a single character record
type DetailFetcher interface {
	GetCharacter(ctx context.Context, id int) (domain.CharacterDetail, error)
}

// DetailResultMsg carries the outcome of one detail request back to the Update loop
type DetailResultMsg struct {
	RequestID   uint64
	CharacterID int
	Detail      domain.CharacterDetail
	Err         error
}

// DetailState is the state of the detail pane for the current selection.
// NotFound is set instead of a generic error when the proxy has no such record.
type DetailState struct {
	Selection *domain.CharacterSummary
	Data      *domain.CharacterDetail
	Loading   bool
	Error     string
	ErrKind   apierr.Kind
	NotFound  bool
	RequestID uint64
}

// DetailLoader fetches the detail record for the selected character. Selecting
// another character while a fetch is outstanding cancels the earlier fetch and
// its late result is discarded.
type DetailLoader struct {
	fetcher  DetailFetcher
	bus      eventbus.EventBus
	state    DetailState
	seq      uint64
	inflight *slot
}

// NewDetailLoader creates a loader. timeout bounds each fetch; 0 disables it.
func NewDetailLoader(ctx context.Context, fetcher DetailFetcher, timeout time.Duration, bus eventbus.EventBus) *DetailLoader {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &DetailLoader{
		fetcher:  fetcher,
		bus:      bus,
		inflight: newSlot(ctx, timeout),
	}
}

// State returns a snapshot of the detail state
func (l *DetailLoader) State() DetailState {
	return l.state
}

// Select stores the selection, resets the pane to loading and returns the
// command that fetches the record.
func (l *DetailLoader) Select(c domain.CharacterSummary) tea.Cmd {
	ctx := l.inflight.begin()
	l.seq++
	id, charID := l.seq, c.ID

	sel := c
	l.state = DetailState{Selection: &sel, Loading: true, RequestID: id}
	l.bus.Publish(domain.DetailRequestedEvent{RequestID: id, CharacterID: charID})

	fetcher := l.fetcher
	return func() tea.Msg {
		d, err := fetcher.GetCharacter(ctx, charID)
		return DetailResultMsg{RequestID: id, CharacterID: charID, Detail: d, Err: err}
	}
}

// Resolve commits msg if it belongs to the current fetch. It reports whether
// the state changed.
func (l *DetailLoader) Resolve(msg DetailResultMsg) bool {
	if !l.state.Loading || msg.RequestID != l.state.RequestID {
		return false
	}
	if apierr.IsCancelled(msg.Err) {
		return false
	}
	l.inflight.release()
	l.state.Loading = false

	if msg.Err != nil {
		l.state.ErrKind = apierr.KindOf(msg.Err)
		l.state.NotFound = l.state.ErrKind == apierr.NotFound
		l.state.Error = apierr.DetailMessage(msg.Err)
		l.bus.Publish(domain.DetailFailedEvent{RequestID: msg.RequestID, CharacterID: msg.CharacterID, Err: msg.Err})
		return true
	}

	d := msg.Detail
	l.state.Data = &d
	l.bus.Publish(domain.DetailCompletedEvent{RequestID: msg.RequestID, CharacterID: msg.CharacterID, Name: d.Name})
	return true
}

// Clear drops the selection and aborts any outstanding fetch
func (l *DetailLoader) Clear() {
	l.inflight.abort()
	l.state = DetailState{}
}

// Close aborts any outstanding fetch
func (l *DetailLoader) Close() {
	l.inflight.abort()
}
