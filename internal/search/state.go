// Package search implements the incremental character search pipeline:
// keystrokes are debounced into settled queries, each settled query issues at
// most one cancellable request, and results are committed only when they
// belong to the latest request. All state transitions go through Reduce.
package search

import (
	"strings"
	"unicode/utf8"

	"heropick/internal/apierr"
	"heropick/internal/domain"
)

// Phase is the tag of the request state machine
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// RequestState is Idle, Pending(ID) or Settled(ID, Err). Err is nil for a
// successful outcome.
type RequestState struct {
	Phase Phase
	ID    uint64
	Query string
	Err   error
}

// SearchState is the externally observable search state.
//
// Loading is true exactly when Request is Pending. Error is set only when the
// latest completed request failed. Results hold the latest successful,
// non-superseded outcome and are kept while a newer request is loading.
// CallCount grows by one per issued request and never decreases.
type SearchState struct {
	Query     string
	Results   []domain.CharacterSummary
	Loading   bool
	Error     string
	ErrKind   apierr.Kind
	CallCount int
	Request   RequestState

	seq uint64 // last assigned request id
}

// Event is an input to Reduce
type Event interface {
	event()
}

// QuerySettled is a new settled query from the debouncer
type QuerySettled struct {
	Query string
}

// RetryRequested re-issues the current settled query
type RetryRequested struct{}

// ResultArrived is the outcome of request RequestID
type ResultArrived struct {
	RequestID uint64
	Results   []domain.CharacterSummary
	Err       error
}

func (QuerySettled) event()   {}
func (RetryRequested) event() {}
func (ResultArrived) event()  {}

// Issue describes a request the caller must start
type Issue struct {
	RequestID uint64
	Query     string
}

// Effect is what the caller must do after a transition. Cancel is always
// applied before Issue.
type Effect struct {
	Cancel    bool   // abort the outstanding request
	Cancelled uint64 // id of the aborted request, when Cancel is set
	Issue     *Issue // start a new request
	Committed bool   // a result was accepted into the state
}

// Reduce is the single transition function of the search state machine
func Reduce(s SearchState, ev Event, minChars int) (SearchState, Effect) {
	switch ev := ev.(type) {
	case QuerySettled:
		return settle(s, strings.TrimSpace(ev.Query), minChars)

	case RetryRequested:
		if s.Request.Phase == PhaseIdle {
			return s, Effect{}
		}
		return settle(s, s.Request.Query, minChars)

	case ResultArrived:
		if s.Request.Phase != PhasePending || ev.RequestID != s.Request.ID {
			// superseded or already settled
			return s, Effect{}
		}
		if apierr.IsCancelled(ev.Err) {
			return s, Effect{}
		}

		s.Loading = false
		s.Request = RequestState{Phase: PhaseSettled, ID: ev.RequestID, Query: s.Request.Query, Err: ev.Err}
		if ev.Err != nil {
			s.Error = apierr.SearchMessage(ev.Err)
			s.ErrKind = apierr.KindOf(ev.Err)
			return s, Effect{Committed: true}
		}
		s.Error = ""
		s.ErrKind = apierr.Unknown
		s.Results = ev.Results
		if s.Results == nil {
			s.Results = []domain.CharacterSummary{}
		}
		return s, Effect{Committed: true}
	}
	return s, Effect{}
}

func settle(s SearchState, q string, minChars int) (SearchState, Effect) {
	var eff Effect
	if s.Request.Phase == PhasePending {
		eff.Cancel = true
		eff.Cancelled = s.Request.ID
	}

	s.Query = q
	s.Error = ""
	s.ErrKind = apierr.Unknown

	if utf8.RuneCountInString(q) < minChars {
		s.Results = []domain.CharacterSummary{}
		s.Loading = false
		s.Request = RequestState{Phase: PhaseIdle}
		return s, eff
	}

	s.seq++
	s.CallCount++
	s.Loading = true
	s.Request = RequestState{Phase: PhasePending, ID: s.seq, Query: q}
	eff.Issue = &Issue{RequestID: s.seq, Query: q}
	return s, eff
}
