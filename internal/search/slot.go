package search

import (
	"context"
	"time"
)

// slot holds the cancel function of the one request allowed in flight for a
// logical slot (search or detail).
type slot struct {
	parent  context.Context
	timeout time.Duration
	cancel  context.CancelFunc
}

func newSlot(parent context.Context, timeout time.Duration) *slot {
	if parent == nil {
		parent = context.Background()
	}
	return &slot{parent: parent, timeout: timeout}
}

// begin aborts whatever is in flight and returns the context for the next request
func (s *slot) begin() context.Context {
	s.abort()
	var ctx context.Context
	if s.timeout > 0 {
		ctx, s.cancel = context.WithTimeout(s.parent, s.timeout)
	} else {
		ctx, s.cancel = context.WithCancel(s.parent)
	}
	return ctx
}

// abort cancels the in-flight request, if any
func (s *slot) abort() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// release frees the timer of a request that finished normally
func (s *slot) release() {
	s.abort()
}
