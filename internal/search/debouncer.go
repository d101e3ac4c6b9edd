package search

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// SettledMsg is delivered to the Update loop when an input value has been
// quiet for the debounce interval. Only the message for the latest Push is
// accepted; earlier ones are stale timers.
type SettledMsg struct {
	Value string
	tag   uint64
}

// Debouncer turns a stream of raw input values into settled values. It is a
// trailing-edge settle detector: every Push restarts the quiet period.
// It is not safe for concurrent use and is meant to be driven from a single
// tea Update loop.
type Debouncer struct {
	quiet    time.Duration
	minChars int
	tag      uint64
	last     string // last accepted settled value
}

// NewDebouncer creates a debouncer. Values shorter than minChars (after
// trimming) settle immediately so clearing the input never lags.
func NewDebouncer(quiet time.Duration, minChars int) *Debouncer {
	return &Debouncer{quiet: quiet, minChars: minChars}
}

// Push records a new input value and returns the command that will deliver
// its SettledMsg. Any earlier pending settle becomes stale.
func (d *Debouncer) Push(value string) tea.Cmd {
	d.tag++
	msg := SettledMsg{Value: strings.TrimSpace(value), tag: d.tag}

	if utf8.RuneCountInString(msg.Value) < d.minChars {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.quiet, func(time.Time) tea.Msg { return msg })
}

// Accept reports whether msg is the settle for the most recent Push and
// carries a value different from the previously settled one. Stale timers and
// unchanged values return false.
func (d *Debouncer) Accept(msg SettledMsg) bool {
	if msg.tag != d.tag {
		return false
	}
	if msg.Value == d.last {
		return false
	}
	d.last = msg.Value
	return true
}

// Cancel drops any pending settle without emitting it and forgets the last
// settled value.
func (d *Debouncer) Cancel() {
	d.tag++
	d.last = ""
}

