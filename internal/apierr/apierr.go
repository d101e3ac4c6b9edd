// Package apierr classifies failures of calls to the character proxy into the
// small set of outcomes the UI distinguishes.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of a failed request
type Kind int

const (
	// Unknown is never produced by KindOf for a non-nil error; it is the zero value
	Unknown Kind = iota
	NetworkFailure
	RateLimited
	Forbidden
	UpstreamError
	NotFound
	// Cancelled marks a superseded request. It is never shown to the user.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case RateLimited:
		return "rate_limited"
	case Forbidden:
		return "forbidden"
	case UpstreamError:
		return "upstream_error"
	case NotFound:
		return "not_found"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// User-facing messages
const (
	MsgRateLimited  = "Rate limited, retry later"
	MsgForbidden    = "Forbidden (check API referrers)"
	MsgNotFound     = "Character not found"
	MsgSearchFailed = "Could not load results"
	MsgDetailFailed = "Could not load character"
)

// Error is a classified request failure
type Error struct {
	Kind   Kind
	Status int // HTTP status, 0 for transport failures
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s (HTTP %d): %v", e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// FromStatus builds the error for a non-2xx response
func FromStatus(status int, body string) *Error {
	var cause error
	if body != "" {
		cause = errors.New(body)
	}
	return &Error{Kind: KindForStatus(status), Status: status, Err: cause}
}

// FromTransport wraps a failure that happened before a response was read.
// Context cancellation is kept distinct from every other transport failure,
// including timeouts.
func FromTransport(err error) *Error {
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: Cancelled, Err: err}
	}
	return &Error{Kind: NetworkFailure, Err: err}
}

// KindForStatus maps an HTTP status code to a Kind
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusTooManyRequests:
		return RateLimited
	case http.StatusForbidden:
		return Forbidden
	case http.StatusNotFound:
		return NotFound
	default:
		return UpstreamError
	}
}

// KindOf recovers the Kind of err. Unclassified errors count as network failures.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) {
		return Cancelled
	}
	return NetworkFailure
}

// IsCancelled reports whether err is a supersession rather than a real failure
func IsCancelled(err error) bool {
	return KindOf(err) == Cancelled
}

// SearchMessage is the text shown in place of the result list
func SearchMessage(err error) string {
	switch KindOf(err) {
	case Unknown, Cancelled:
		return ""
	case RateLimited:
		return MsgRateLimited
	case Forbidden:
		return MsgForbidden
	default:
		return MsgSearchFailed
	}
}

// DetailMessage is the text shown in place of the detail card
func DetailMessage(err error) string {
	switch KindOf(err) {
	case Unknown, Cancelled:
		return ""
	case RateLimited:
		return MsgRateLimited
	case Forbidden:
		return MsgForbidden
	case NotFound:
		return MsgNotFound
	default:
		return MsgDetailFailed
	}
}
