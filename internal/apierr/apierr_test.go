package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, RateLimited},
		{http.StatusForbidden, Forbidden},
		{http.StatusNotFound, NotFound},
		{http.StatusInternalServerError, UpstreamError},
		{http.StatusBadGateway, UpstreamError},
		{http.StatusConflict, UpstreamError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForStatus(tt.status))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Cancelled, KindOf(context.Canceled))
	assert.Equal(t, Cancelled, KindOf(fmt.Errorf("do: %w", context.Canceled)))
	assert.Equal(t, NetworkFailure, KindOf(context.DeadlineExceeded))
	assert.Equal(t, NetworkFailure, KindOf(errors.New("connection refused")))
	assert.Equal(t, RateLimited, KindOf(fmt.Errorf("search: %w", FromStatus(429, "slow down"))))
}

func TestFromTransport(t *testing.T) {
	assert.Equal(t, Cancelled, FromTransport(context.Canceled).Kind)
	assert.Equal(t, NetworkFailure, FromTransport(context.DeadlineExceeded).Kind)
	assert.ErrorIs(t, FromTransport(context.DeadlineExceeded), context.DeadlineExceeded)
}

func TestSearchMessage(t *testing.T) {
	assert.Equal(t, MsgRateLimited, SearchMessage(FromStatus(429, "")))
	assert.Equal(t, MsgForbidden, SearchMessage(FromStatus(403, "")))
	assert.Equal(t, MsgSearchFailed, SearchMessage(FromStatus(500, "boom")))
	assert.Equal(t, MsgSearchFailed, SearchMessage(FromStatus(404, "")))
	assert.Equal(t, MsgSearchFailed, SearchMessage(FromTransport(context.DeadlineExceeded)))
	assert.Empty(t, SearchMessage(FromTransport(context.Canceled)))
	assert.Empty(t, SearchMessage(nil))
}

func TestDetailMessageDistinguishesNotFound(t *testing.T) {
	assert.Equal(t, MsgNotFound, DetailMessage(FromStatus(404, `{"error":"Not found"}`)))
	assert.Equal(t, MsgDetailFailed, DetailMessage(FromStatus(502, "")))
	assert.NotEqual(t, DetailMessage(FromStatus(404, "")), DetailMessage(FromStatus(500, "")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "rate_limited (HTTP 429)", FromStatus(429, "").Error())
	assert.Equal(t, "upstream_error (HTTP 500): boom", FromStatus(500, "boom").Error())
	assert.Equal(t, "network_failure: dial", (&Error{Kind: NetworkFailure, Err: errors.New("dial")}).Error())
}
