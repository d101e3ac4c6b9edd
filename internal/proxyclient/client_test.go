package proxyclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heropick/internal/apierr"
	"heropick/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", nil)
	require.NoError(t, err)
	return c
}

func TestSearchCharactersSendsQueryAndLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/marvel/characters", r.URL.Path)
		assert.Equal(t, "spider man", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Spider-Man","thumbnailUrl":"https://x/y.jpg"},{"id":2,"name":"Spider-Woman"}]`))
	})

	got, err := c.SearchCharacters(context.Background(), "spider man", 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.CharacterSummary{
		{ID: 1, Name: "Spider-Man", ThumbnailURL: "https://x/y.jpg"},
		{ID: 2, Name: "Spider-Woman"},
	}, got)
}

func TestSearchCharactersEmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := c.SearchCharacters(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   apierr.Kind
	}{
		{http.StatusTooManyRequests, apierr.RateLimited},
		{http.StatusForbidden, apierr.Forbidden},
		{http.StatusNotFound, apierr.NotFound},
		{http.StatusInternalServerError, apierr.UpstreamError},
		{http.StatusUnauthorized, apierr.UpstreamError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})
			_, err := c.SearchCharacters(context.Background(), "thor", 10)
			require.Error(t, err)
			assert.Equal(t, tt.want, apierr.KindOf(err))

			var apiErr *apierr.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestGetCharacter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/marvel/characters/1009610", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1009610,"name":"Spider-Man","description":"bitten","comicsAvailable":4,"seriesAvailable":3,"storiesAvailable":2}`))
	})

	got, err := c.GetCharacter(context.Background(), 1009610)
	require.NoError(t, err)
	assert.Equal(t, domain.CharacterDetail{
		ID: 1009610, Name: "Spider-Man", Description: "bitten",
		ComicsAvailable: 4, SeriesAvailable: 3, StoriesAvailable: 2,
	}, got)
}

func TestGetCharacterNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
	})

	_, err := c.GetCharacter(context.Background(), 42)
	assert.Equal(t, apierr.NotFound, apierr.KindOf(err))
	assert.Equal(t, apierr.MsgNotFound, apierr.DetailMessage(err))
}

func TestCancelledContextIsCancelled(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.SearchCharacters(ctx, "hulk", 10)
	assert.Equal(t, apierr.Cancelled, apierr.KindOf(err))
	assert.Empty(t, apierr.SearchMessage(err))
}

func TestDeadlineIsNetworkFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.SearchCharacters(ctx, "hulk", 10)
	assert.Equal(t, apierr.NetworkFailure, apierr.KindOf(err))
	assert.Equal(t, apierr.MsgSearchFailed, apierr.SearchMessage(err))
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true,"publicLoaded":true,"privateLoaded":false}`))
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Health{OK: true, PublicLoaded: true}, h)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost", nil)
	assert.Error(t, err)
}
