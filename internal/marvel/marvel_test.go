package marvel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:    srv.URL + "/",
		PublicKey:  "pub123456",
		PrivateKey: "priv",
		Timeout:    2 * time.Second,
	}, srv.Client())
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c, srv
}

func TestSign(t *testing.T) {
	// md5("1abcd1234")
	assert.Equal(t, "ffd275c5130566a2916217b101f26150", Sign("1", "abcd", "1234"))
}

func TestNormalizeThumbnail(t *testing.T) {
	tests := []struct {
		name string
		path string
		ext  string
		want string
	}{
		{"forces https", "http://i.annihil.us/path", "jpg", "https://i.annihil.us/path.jpg"},
		{"keeps https", "https://i.annihil.us/path", "png", "https://i.annihil.us/path.png"},
		{"placeholder suppressed", "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available", "jpg", ""},
		{"empty path", "", "jpg", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeThumbnail(tt.path, tt.ext))
		})
	}
}

func TestSearchByNameSignsAndMaps(t *testing.T) {
	var got url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[
			{"id":1009610,"name":"Spider-Man","thumbnail":{"path":"http://i.annihil.us/spidey","extension":"jpg"}},
			{"id":1011054,"name":"Spider-Man (1602)","thumbnail":{"path":"http://i.annihil.us/image_not_available","extension":"jpg"}},
			{"id":7,"name":"No Thumb"}
		]}}`))
	})

	results, err := c.SearchByName(context.Background(), "spi", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "spi", got.Get("nameStartsWith"))
	assert.Equal(t, "10", got.Get("limit"))
	assert.Equal(t, "1700000000000", got.Get("ts"))
	assert.Equal(t, "pub123456", got.Get("apikey"))
	assert.Equal(t, Sign("1700000000000", "priv", "pub123456"), got.Get("hash"))

	assert.Equal(t, 1009610, results[0].ID)
	assert.Equal(t, "https://i.annihil.us/spidey.jpg", results[0].ThumbnailURL)
	assert.Empty(t, results[1].ThumbnailURL)
	assert.Empty(t, results[2].ThumbnailURL)
}

func TestSearchByNameEmptyResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[]}}`))
	})

	results, err := c.SearchByName(context.Background(), "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestUpstreamStatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":"RequestThrottled","message":"You have exceeded your rate limit."}`))
	})

	_, err := c.SearchByName(context.Background(), "spi", 10)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
	assert.Contains(t, se.Body, "RequestThrottled")
}

func TestMissingCredentials(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, PublicKey: "pub"}, srv.Client())
	assert.False(t, c.HasCredentials())
	assert.True(t, c.PublicKeyLoaded())
	assert.False(t, c.PrivateKeyLoaded())

	_, err := c.SearchByName(context.Background(), "spi", 10)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCharacterDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters/1009610", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("nameStartsWith"))
		assert.NotEmpty(t, r.URL.Query().Get("hash"))
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[{
			"id":1009610,"name":"Spider-Man","description":"",
			"thumbnail":{"path":"http://i.annihil.us/spidey","extension":"jpg"},
			"comics":{"available":4000},"series":{"available":1100}
		}]}}`))
	})

	d, err := c.Character(context.Background(), "1009610")
	require.NoError(t, err)
	assert.Equal(t, 1009610, d.ID)
	assert.Equal(t, "(No description)", d.Description)
	assert.Equal(t, "https://i.annihil.us/spidey.jpg", d.ThumbnailURL)
	assert.Equal(t, 4000, d.ComicsAvailable)
	assert.Equal(t, 1100, d.SeriesAvailable)
	assert.Zero(t, d.StoriesAvailable)
}

func TestCharacterNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[]}}`))
	})

	_, err := c.Character(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.SearchByName(context.Background(), "spi", 10)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestRateLimiterHonoursContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"results":[]}}`))
	})
	c.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := c.SearchByName(context.Background(), "spi", 10)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.SearchByName(ctx, "spi", 10)
	assert.Error(t, err)
}
