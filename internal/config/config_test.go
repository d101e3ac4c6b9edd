package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heropick/internal/domain"
	"heropick/internal/eventbus"
)

// recordingBus delivers nothing and keeps every published event
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                    {}

func (b *recordingBus) published() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.DomainEvent(nil), b.events...)
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	svc := NewConfigServiceAt(path, nil)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be written on first load")
}

func TestLoadAndSavePublishEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	bus := &recordingBus{}
	svc := NewConfigServiceAt(path, bus)

	_, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, []eventbus.DomainEvent{
		domain.ConfigSavedEvent{Path: path},
		domain.ConfigLoadedEvent{Path: path},
	}, bus.published())
}

func TestLoadInvalidFilePublishesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[search]\nlimit = 500\n"), 0644))
	bus := &recordingBus{}

	_, err := NewConfigServiceAt(path, bus).Load()
	require.Error(t, err)
	assert.Empty(t, bus.published())
}

func TestRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	svc := NewConfigServiceAt(path, nil)

	cfg := DefaultConfig()
	cfg.ProxyURL = "http://proxy.internal:9000"
	cfg.Search.MinChars = 3
	cfg.Search.QuietMs = 450
	cfg.Search.RequestTimeout = Duration(3 * time.Second)
	cfg.UI.ShowCallCount = false
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 450*time.Millisecond, loaded.Search.Quiet())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[search]\nmin_chars = 3\n"), 0644))

	cfg, err := NewConfigServiceAt(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Search.MinChars)
	assert.Equal(t, 250, cfg.Search.QuietMs)
	assert.Equal(t, "http://localhost:8787", cfg.ProxyURL)
	assert.Equal(t, Duration(10*time.Second), cfg.Search.RequestTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero quiet", "[search]\nquiet_ms = 0\n"},
		{"zero min chars", "[search]\nmin_chars = 0\n"},
		{"limit too large", "[search]\nlimit = 500\n"},
		{"bad duration", "[search]\nrequest_timeout = \"soon\"\n"},
		{"bad url", "proxy_url = \"not a url\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			_, err := NewConfigServiceAt(path, nil).Load()
			assert.Error(t, err)
		})
	}
}

func TestParseServerEnv(t *testing.T) {
	t.Setenv("MARVEL_PUBLIC", "pub123456")
	t.Setenv("MARVEL_PRIVATE", "priv")
	t.Setenv("PORT", "9999")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")

	cfg, err := ParseServerEnv()
	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "https://gateway.marvel.com/v1/public", cfg.UpstreamBaseURL)
	assert.Equal(t, 10, cfg.SearchLimit)
}

func TestParseServerEnvWithoutKeys(t *testing.T) {
	t.Setenv("MARVEL_PUBLIC", "")
	t.Setenv("MARVEL_PRIVATE", "")

	cfg, err := ParseServerEnv()
	require.NoError(t, err, "missing keys surface per request, not at startup")
	assert.False(t, cfg.HasCredentials())
}

func TestParseServerEnvRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"limit zero", "SEARCH_LIMIT", "0"},
		{"limit too large", "SEARCH_LIMIT", "101"},
		{"rate zero", "UPSTREAM_RATE", "0"},
		{"negative rate", "UPSTREAM_RATE", "-1"},
		{"burst zero", "UPSTREAM_BURST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := ParseServerEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseServerEnvAcceptsBounds(t *testing.T) {
	t.Setenv("SEARCH_LIMIT", "100")
	t.Setenv("UPSTREAM_RATE", "0.5")

	cfg, err := ParseServerEnv()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.SearchLimit)
	assert.Equal(t, 0.5, cfg.UpstreamRate)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HEROPICK_TEST_A=from-file\nHEROPICK_TEST_B=from-file\n"), 0644))
	t.Setenv("HEROPICK_TEST_A", "from-env")
	t.Setenv("HEROPICK_TEST_B", "")
	os.Unsetenv("HEROPICK_TEST_B")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("HEROPICK_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("HEROPICK_TEST_B"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
