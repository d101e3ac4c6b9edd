package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heropick/internal/domain"
)

func TestHealthCommandPrintsProxyReport(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"publicLoaded":true,"privateLoaded":false}`))
	}))
	defer proxy.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"health", "--url", proxy.URL})
	require.NoError(t, rootCmd.Execute())

	var got domain.Health
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, domain.Health{OK: true, PublicLoaded: true, PrivateLoaded: false}, got)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "abcdef", keyPrefix("abcdef123456"))
	assert.Equal(t, "abc", keyPrefix("abc"))
	assert.Equal(t, "", keyPrefix(""))
}
