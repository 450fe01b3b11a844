package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/config"
	"github.com/conneroisu/forge/internal/theme"
)

const testOrigin = "http://localhost:7331"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "localhost",
			Port:           7331,
			AllowedOrigins: []string{testOrigin},
		},
		Theme: config.ThemeConfig{
			CopyReset: time.Second,
			Format:    "jsx",
		},
		Log: config.LogConfig{Level: "info", Format: "text"},
	}
}

// fakeClipboard records writes instead of touching the OS clipboard.
type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) write(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, text)
	return f.err
}

func (f *fakeClipboard) last() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return "", false
	}
	return f.writes[len(f.writes)-1], true
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *fakeClipboard) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	clip := &fakeClipboard{}
	s, err := New(context.Background(), cfg, WithClipboardWriter(clip.write))
	require.NoError(t, err)
	return s, clip
}

// stateBody mirrors ThemeState with plain maps for decoding.
type stateBody struct {
	Draft struct {
		Light          map[string]string `json:"light"`
		Dark           map[string]string `json:"dark"`
		Radius         map[string]string `json:"radius"`
		Spacing        map[string]string `json:"spacing"`
		FontFamily     string            `json:"fontFamily"`
		ShadowsEnabled bool              `json:"shadowsEnabled"`
		Markers        theme.Markers     `json:"markers"`
	} `json:"draft"`
	Mode    string `json:"mode"`
	Format  string `json:"format"`
	Count   int    `json:"changeCount"`
	Snippet string `json:"snippet"`
	Copied  bool   `json:"copied"`
	Pickers []struct {
		Key     string    `json:"key"`
		Enabled bool      `json:"enabled"`
		Value   string    `json:"value"`
		HSL     color.HSL `json:"hsl"`
	} `json:"pickers"`
}

type actionBody struct {
	Applied     bool      `json:"applied"`
	Suggestions []string  `json:"suggestions"`
	State       stateBody `json:"state"`
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newRequest(method, path, origin string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
