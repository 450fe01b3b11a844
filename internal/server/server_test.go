package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/theme"
	"github.com/conneroisu/forge/internal/watcher"
)

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func TestIndexPage(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := html.Parse(rec.Body)
	require.NoError(t, err)

	snippet := findAll(doc, byID("snippet"))
	require.Len(t, snippet, 1)
	assert.Equal(t, "pre", snippet[0].Data)
	assert.Equal(t, theme.Generate(theme.NewDraft()), textOf(snippet[0]))

	items := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "data-key")
		return n.Data == "li" && ok
	})
	assert.Len(t, items, 18)

	active := findAll(doc, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		_, ok := attr(n, "data-category")
		return ok && class == "active"
	})
	var ids []string
	for _, n := range active {
		id, _ := attr(n, "data-id")
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"purple", "rounded", "comfortable", "system"}, ids)

	changes := findAll(doc, byID("changes"))
	require.Len(t, changes, 1)
	assert.Equal(t, "0 changes", textOf(changes[0]))
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "class")
		return v == class
	}
}

func TestIndexPageControls(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/theme/shadows", shadowsRequest{Enabled: false})

	rec := do(t, h, http.MethodGet, "/", nil)
	body := rec.Body.String()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	light := theme.DefaultColors(theme.ModeLight)
	items := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "data-key")
		return n.Data == "li" && ok
	})
	require.Len(t, items, len(theme.ColorKeys))
	for _, li := range items {
		key, _ := attr(li, "data-key")

		inputs := findAll(li, hasClass("color-value"))
		require.Len(t, inputs, 1, key)
		value, _ := attr(inputs[0], "value")
		assert.Equal(t, light.Value(theme.ColorKey(key)), value, key)

		sliders := findAll(li, func(n *html.Node) bool {
			typ, _ := attr(n, "type")
			return n.Data == "input" && typ == "range"
		})
		if theme.IsAlphaKey(theme.ColorKey(key)) {
			assert.Empty(t, sliders, key)
			continue
		}
		require.Len(t, sliders, 3, key)
		hsl := color.HexToHSL(value)
		for i, want := range []int{hsl.H, hsl.S, hsl.L} {
			got, _ := attr(sliders[i], "value")
			assert.Equal(t, fmt.Sprint(want), got, key)
		}
	}

	scales := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "data-scale")
		return ok
	})
	require.Len(t, scales, len(theme.RadiusKeys)+len(theme.SpacingKeys))
	for _, n := range scales {
		scale, _ := attr(n, "data-scale")
		key, _ := attr(n, "data-key")
		value, _ := attr(n, "value")
		switch scale {
		case "radius":
			assert.Equal(t, theme.DefaultRadius().Value(theme.RadiusKey(key)), value)
		case "spacing":
			assert.Equal(t, theme.DefaultSpacing().Value(theme.SpacingKey(key)), value)
		default:
			t.Errorf("unexpected scale %q", scale)
		}
	}

	font := findAll(doc, byID("font-family"))
	require.Len(t, font, 1)
	family, _ := attr(font[0], "value")
	assert.Equal(t, theme.NewDraft().FontFamily, family)

	shadows := findAll(doc, byID("shadows"))
	require.Len(t, shadows, 1)
	_, checked := attr(shadows[0], "checked")
	assert.False(t, checked)

	assert.Len(t, findAll(doc, byID("reset")), 1)

	for _, path := range []string{"/api/theme/color", "/api/theme/font", "/api/theme/shadows", "/api/theme/reset"} {
		assert.Contains(t, body, path)
	}
	assert.Contains(t, body, "'/api/theme/'+el.dataset.scale")
}

func TestIndexPageEscapesDraftValues(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/theme/font", fontRequest{Family: `</pre><script>alert(1)</script>`})

	rec := do(t, h, http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")

	doc, err := html.Parse(rec.Body)
	require.NoError(t, err)
	snippet := findAll(doc, byID("snippet"))
	require.Len(t, snippet, 1)
	assert.Contains(t, textOf(snippet[0]), `fontFamily: "</pre><script>alert(1)</script>",`)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	cfg := testConfig()
	cfg.Theme.Format = "scss"
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewLoadsDraftFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  color: blue\nshadows: false\n"), 0o644))

	cfg := testConfig()
	cfg.Theme.Draft = path
	s, _ := newTestServer(t, cfg)

	state := s.Session().State()
	assert.Equal(t, "blue", state.Draft.Markers.Color)
	assert.False(t, state.Draft.ShadowsEnabled)
	assert.Equal(t, 9, state.Count)
}

func TestNewFailsOnInvalidDraftFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("light:\n  accent: \"#000000\"\n"), 0o644))

	cfg := testConfig()
	cfg.Theme.Draft = path
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestReloadDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("shadows = false\n"), 0o644))

	cfg := testConfig()
	cfg.Theme.Draft = path
	s, _ := newTestServer(t, cfg)
	ctx := context.Background()
	assert.Equal(t, 1, s.Session().State().Count)

	require.NoError(t, os.WriteFile(path, []byte("[presets]\ncolor = \"green\"\n"), 0o644))
	require.NoError(t, s.reloadDraft(ctx, []watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: path}}))
	state := s.Session().State()
	assert.Equal(t, "green", state.Draft.Markers.Color)
	assert.True(t, state.Draft.ShadowsEnabled)

	// A broken file keeps the current draft.
	require.NoError(t, os.WriteFile(path, []byte("[light]\nbgPrimary = \"blue\"\n"), 0o644))
	require.Error(t, s.reloadDraft(ctx, []watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: path}}))
	assert.Equal(t, "green", s.Session().State().Draft.Markers.Color)

	// Removal is ignored.
	require.NoError(t, s.reloadDraft(ctx, []watcher.ChangeEvent{{Type: watcher.EventTypeDeleted, Path: path}}))
	assert.Equal(t, "green", s.Session().State().Draft.Markers.Color)
}

func TestWatcherReloadsDotNamedDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("shadows: false\n"), 0o644))

	cfg := testConfig()
	cfg.Theme.Draft = path
	cfg.Theme.Watch = true
	s, _ := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.startWatcher(ctx))
	defer s.Shutdown(context.Background())

	require.NoError(t, os.WriteFile(path, []byte("presets:\n  color: green\n"), 0o644))
	require.Eventually(t, func() bool {
		return s.Session().State().Draft.Markers.Color == "green"
	}, 3*time.Second, 20*time.Millisecond)
}

type wsMessage struct {
	Type    string    `json:"type"`
	State   stateBody `json:"state"`
	Copied  *bool     `json:"copied"`
	Message string    `json:"message"`
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) wsMessage {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var msg wsMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocketUpdates(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{testOrigin}},
	})
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	greeting := readMessage(t, ctx, conn)
	assert.Equal(t, MessageTheme, greeting.Type)
	assert.Equal(t, theme.Generate(theme.NewDraft()), greeting.State.Snippet)

	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/api/theme/preset", "application/json",
		strings.NewReader(`{"category":"color","id":"orange"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	update := readMessage(t, ctx, conn)
	assert.Equal(t, MessageTheme, update.Type)
	assert.Equal(t, "orange", update.State.Draft.Markers.Color)
	assert.Equal(t, "#F97316", update.State.Draft.Light["brandPrimary"])
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{"http://evil.example"}},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, s.hub.ClientCount())
}

func TestWebSocketAfterHubStopped(t *testing.T) {
	s, _ := newTestServer(t, nil)

	runCtx, stop := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.hub.Run(runCtx)
		close(stopped)
	}()
	stop()
	<-stopped

	returned := make(chan struct{}, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hub.ServeHTTP(w, r)
		returned <- struct{}{}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{testOrigin}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	_, _, err = conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	select {
	case <-returned:
	case <-time.After(3 * time.Second):
		t.Fatal("handler still blocked after the hub stopped")
	}
	assert.Equal(t, 0, s.hub.ClientCount())
}
