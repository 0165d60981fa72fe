package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/devfolio/internal/analytics"
	"github.com/Zachkp/devfolio/internal/content"
)

const melogYAML = `
profile:
  brand: Dev.Portfolio
  about: "I like **fast** programs."
sections:
  - {id: home, name: Home}
  - {id: about, name: About}
  - {id: skills, name: Skills}
  - {id: projects, name: Projects}
  - {id: contact, name: Contact}
projects:
  - id: 1
    title: Melog
    summary: MapleStory search
    details: "Backend in **Rust**.<script>alert(1)</script>"
    stack: [Rust, Axum, TypeScript, React.js]
    repo: https://github.com/lmsbin/melog
    demo: "#"
`

func newTestServer(t *testing.T, yaml string, visitors VisitorStore) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p, err := content.Decode(strings.NewReader(yaml))
	require.NoError(t, err)

	cfg := Config{Portfolio: p, Service: "test-service", Version: "1.0.0", Retention: time.Hour}
	if visitors != nil {
		cfg.Visitors = visitors
		cfg.Admin = AdminCredentials{Username: "zach", Password: "secret"}
	}
	s, err := NewServer(cfg)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIndexRendersSections(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	rr := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	for _, id := range []string{"home", "about", "skills", "projects", "contact"} {
		assert.Contains(t, body, `<section id="`+id+`"`)
		assert.Contains(t, body, `data-nav="`+id+`"`)
	}
	assert.Contains(t, body, `class="nav-link active" data-nav="home"`)
	assert.Contains(t, body, `data-scroll-container`)
	assert.Contains(t, body, `data-project-open="1"`)
	assert.Contains(t, body, `data-overlay="project" data-project="1"`)
	assert.Contains(t, body, "<strong>fast</strong>")
	assert.Contains(t, body, "+1")
}

func TestIndexSuppressesPlaceholderDemo(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	body := get(t, s.Handler(), "/").Body.String()
	assert.NotContains(t, body, "Live Demo")
	assert.Contains(t, body, "GitHub Repo")
	assert.Contains(t, body, "https://github.com/lmsbin/melog")
}

func TestIndexShowsRealDemo(t *testing.T) {
	yaml := strings.Replace(melogYAML, `demo: "#"`, `demo: https://melog.example.com`, 1)
	s := newTestServer(t, yaml, nil)

	body := get(t, s.Handler(), "/").Body.String()
	assert.Contains(t, body, "Live Demo")
	assert.Contains(t, body, `href="https://melog.example.com"`)
}

func TestIndexDropsRawHTMLFromMarkdown(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	body := get(t, s.Handler(), "/").Body.String()
	assert.Contains(t, body, "<strong>Rust</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestIndexEmbedsPageData(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)
	body := get(t, s.Handler(), "/").Body.String()

	const open = `<script id="portfolio-data" type="application/json">`
	start := strings.Index(body, open)
	require.NotEqual(t, -1, start)
	rest := body[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.NotEqual(t, -1, end)

	var p content.Portfolio
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &p))
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Melog", p.Projects[0].Title)
	assert.False(t, p.Projects[0].HasDemo())
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	for _, path := range []string{"/health", "/healthz"} {
		rr := get(t, s.Handler(), path)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "test-service", resp.Service)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Equal(t, "disabled", resp.Analytics)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	rr := get(t, s.Handler(), "/health", "X-Request-Id", "abc-123")
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))

	rr = get(t, s.Handler(), "/health")
	assert.Len(t, rr.Header().Get("X-Request-Id"), 36)
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert.Empty(t, GetRequestID(context.Background()))

	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
	})
	get(t, r, "/", "X-Request-Id", "abc-123")
	assert.Equal(t, "abc-123", seen)
}

func TestPrivacyAndNotFound(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	rr := get(t, s.Handler(), "/privacy")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Privacy Policy")

	rr = get(t, s.Handler(), "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = get(t, s.Handler(), "/admin/dashboard")
	assert.Equal(t, http.StatusNotFound, rr.Code, "admin is off without a visitor store")
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, melogYAML, nil)

	rr := get(t, s.Handler(), "/static/style.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = get(t, s.Handler(), "/static/app.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "main.wasm")
}

func TestStaticDirOverlay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0o644))

	p, err := content.Decode(strings.NewReader(melogYAML))
	require.NoError(t, err)
	s, err := NewServer(Config{Portfolio: p, StaticDir: dir})
	require.NoError(t, err)

	rr := get(t, s.Handler(), "/static/main.wasm")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = get(t, s.Handler(), "/static/style.css")
	assert.Equal(t, http.StatusOK, rr.Code, "embedded assets still served")

	_, err = NewServer(Config{Portfolio: p, StaticDir: filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestNewServerRequiresPortfolio(t *testing.T) {
	_, err := NewServer(Config{})
	assert.Error(t, err)
}

func openStore(t *testing.T) *analytics.Store {
	t.Helper()
	store, err := analytics.Open(context.Background(), filepath.Join(t.TempDir(), "visitors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestVisitorTracking(t *testing.T) {
	store := openStore(t)
	s := newTestServer(t, melogYAML, store)
	ctx := context.Background()

	get(t, s.Handler(), "/", "User-Agent", "tester")
	get(t, s.Handler(), "/static/style.css")
	get(t, s.Handler(), "/health")
	get(t, s.Handler(), "/", "DNT", "1")

	assert.Eventually(t, func() bool {
		recent, err := store.Recent(ctx, 10)
		return err == nil && len(recent) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Give any stray background writes a chance to land before counting.
	time.Sleep(50 * time.Millisecond)
	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "/", recent[0].Path)
	assert.Equal(t, "tester", recent[0].UserAgent)
	assert.Len(t, recent[0].HashedIP, 16)

	rr := get(t, s.Handler(), "/health")
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "up", resp.Analytics)
}

func TestAdminLoginFlow(t *testing.T) {
	store := openStore(t)
	s := newTestServer(t, melogYAML, store)
	h := s.Handler()

	rr := get(t, h, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))

	post := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr = post("zach", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")

	rr = post("zach", "secret")
	require.Equal(t, http.StatusFound, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Recent visits")

	req = httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminLoginThrottled(t *testing.T) {
	store := openStore(t)
	h := newTestServer(t, melogYAML, store).Handler()

	codes := make([]int, 0, loginBurst+1)
	for range loginBurst + 1 {
		form := url.Values{"username": {"zach"}, "password": {"guess"}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	for _, code := range codes[:loginBurst] {
		assert.Equal(t, http.StatusUnauthorized, code)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[loginBurst])
}

func TestAdminLoginThrottledPerClient(t *testing.T) {
	store := openStore(t)
	h := newTestServer(t, melogYAML, store).Handler()

	post := func(remote, pass string) int {
		form := url.Values{"username": {"zach"}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	for range loginBurst {
		post("192.0.2.1:1234", "guess")
	}
	assert.Equal(t, http.StatusTooManyRequests, post("192.0.2.1:1234", "secret"))
	assert.Equal(t, http.StatusFound, post("198.51.100.2:1234", "secret"))
}

func TestClosedOverlaysAreHidden(t *testing.T) {
	h := newTestServer(t, melogYAML, nil).Handler()

	css := get(t, h, "/static/style.css")
	require.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "[hidden] { display: none !important; }")

	page := get(t, h, "/")
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	for _, name := range []string{"menu", "project", "resume"} {
		assert.Regexp(t, `data-overlay="`+name+`"[^>]*\shidden`, body, name)
	}
}
