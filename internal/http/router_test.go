package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/portfolio/internal/auth"
	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/content"
	apphttp "github.com/geocoder89/portfolio/internal/http"
	"github.com/geocoder89/portfolio/internal/http/handlers"
	"github.com/geocoder89/portfolio/internal/http/middlewares"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/geocoder89/portfolio/internal/repo/memory"
	"github.com/geocoder89/portfolio/internal/security"
	"github.com/geocoder89/portfolio/internal/session"
	"github.com/geocoder89/portfolio/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		SessionSecret:   "test-secret-key",
		SessionTTL:      time.Hour,
		MaxUploadBytes:  1 << 20,
		LoginRateLimit:  5,
		LoginRateWindow: time.Minute,
	}
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := testConfig()

	docPath := filepath.Join(t.TempDir(), "resume_data.json")
	doc := `{"name":"Jane Doe","projects":[{"title":"Fallback Project"}]}`
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	users := memory.NewUsersRepo()
	hash, err := security.HashPassword("admin-pass")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := users.Create(context.Background(), "admin", hash); err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	repo := memory.NewContentRepo()
	resolver := content.NewResolver(repo, content.NewDocumentSource(docPath), logger, content.WithObserver(prom))

	router, err := apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Content:  resolver,
		Writer:   repo,
		Users:    users,
		Sessions: session.NewManager(session.NewMemoryStore(), auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)),
		Uploads:  uploads.NewStore(t.TempDir()),
		Prom:     prom,
		Gatherer: reg,
		Checks:   map[string]handlers.Pinger{"db": func(context.Context) error { return nil }},
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	return router
}

func send(r http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {"admin"}, "password": {"admin-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := send(r, req, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login status = %d body=%s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.SessionCookieName && c.Value != "" {
			return c
		}
	}

	t.Fatalf("login did not set a session cookie")
	return nil
}

// testOrigin matches the Host httptest.NewRequest fills in.
const testOrigin = "http://example.com"

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", testOrigin)
	return req
}

func logoutFrom(referer string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	return req
}

func TestAdminWritesRequireLogin(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{"/admin/add_experience", "/admin/add_project", "/admin/add_certification", "/admin/upload_resume"} {
		w := send(r, postJSON(path, `{}`), nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", path, w.Code)
		}
	}

	w := send(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Fatalf("dashboard without login: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestLoginAddExperienceThenReadBack(t *testing.T) {
	r := setupTestRouter(t)
	cookie := login(t, r)

	if w := send(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), cookie); w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}

	// already logged in: the login page bounces to the dashboard
	if w := send(r, httptest.NewRequest(http.MethodGet, "/admin/login", nil), cookie); w.Code != http.StatusFound {
		t.Fatalf("login page for a logged in admin: status = %d", w.Code)
	}

	w := send(r, postJSON("/admin/add_experience", `{"company":"ACME","role":"Engineer","responsibilities":["APIs"]}`), cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("add_experience status = %d body=%s", w.Code, w.Body.String())
	}

	w = send(r, httptest.NewRequest(http.MethodGet, "/api/content/professional_experience", nil), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("api status = %d", w.Code)
	}

	var payload struct {
		Origin string `json:"origin"`
		Items  []struct {
			Company          string   `json:"company"`
			Responsibilities []string `json:"responsibilities"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Origin != "store" || len(payload.Items) != 1 || payload.Items[0].Company != "ACME" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	page := send(r, httptest.NewRequest(http.MethodGet, "/professional-experience", nil), nil)
	if !strings.Contains(page.Body.String(), "ACME") {
		t.Fatalf("page should list the stored experience")
	}

	// logout ends the session server-side
	if w := send(r, logoutFrom(testOrigin+"/admin/dashboard"), cookie); w.Code != http.StatusFound {
		t.Fatalf("logout status = %d", w.Code)
	}

	if w := send(r, postJSON("/admin/add_project", `{"title":"x"}`), cookie); w.Code != http.StatusUnauthorized {
		t.Fatalf("old cookie after logout: status = %d", w.Code)
	}
}

func TestCrossSiteRequestsKeepTheSession(t *testing.T) {
	r := setupTestRouter(t)
	cookie := login(t, r)

	for _, referer := range []string{"", "https://evil.test/lure"} {
		if w := send(r, logoutFrom(referer), cookie); w.Code != http.StatusForbidden {
			t.Fatalf("logout from %q: status = %d, want 403", referer, w.Code)
		}
	}

	req := postJSON("/admin/add_project", `{"title":"x"}`)
	req.Header.Set("Origin", "https://evil.test")
	if w := send(r, req, cookie); w.Code != http.StatusForbidden {
		t.Fatalf("cross-site write: status = %d, want 403", w.Code)
	}

	if w := send(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), cookie); w.Code != http.StatusOK {
		t.Fatalf("session should survive refused requests, dashboard status = %d", w.Code)
	}
}

func TestPublicPagesUseFallbackDocument(t *testing.T) {
	r := setupTestRouter(t)

	w := send(r, httptest.NewRequest(http.MethodGet, "/projects", nil), nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Fallback Project") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if csp := w.Header().Get("Content-Security-Policy"); csp == "" {
		t.Fatalf("pages should carry a CSP")
	}
}

func TestOpsEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/static/assets/style.css"} {
		if w := send(r, httptest.NewRequest(http.MethodGet, path, nil), nil); w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
	}

	send(r, httptest.NewRequest(http.MethodGet, "/projects", nil), nil)

	w := send(r, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "portfolio_http_requests_total") || !strings.Contains(body, `portfolio_content_reads_total{origin="fallback",section="projects"}`) {
		t.Fatalf("metrics missing expected series:\n%s", body)
	}
}
