package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/portfolio/internal/content"
	domain "github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/http/handlers"
	"github.com/geocoder89/portfolio/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

type sectionBody struct {
	Section          string           `json:"section"`
	Origin           string           `json:"origin"`
	StoreUnavailable bool             `json:"storeUnavailable"`
	Items            []map[string]any `json:"items"`
}

func apiRouter(t *testing.T, store content.Source) *gin.Engine {
	t.Helper()

	h := handlers.NewContentAPIHandler(newResolver(t, store), quietLogger())

	return setupRouter(http.MethodGet, "/api/content/:section", h.GetSection)
}

func TestContentAPIFromStoreWithETag(t *testing.T) {
	repo := memory.NewContentRepo()
	if _, err := repo.CreateProject(context.Background(), domain.Project{Title: "Stored"}); err != nil {
		t.Fatal(err)
	}
	r := apiRouter(t, repo)

	w := get(r, "/api/content/projects")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var body sectionBody
	decode(t, w, &body)

	if body.Section != "projects" || body.Origin != "store" || body.StoreUnavailable {
		t.Fatalf("unexpected payload %+v", body)
	}
	if len(body.Items) != 1 || body.Items[0]["title"] != "Stored" {
		t.Fatalf("unexpected items %+v", body.Items)
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag")
	}
	if w.Header().Get("Cache-Control") != "no-cache" {
		t.Fatalf("content responses must be revalidated, got %q", w.Header().Get("Cache-Control"))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/content/projects", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("matching If-None-Match should give 304, got %d", w.Code)
	}
}

func TestContentAPIFallback(t *testing.T) {
	r := apiRouter(t, unreachable)

	w := get(r, "/api/content/projects")

	var body sectionBody
	decode(t, w, &body)

	if body.Origin != "fallback" || !body.StoreUnavailable {
		t.Fatalf("expected fallback with the unavailable flag, got %+v", body)
	}
	if len(body.Items) != 1 || body.Items[0]["title"] != "Fallback Project" {
		t.Fatalf("unexpected items %+v", body.Items)
	}
}

func TestContentAPIErrors(t *testing.T) {
	r := apiRouter(t, memory.NewContentRepo())

	w := get(r, "/api/content/passwords")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown section: status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Code != "not_found" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	r = apiRouter(t, erroringStore{err: errors.New("boom")})
	if w := get(r, "/api/content/projects"); w.Code != http.StatusInternalServerError {
		t.Fatalf("store failure: status = %d", w.Code)
	}
}
