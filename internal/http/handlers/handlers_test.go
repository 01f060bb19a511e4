package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/http/handlers"
	"github.com/geocoder89/portfolio/internal/http/views"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeContentWriter records what the admin endpoints try to store.
type fakeContentWriter struct {
	createExperienceFn    func(ctx context.Context, e domain.Experience) (int64, error)
	createProjectFn       func(ctx context.Context, p domain.Project) (int64, error)
	createCertificationFn func(ctx context.Context, c domain.Certification) (int64, error)
	calls                 int
}

func (f *fakeContentWriter) CreateExperience(ctx context.Context, e domain.Experience) (int64, error) {
	f.calls++
	if f.createExperienceFn != nil {
		return f.createExperienceFn(ctx, e)
	}
	return 1, nil
}

func (f *fakeContentWriter) CreateProject(ctx context.Context, p domain.Project) (int64, error) {
	f.calls++
	if f.createProjectFn != nil {
		return f.createProjectFn(ctx, p)
	}
	return 1, nil
}

func (f *fakeContentWriter) CreateCertification(ctx context.Context, c domain.Certification) (int64, error) {
	f.calls++
	if f.createCertificationFn != nil {
		return f.createCertificationFn(ctx, c)
	}
	return 1, nil
}

// small helper which returns the gin engine to mount one handler per test
func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	renderer, err := views.New()
	if err != nil {
		panic(err)
	}
	r.HTMLRender = renderer

	r.Handle(method, path, h)

	return r
}

type multipartFile struct {
	field, filename string
	body            []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...multipartFile) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(f.body); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return &buf, w.FormDataContentType()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handlers.Envelope {
	t.Helper()

	var env handlers.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode: %v body=%s", err, w.Body.String())
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
