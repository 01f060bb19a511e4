// Package views holds the embedded HTML templates and the gin renderer for them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

const layout = "templates/layout.html"

// Renderer is a gin render.HTMLRender with one template set per page,
// each page sharing layout.html.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

var funcs = template.FuncMap{
	"certImage": func(name string) string {
		return "/static/uploads/certs/" + path.Base(name)
	},
	"humanize": humanize,
}

// humanize turns a category key like "programming_languages" into "Programming Languages".
func humanize(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func New() (*Renderer, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(entries))}

	for _, entry := range entries {
		if entry == layout {
			continue
		}

		t, err := template.New(path.Base(entry)).Funcs(funcs).ParseFS(templateFS, layout, entry)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry, err)
		}

		r.pages[path.Base(entry)] = t
	}

	return r, nil
}

// Instance satisfies render.HTMLRender. Unknown names panic, which gin's recovery turns into a 500.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic("views: unknown template " + name)
	}

	return render.HTML{Template: t, Name: "layout", Data: data}
}

// Assets serves the embedded stylesheet.
func Assets() http.FileSystem {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
