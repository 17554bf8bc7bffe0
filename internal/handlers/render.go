package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hongshengyuan.tech/web/internal/dom"
	"hongshengyuan.tech/web/internal/middleware"
	"hongshengyuan.tech/web/internal/seo"
)

const layoutTemplate = "base"

// Renderer executes page templates and post-processes the resulting head.
// In dev mode templates are reparsed on each request.
type Renderer struct {
	dir string
	dev bool

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewRenderer parses the templates under dir once so errors surface at
// startup.
func NewRenderer(dir string, dev bool) (*Renderer, error) {
	rd := &Renderer{dir: dir, dev: dev}
	if _, err := rd.templates(); err != nil {
		return nil, err
	}
	return rd, nil
}

// templates returns one template set per page file. Each set holds the
// layouts and partials plus that page, so pages can redefine shared blocks
// such as "content".
func (rd *Renderer) templates() (map[string]*template.Template, error) {
	if !rd.dev {
		rd.mu.Lock()
		defer rd.mu.Unlock()
		if rd.cache != nil {
			return rd.cache, nil
		}
	}
	set, err := parseTemplates(rd.dir)
	if err != nil {
		return nil, err
	}
	if !rd.dev {
		rd.cache = set
	}
	return set, nil
}

func parseTemplates(dir string) (map[string]*template.Template, error) {
	var shared, pages []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found under %s", dir)
	}
	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		files := append(append([]string(nil), shared...), page)
		t, err := template.New("_root").ParseFiles(files...)
		if err != nil {
			return nil, err
		}
		set[strings.TrimSuffix(filepath.Base(page), ".tmpl")] = t
	}
	return set, nil
}

// Execute renders page with data through the base layout, applies the
// site-wide structured data and then meta, and returns the final document.
func (rd *Renderer) Execute(ctx context.Context, page string, data any, base []seo.Block, meta Page) ([]byte, error) {
	set, err := rd.templates()
	if err != nil {
		return nil, fmt.Errorf("template parse: %w", err)
	}
	t, ok := set[page]
	if !ok {
		return nil, fmt.Errorf("template %q not found", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return nil, fmt.Errorf("template exec: %w", err)
	}
	doc, err := dom.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse rendered page: %w", err)
	}
	head := doc.Head()
	appendBlocks(ctx, head, base)
	meta.ApplyTo(ctx, head)

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Render writes the page with the given status, or a 500 when rendering fails.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any, base []seo.Block, meta Page) {
	body, err := rd.Execute(r.Context(), page, data, base, meta)
	if err != nil {
		middleware.Logger(r.Context()).Error("render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
