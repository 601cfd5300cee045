// Package pages serves the localized static pages that unlocalized
// requests are redirected to.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md templates/page.html
var assets embed.FS

// Page is a rendered page in one locale.
type Page struct {
	Lang      string
	Title     string
	HomeLabel string
	Body      template.HTML
}

type frontMatter struct {
	Title string `yaml:"title"`
	Home  string `yaml:"home"`
}

// About serves the about page for every supported locale.
type About struct {
	pages  map[string]Page
	layout *template.Template
	logger *slog.Logger
}

// NewAbout renders the about page of every locale in supported.
// It fails if any of them has no content.
func NewAbout(supported []string, logger *slog.Logger) (*About, error) {
	return newAbout(assets, supported, logger)
}

func newAbout(fsys fs.FS, supported []string, logger *slog.Logger) (*About, error) {
	layout, err := template.ParseFS(fsys, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("pages: parse layout: %w", err)
	}
	md := goldmark.New()
	policy := bluemonday.UGCPolicy()

	pages := make(map[string]Page, len(supported))
	for _, lang := range supported {
		file := "content/about." + lang + ".md"
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("pages: no about content for locale %q", lang)
			}
			return nil, fmt.Errorf("pages: read %s: %w", file, err)
		}
		page, err := render(md, policy, lang, raw)
		if err != nil {
			return nil, fmt.Errorf("pages: render %s: %w", file, err)
		}
		pages[lang] = page
	}

	return &About{
		pages:  pages,
		layout: layout,
		logger: logger.With("component", "pages"),
	}, nil
}

// Get returns the rendered page for lang.
func (a *About) Get(lang string) (Page, bool) {
	page, ok := a.pages[lang]
	return page, ok
}

// ServeHTTP renders the page for the {lang} path segment.
func (a *About) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, ok := a.Get(r.PathValue("lang"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := a.layout.Execute(&buf, page); err != nil {
		a.logger.ErrorContext(r.Context(), "Error rendering page", "lang", page.Lang, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", page.Lang)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func render(md goldmark.Markdown, policy *bluemonday.Policy, lang string, raw []byte) (Page, error) {
	fm, body := splitFrontMatter(string(raw))
	var meta frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Page{}, fmt.Errorf("parse front matter: %w", err)
		}
	}

	var html bytes.Buffer
	if err := md.Convert([]byte(body), &html); err != nil {
		return Page{}, err
	}

	return Page{
		Lang:      lang,
		Title:     strings.TrimSpace(meta.Title),
		HomeLabel: strings.TrimSpace(meta.Home),
		Body:      template.HTML(policy.SanitizeBytes(html.Bytes())),
	}, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
