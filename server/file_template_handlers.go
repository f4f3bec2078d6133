package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/csrf"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	layoutTemplate  = "layout.html"
	contentTypeHTML = "text/html; charset=utf-8"
)

// API timestamps arrive in several shapes
var apiTimeLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

var templateFuncs = template.FuncMap{
	"humanTime":      humanize.Time,
	"formatDate":     func(v string) string { return formatAPITime(v, "Mon 2 Jan 2006") },
	"formatDateTime": func(v string) string { return formatAPITime(v, "Mon 2 Jan 2006 15:04") },
	"markdown":       renderMarkdown,
}

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParsePage parses the layout together with the named page, which defines "content"
func ParsePage(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

// parsePages parses every page in the embedded filesystem, keyed by file name
func parsePages() (map[string]*template.Template, error) {
	names, err := fs.Glob(TemplateFilesFS(), "*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := ParsePage(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[path.Base(name)] = tmpl
	}
	return pages, nil
}

// PageData is what the layout sees. Content is the page's own data.
type PageData struct {
	AppName       string
	Title         string
	Path          string
	Session       sessions.Session
	Authenticated bool
	Error         string
	Message       string
	CSRFField     template.HTML
	CSRFToken     string
	Content       any
}

// render executes page into a buffer so a template error never leaves a half-written response
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	session := sessionFromContext(r.Context())
	data := PageData{
		AppName:       s.appName,
		Title:         title,
		Path:          r.URL.Path,
		Session:       session,
		Authenticated: session.Authenticated(),
		Error:         r.URL.Query().Get("error"),
		Message:       r.URL.Query().Get("message"),
		Content:       content,
	}
	if s.csrfProtect != nil {
		data.CSRFField = csrf.TemplateField(r)
		data.CSRFToken = csrf.Token(r)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formatAPITime(value, layout string) string {
	value = strings.TrimSpace(value)
	for _, l := range apiTimeLayouts {
		if t, err := time.Parse(l, value); err == nil {
			return t.Format(layout)
		}
	}
	return value
}

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
