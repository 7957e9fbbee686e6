package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"pbihub/domain/session"
	"pbihub/internal/errors"
)

var pages = []string{
	"home.html",
	"lesson.html",
	"datasets.html",
	"quiz.html",
	"quiz_result.html",
	"certificate.html",
	"notes.html",
	"error.html",
}

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"money": func(v float64) string {
		s := fmt.Sprintf("%.2f", v)
		whole, frac := s[:len(s)-3], s[len(s)-3:]
		var b strings.Builder
		for i, c := range whole {
			if i > 0 && (len(whole)-i)%3 == 0 && whole[i-1] != '-' {
				b.WriteByte(',')
			}
			b.WriteRune(c)
		}
		return b.String() + frac
	},
	"num": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
	"accentStyle": func(a session.Accent) template.CSS {
		return template.CSS("--accent: " + a.Hex())
	},
}

// parseTemplates pairs the layout with every page, one template set per page,
// so each page can define its own "content" block.
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("layout.html").Funcs(funcMap).ParseFS(embeddedFiles, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(embeddedFiles, "templates/"+page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		out[page] = clone
	}
	return out, nil
}

// tabLink is one entry of the navigation bar.
type tabLink struct {
	Tab    session.Tab
	Href   string
	Active bool
}

// pageData is what every page template receives.
type pageData struct {
	Title   string
	Session session.Session
	Nav     []tabLink
	Accents []session.Accent
	Flash   string
	Page    interface{}
}

func (a *App) newPage(s session.Session, title string, page interface{}) pageData {
	nav := make([]tabLink, 0, len(session.Tabs()))
	for _, t := range session.Tabs() {
		nav = append(nav, tabLink{Tab: t, Href: hrefFor(t), Active: t == s.Tab})
	}
	return pageData{
		Title:   title,
		Session: s,
		Nav:     nav,
		Accents: session.Accents(),
		Page:    page,
	}
}

// hrefFor maps tabs with their own handlers onto those pages.
func hrefFor(t session.Tab) string {
	switch t {
	case session.TabHome:
		return "/"
	case session.TabDatasets:
		return "/datasets"
	case session.TabQuiz:
		return "/quiz"
	case session.TabCertificate:
		return "/certificate"
	default:
		return "/lessons/" + t.Slug()
	}
}

// renderTemplate executes a page into a buffer first so a template error never
// leaves a half-written response.
func (a *App) renderTemplate(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := a.templates[name]
	if !ok {
		log.Printf("Template error: %s is not registered", name)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("Template error for %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

// renderError shows err on the error page with the status its code maps to.
func (a *App) renderError(w http.ResponseWriter, s session.Session, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[UI] request failed: %v", err)
	}
	a.renderTemplate(w, status, "error.html", a.newPage(s, http.StatusText(status), err.Error()))
}
