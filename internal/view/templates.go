package view

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/web"
)

// Dash is the placeholder shown for missing values.
const Dash = "—"

// NavItem is one entry of the side navigation.
type NavItem struct {
	Title string
	Path  string
}

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	nav       []NavItem
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Nav         []NavItem
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"dash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return Dash
			}
			return s
		},
		"active": func(current, path string) bool {
			return current == path || strings.HasPrefix(current, path+"/")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// SetNav installs the navigation shown on every page.
func (e *Engine) SetNav(items []NavItem) {
	e.nav = items
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	if data.Nav == nil {
		data.Nav = e.nav
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// Page renders name for r with the session's CSRF token and pending notice.
func (e *Engine) Page(w http.ResponseWriter, r *http.Request, csrf *shared.CSRFManager, name, title string, status int, data any) error {
	sess := shared.SessionFromContext(r.Context())
	var token string
	if csrf != nil {
		token, _ = csrf.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	if status != 0 && status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	return e.Render(w, name, TemplateData{
		Title:       title,
		CSRFToken:   token,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	})
}
