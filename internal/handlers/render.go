package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"marketadmin/internal/flash"
	"marketadmin/internal/models"
	"marketadmin/internal/session"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// CSRFContextKey is where the echo CSRF middleware stores the form token
const CSRFContextKey = "csrf"

// PageData is passed to every page template
type PageData struct {
	Title     string
	Section   string
	Session   *session.Session
	CSRFToken string
	Flashes   []flash.Message
	Data      any

	// Stale is set when a refetch failed and Data is the last good snapshot
	Stale bool
	// LoadError is set when a read failed and there is nothing to show
	LoadError string
}

// Renderer executes page templates inside the base layout
type Renderer struct {
	templates map[string]*template.Template
}

var funcMap = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02 Jan 2006")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02 Jan 2006 15:04")
	},
	"money": func(v float64) string {
		return fmt.Sprintf("₹%.2f", v)
	},
	"rupees": func(v int64) string {
		return fmt.Sprintf("₹%d", v)
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"nextStatus": func(status string) string {
		next, _ := models.NextOrderStatus(status)
		return next
	},
	"orderStatuses": func() []string {
		return []string{
			models.OrderStatusPending,
			models.OrderStatusProcessing,
			models.OrderStatusShipped,
			models.OrderStatusDelivered,
			models.OrderStatusCancelled,
		}
	},
	"active": func(current, target string) string {
		if current == target {
			return "active"
		}
		return ""
	},
}

// NewRenderer parses every page template together with the base layout
func NewRenderer() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	if page, ok := data.(*PageData); ok {
		if token, ok := c.Get(CSRFContextKey).(string); ok {
			page.CSRFToken = token
		}
		if page.Session == nil {
			page.Session, _ = session.FromContext(c.Request().Context())
		}
		page.Flashes = append(flash.Pop(c.Response(), c.Request()), page.Flashes...)
	}

	return tmpl.ExecuteTemplate(w, "base.html", data)
}
