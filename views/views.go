package views

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/russross/blackfriday/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"home.html",
	"detail.html",
	"create.html",
	"edit.html",
	"about.html",
	"contact.html",
	"error.html",
}

// Registry holds the parsed view templates, one entry per page, each paired
// with the shared layout.
type Registry struct {
	templates map[string]*template.Template
}

func New() *Registry {
	funcs := template.FuncMap{
		"markdown": markdown,
		"shortDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(
			template.New(page).Funcs(funcs).ParseFS(templateFS,
				"templates/layout.html",
				"templates/"+page,
			))
	}

	return &Registry{templates: templates}
}

// markdown renders a post body to HTML. Bodies are authored by the blog
// owner, not by anonymous visitors, so the rendered output is trusted.
func markdown(s string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(s)))
}

// Render writes the named page with the given status. The page is executed
// into a buffer first so a template failure can still become a clean 500.
func (v *Registry) Render(w http.ResponseWriter, status int, page string, data map[string]any) {
	tmpl, ok := v.templates[page]
	if !ok {
		// Plain-text fallback so a broken view cannot recurse through the
		// error view.
		logAndFail(w, errors.New("unknown template "+page))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logAndFail(w, errors.Wrap(err, "executing template "+page))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

// RenderError writes the generic error view with the given message.
func (v *Registry) RenderError(w http.ResponseWriter, status int, message string) {
	v.Render(w, status, "error.html", map[string]any{
		"Title":   "Error",
		"Message": message,
	})
}

// HttpError logs the underlying failure and responds with the error view.
func (v *Registry) HttpError(w http.ResponseWriter, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	v.RenderError(w, status, message)
}

func logAndFail(w http.ResponseWriter, err error) {
	log.Printf("HTTP %d - render failed: %v", http.StatusInternalServerError, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
