package goresto

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type viewData struct {
	User        *User
	Flash       string
	Error       string
	Restaurants []Restaurant
	Query       string
}

type Views struct {
	templates *template.Template
}

func NewViews() *Views {
	return &Views{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (v *Views) render(w http.ResponseWriter, name string, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
