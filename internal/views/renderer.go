package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer рисует страницы из встроенных шаблонов. Подключается через e.Renderer.
type Renderer struct {
	templates *template.Template
}

var funcs = template.FuncMap{
	"sortIcon": func(direction string) string {
		switch direction {
		case "asc":
			return "▲"
		case "desc":
			return "▼"
		}
		return "↕"
	},
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
