package renderer

import (
	"html/template"

	"github.com/unrolled/render"
)

// New returns the renderer for JSON responses and the server rendered
// pages under templatesDir. A missing directory only disables HTML.
func New(templatesDir string, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     templatesDir,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: development,
		Funcs: []template.FuncMap{
			{
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
