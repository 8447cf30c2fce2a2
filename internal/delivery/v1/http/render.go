package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/DRSN-tech/home-store/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const baseTemplate = "templates/base.html"

var pageNames = []string{
	"index", "about", "catalog", "product",
	"login", "registration", "profile", "cart", "error",
}

// Renderer хранит набор страниц. Каждая страница собирается из базового шаблона и своего файла.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"price": domain.FormatPrice,
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, baseTemplate, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render исполняет страницу name. Вывод пишется в w только при успешном исполнении.
func (r *Renderer) Render(w io.Writer, name string, data map[string]any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
