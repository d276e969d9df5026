// Package templates renders the HTML pages of the catalog.
package templates

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/bookshelf-app/bookshelf/pkg/notice"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed views/*.html
var views embed.FS

const layoutFile = "views/layout.html"

// Page is what every template receives. Data holds the page-specific values.
type Page struct {
	Title  string
	Notice *notice.Notice
	Data   interface{}
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout so pages can all define "content".
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"ratingLabel": ratingLabel,
	"ratings":     ratings,
	"hasRating":   hasRating,
}

func New() (*Renderer, error) {
	files, err := fs.Glob(views, "views/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	layout, err := template.New("base").Funcs(funcs).ParseFS(views, layoutFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		clone, err := layout.Clone()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		page, err := clone.ParseFS(views, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", file)
		}
		r.pages[strings.TrimPrefix(file, "views/")] = page
	}
	return r, nil
}

// Render executes the named page. Data that isn't already a Page is wrapped in
// one, and the pending notice for the client is attached.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %q", name)
	}

	page, ok := data.(Page)
	if !ok {
		page = Page{Data: data}
	}
	if page.Notice == nil && c != nil {
		page.Notice = notice.Pop(c)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, "layout", page))
}

func ratingLabel(rating *int) string {
	if rating == nil {
		return "Not rated"
	}
	return strconv.Itoa(*rating) + "/" + strconv.Itoa(models.MaxRating)
}

func ratings() []int {
	out := make([]int, 0, models.MaxRating-models.MinRating+1)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		out = append(out, r)
	}
	return out
}

func hasRating(rating *int, value int) bool {
	return rating != nil && *rating == value
}
