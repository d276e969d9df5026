package books

import (
	"github.com/bookshelf-app/bookshelf/pkg/authors"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the catalog index at "/" and the book routes under
// "/books".
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		bookService:   NewService(db),
		authorService: authors.NewService(db),
	}

	e.GET("/", h.index)

	g := e.Group("/books")
	g.GET("/new", h.newForm)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.POST("/:id/delete", h.deleteBook)
	g.POST("/:id/rate", h.rate)
}
