package recommend

import (
	"github.com/bookshelf-app/bookshelf/pkg/books"
	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	var client Client
	if cfg.RecommendationsEnabled() {
		client = NewHTTPClient(cfg)
	}

	h := &handler{
		recommendService: NewService(books.NewService(db), client),
	}

	e.GET("/recommendations", h.show)
}
