package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bookshelf-app/bookshelf/pkg/authors"
	"github.com/bookshelf-app/bookshelf/pkg/binder"
	"github.com/bookshelf-app/bookshelf/pkg/books"
	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/recommend"
	"github.com/bookshelf-app/bookshelf/pkg/templates"
	"github.com/bookshelf-app/bookshelf/pkg/testutils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(cfg, db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	r, err := templates.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Renderer = r

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.Secure())

	health.RegisterRoutes(e)

	books.RegisterRoutes(e, db)
	authors.RegisterRoutesWithGroup(e.Group("/authors"), db)
	recommend.RegisterRoutes(e, db, cfg)

	if cfg.Environment == "test" {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
