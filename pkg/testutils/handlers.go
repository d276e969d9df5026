package testutils

import (
	"net/http"

	"github.com/bookshelf-app/bookshelf/pkg/seed"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// seedRequest is the request body for loading the sample catalog.
type seedRequest struct {
	WithRatings bool `json:"with_ratings"`
	Preserve    bool `json:"preserve"`
}

// seedResponse is the response body for loading the sample catalog.
type seedResponse struct {
	Authors int `json:"authors"`
	Books   int `json:"books"`
	Rated   int `json:"rated"`
	Skipped int `json:"skipped"`
}

// seedCatalog loads the sample catalog, clearing the existing one unless asked
// not to.
// POST /test/catalog.
func (h *handler) seedCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	req := seedRequest{}
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	if !req.Preserve {
		if err := seed.Clear(ctx, h.db); err != nil {
			return errors.Wrap(err, "failed to clear catalog")
		}
	}

	result, err := seed.Run(ctx, h.db, seed.Catalog, seed.Options{WithRatings: req.WithRatings})
	if err != nil {
		return errors.Wrap(err, "failed to seed catalog")
	}

	return errors.WithStack(c.JSON(http.StatusCreated, seedResponse{
		Authors: result.Authors,
		Books:   result.Books,
		Rated:   result.Rated,
		Skipped: result.Skipped,
	}))
}

// clearCatalog deletes every author and book.
// DELETE /test/catalog.
func (h *handler) clearCatalog(c echo.Context) error {
	if err := seed.Clear(c.Request().Context(), h.db); err != nil {
		return errors.Wrap(err, "failed to clear catalog")
	}
	return c.NoContent(http.StatusNoContent)
}
