package authors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/notice"
	"github.com/bookshelf-app/bookshelf/pkg/templates"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	glog "github.com/robinjoseph08/golib/logger"
)

const dateLayout = "2006-01-02"

type handler struct {
	authorService *Service
}

func (h *handler) newForm(c echo.Context) error {
	return errors.WithStack(c.Render(http.StatusOK, "author_new.html", templates.Page{Title: "Add author"}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return notice.Failure(c, "/authors/new", err)
	}

	author, err := h.authorService.CreateAuthor(ctx, CreateAuthorOptions{
		Name:        params.Name,
		BirthDate:   parseDate(c, "birth_date", params.BirthDate),
		DateOfDeath: parseDate(c, "date_of_death", params.DateOfDeath),
	})
	if err != nil {
		return notice.Failure(c, "/authors/new", err)
	}

	return notice.Success(c, fmt.Sprintf("/authors/%d", author.ID), fmt.Sprintf("Author %q added.", author.Name))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{
		ID:           &id,
		IncludeBooks: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "author.html", templates.Page{
		Title: author.Name,
		Data:  author,
	}))
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notice.Failure(c, "/", errcodes.NotFound("Author"))
	}

	author, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return notice.Failure(c, "/", err)
	}

	if _, err := h.authorService.DeleteAuthor(ctx, id); err != nil {
		return notice.Failure(c, fmt.Sprintf("/authors/%d", id), err)
	}

	return notice.Success(c, "/", fmt.Sprintf("Author %q and their books were deleted.", author.Name))
}

// parseDate reads a YYYY-MM-DD value. Blank and unparseable values both mean
// the date is unknown.
func parseDate(c echo.Context, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		logger.FromEchoContext(c).Warn("ignoring invalid date", glog.Data{"field": field, "value": value})
		return nil
	}
	return &t
}
