package recommend

import (
	"net/http"

	"github.com/bookshelf-app/bookshelf/pkg/templates"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	recommendService *Service
}

func (h *handler) show(c echo.Context) error {
	result := h.recommendService.Recommend(c.Request().Context())

	return errors.WithStack(c.Render(http.StatusOK, "recommendations.html", templates.Page{
		Title: "Recommendations",
		Data:  result,
	}))
}
