package http

import (
	"github.com/labstack/echo/v4"

	middleware "taskhero.com/taskhero/internal/http/middlewares"
)

func (h *Handler) Dashboard(c echo.Context) error {
	board, err := h.dashboard.Dashboard(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return ok(c, board)
}
