package http

import (
	"context"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/services"
)

// Pinger is a dependency the health endpoint checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	tasks     *services.TaskService
	offers    *services.OfferService
	auth      *services.AuthService
	dashboard *services.DashboardService
	checks    map[string]Pinger
}

func NewHandler(
	tasks *services.TaskService,
	offers *services.OfferService,
	auth *services.AuthService,
	dashboard *services.DashboardService,
	checks map[string]Pinger,
) *Handler {
	return &Handler{
		tasks:     tasks,
		offers:    offers,
		auth:      auth,
		dashboard: dashboard,
		checks:    checks,
	}
}

// bindBody decodes the JSON body only, leaving path and query values out of
// the request structs.
func bindBody(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return apperrors.ErrInvalidJSON
	}
	return nil
}
