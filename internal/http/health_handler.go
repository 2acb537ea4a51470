package http

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

type healthReport struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health reports "degraded" when any dependency fails its ping. The status
// code stays 200 either way.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := healthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			log.Printf("health: %s: %v", name, err)
			report.Services[name] = "disconnected"
			report.Status = "degraded"
			continue
		}
		report.Services[name] = "connected"
	}

	return c.JSON(http.StatusOK, report)
}
