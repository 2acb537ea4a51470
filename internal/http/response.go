package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Status: "success", Data: data})
}

func created(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusCreated, envelope{Status: "success", Data: data, Message: message})
}

func list[T any](c echo.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.JSON(http.StatusOK, envelope{Status: "success", Data: items, Count: &n})
}

func withMessage(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, envelope{Status: "success", Data: data, Message: message})
}
