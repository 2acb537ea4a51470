package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskhero.com/taskhero/internal/errors"
)

// ErrorHandler renders every error as {"status":"error","message":...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.Exception
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.StatusCode, appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	if status >= http.StatusInternalServerError {
		log.Printf("http: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorBody{Status: "error", Message: message})
	}
	if err != nil {
		log.Printf("http: write error response: %v", err)
	}
}
