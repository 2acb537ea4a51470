package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/http/validators"
	repository "taskhero.com/taskhero/internal/repositories"
)

func (h *Handler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{Query: strings.TrimSpace(c.QueryParam("q"))}
	if v := c.QueryParam("status"); v != "" {
		status, err := validators.ParseTaskStatus(v)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return list(c, tasks)
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	tasks, err := h.tasks.ListMyTasks(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return list(c, tasks)
}

func (h *Handler) TaskStats(c echo.Context) error {
	stats, err := h.tasks.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return err
	}
	return created(c, task, "")
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	var req dto.UpdateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patch, err := validators.ValidateUpdateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), middleware.CallerFrom(c), id, patch)
	if err != nil {
		return err
	}
	return ok(c, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), middleware.CallerFrom(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	task, err := h.tasks.CompleteTask(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return withMessage(c, task, "Task marked as completed")
}

func (h *Handler) DeclineTask(c echo.Context) error {
	task, err := h.tasks.DeclineTask(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return withMessage(c, task, "Task declined and reopened for offers")
}
