package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/http/validators"
)

func (h *Handler) ListTaskOffers(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return apperrors.ErrTaskIDRequired
	}

	offers, err := h.offers.ListOffersForTask(c.Request().Context(), taskID)
	if err != nil {
		return err
	}
	return list(c, offers)
}

func (h *Handler) ListMyOffers(c echo.Context) error {
	offers, err := h.offers.ListMyOffers(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return list(c, offers)
}

func (h *Handler) GetOffer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrOfferIDRequired
	}

	offer, err := h.offers.GetOffer(c.Request().Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return err
	}
	return ok(c, offer)
}

func (h *Handler) CreateOffer(c echo.Context) error {
	var req dto.CreateOfferRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	in, err := validators.ValidateCreateOfferRequest(&req)
	if err != nil {
		return err
	}

	offer, err := h.offers.CreateOffer(c.Request().Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return err
	}
	return created(c, offer, "Offer created successfully")
}

func (h *Handler) UpdateOffer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrOfferIDRequired
	}

	var req dto.UpdateOfferRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patch, err := validators.ValidateUpdateOfferRequest(&req)
	if err != nil {
		return err
	}

	offer, err := h.offers.UpdateOffer(c.Request().Context(), middleware.CallerFrom(c), id, patch)
	if err != nil {
		return err
	}
	return withMessage(c, offer, "Offer updated successfully")
}

func (h *Handler) DeleteOffer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrOfferIDRequired
	}

	if err := h.offers.DeleteOffer(c.Request().Context(), middleware.CallerFrom(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
