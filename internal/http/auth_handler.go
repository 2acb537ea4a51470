package http

import (
	"github.com/labstack/echo/v4"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
	middleware "taskhero.com/taskhero/internal/http/middlewares"
	"taskhero.com/taskhero/internal/http/validators"
)

func (h *Handler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateSignupRequest(&req); err != nil {
		return err
	}

	res, err := h.auth.SignUp(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}
	return created(c, res, "User created successfully")
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return withMessage(c, res, "Login successful")
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
		return err
	}
	return withMessage(c, nil, "Logout successful")
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateResetPasswordRequest(&req); err != nil {
		return err
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return withMessage(c, nil, "If an account exists with this email, a password reset link has been sent")
}

// UpdatePassword takes the recovery token as its bearer credential, so it
// sits outside the auth middleware.
func (h *Handler) UpdatePassword(c echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdatePasswordRequest(&req); err != nil {
		return err
	}

	token := middleware.BearerToken(c.Request())
	if token == "" {
		return apperrors.ErrNoToken
	}

	if err := h.auth.UpdatePassword(c.Request().Context(), token, req.Password); err != nil {
		return err
	}
	return withMessage(c, nil, "Password updated successfully")
}

func (h *Handler) RefreshToken(c echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateRefreshTokenRequest(&req); err != nil {
		return err
	}

	session, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return ok(c, session)
}

func (h *Handler) Profile(c echo.Context) error {
	user, err := h.auth.Profile(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return ok(c, user)
}
