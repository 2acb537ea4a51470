package validators

import (
	"regexp"
	"strings"
	"unicode"

	dto "taskhero.com/taskhero/internal/data_models"
	apperrors "taskhero.com/taskhero/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateSignupRequest(r *dto.SignupRequest) error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return apperrors.Validation("Password is required")
	}
	return nil
}

func ValidateResetPasswordRequest(r *dto.ResetPasswordRequest) error {
	return validateEmail(r.Email)
}

func ValidateUpdatePasswordRequest(r *dto.UpdatePasswordRequest) error {
	return validatePassword(r.Password)
}

func ValidateRefreshTokenRequest(r *dto.RefreshTokenRequest) error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return apperrors.Validation("Refresh token is required")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.Validation("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperrors.Validation("Invalid email format")
	}
	return nil
}

// validatePassword requires eight characters with at least one upper case
// letter, one lower case letter and one digit.
func validatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return apperrors.Validation("Password must be at least 8 characters")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return apperrors.Validation("Password must contain at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
}
