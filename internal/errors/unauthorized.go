package errors

import "net/http"

func Unauthorized(message string) *Exception {
	return newException(KindUnauthorized, http.StatusUnauthorized, message)
}

var (
	ErrNoToken              = Unauthorized("No token provided")
	ErrInvalidToken         = Unauthorized("Invalid or expired token")
	ErrAuthenticationNeeded = Unauthorized("Authentication required")
	ErrInvalidCredentials   = Unauthorized("Invalid email or password")
	ErrInvalidRefreshToken  = Unauthorized("Invalid refresh token")
	ErrInvalidRecoveryToken = Unauthorized("Invalid or expired reset token. Please request a new password reset.")
)
