package errors

import "net/http"

func NotFound(message string) *Exception {
	return newException(KindNotFound, http.StatusNotFound, message)
}

var (
	ErrTaskNotFound  = NotFound("Task not found")
	ErrOfferNotFound = NotFound("Offer not found")
	ErrUserNotFound  = NotFound("User not found")
)
