package errors

import "net/http"

func Conflict(message string) *Exception {
	return newException(KindConflict, http.StatusConflict, message)
}

var (
	ErrDuplicateOffer = Conflict("You have already made an offer on this task. Please update your existing offer instead.")
	ErrEmailTaken     = Conflict("User with this email already exists")
)
