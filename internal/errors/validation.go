package errors

import "net/http"

func Validation(message string) *Exception {
	return newException(KindValidation, http.StatusBadRequest, message)
}

var ErrInvalidJSON = Validation("invalid JSON payload")
