package errors

import "net/http"

func Forbidden(message string) *Exception {
	return newException(KindForbidden, http.StatusForbidden, message)
}
