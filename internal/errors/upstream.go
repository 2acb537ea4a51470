package errors

import "net/http"

func Upstream(message string) *Exception {
	return newException(KindUpstreamFailure, http.StatusInternalServerError, message)
}

func TooManyRequests(message string) *Exception {
	return newException(KindTooManyRequests, http.StatusTooManyRequests, message)
}
