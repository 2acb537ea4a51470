package errors

import "net/http"

func InvalidState(message string) *Exception {
	return newException(KindInvalidState, http.StatusBadRequest, message)
}

var (
	ErrOwnTaskOffer       = InvalidState("You cannot make an offer on your own task")
	ErrTaskNotAccepting   = InvalidState("This task is no longer accepting offers")
	ErrOfferNotPending    = InvalidState("You can only update pending offers")
	ErrOfferNotDeletable  = InvalidState("You can only delete pending offers")
	ErrTaskNotInProgress  = InvalidState("Task is not in progress")
	ErrOfferNotAcceptable = InvalidState("Only pending offers can be accepted or rejected")
)
