package lifecycle

import (
	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	model "taskhero.com/taskhero/internal/models"
)

var ErrNotTasker = apperrors.Forbidden("Only the tasker with the accepted offer can perform this action")

// AuthorizeTaskMutation guards update and delete. Tasks are matched on owner;
// a task without an owner can only be changed by an anonymous caller. A
// mismatch looks like a missing task.
func AuthorizeTaskMutation(task *model.Task, caller identity.Caller) error {
	if !task.OwnedBy(caller.ID) {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// AuthorizeTaskerAction guards complete and decline. accepted is the
// caller's accepted offer on the task, or nil.
func AuthorizeTaskerAction(task *model.Task, accepted *model.Offer, caller identity.Caller) error {
	if caller.IsAnonymous() {
		return apperrors.ErrAuthenticationNeeded
	}
	if accepted == nil || accepted.TaskID != task.ID || accepted.UserID != caller.ID ||
		accepted.Status != constants.OfferAccepted {
		return ErrNotTasker
	}
	if task.Status != constants.TaskInProgress {
		return apperrors.ErrTaskNotInProgress
	}
	return nil
}

func isTaskOwner(task *model.Task, caller identity.Caller) bool {
	return !caller.IsAnonymous() && task.UserID != nil && *task.UserID == caller.ID
}
