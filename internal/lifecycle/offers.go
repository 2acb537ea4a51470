package lifecycle

import (
	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	model "taskhero.com/taskhero/internal/models"
)

var (
	ErrViewOffer        = apperrors.Forbidden("You don't have permission to view this offer")
	ErrUpdateOffer      = apperrors.Forbidden("You don't have permission to update this offer")
	ErrStatusOwnerOnly  = apperrors.Forbidden("Only the task owner can change the offer status")
	ErrStatusOnly       = apperrors.Forbidden("You can only update the offer status")
	ErrTermsAuthorOnly  = apperrors.Forbidden("Only the offer owner can change the amount or message")
	ErrOwnerStatusRange = apperrors.Forbidden("The task owner can only accept or reject offers")
	ErrDeleteOffer      = apperrors.Forbidden("You can only delete your own offers")
)

// OfferPatch carries the fields a caller asked to change; nil means untouched.
type OfferPatch struct {
	Amount  *float64
	Message *string
	Status  *constants.OfferStatus
}

// OfferUpdatePlan is the write a permitted update turns into.
type OfferUpdatePlan struct {
	Fields map[string]any
	// Accept is set when the offer becomes accepted and the task cascade
	// must follow.
	Accept bool
}

func AuthorizeOfferCreate(task *model.Task, caller identity.Caller) error {
	if caller.IsAnonymous() {
		return apperrors.ErrAuthenticationNeeded
	}
	if isTaskOwner(task, caller) {
		return apperrors.ErrOwnTaskOffer
	}
	if task.Status != constants.TaskPending {
		return apperrors.ErrTaskNotAccepting
	}
	return nil
}

func AuthorizeOfferView(offer *model.Offer, task *model.Task, caller identity.Caller) error {
	if caller.IsAnonymous() {
		return apperrors.ErrAuthenticationNeeded
	}
	if offer.UserID == caller.ID || isTaskOwner(task, caller) {
		return nil
	}
	return ErrViewOffer
}

// PlanOfferUpdate resolves the caller's role on the offer and returns the
// permitted write. The offer author edits terms of a pending offer; the task
// owner moves a pending offer to accepted or rejected.
func PlanOfferUpdate(offer *model.Offer, task *model.Task, caller identity.Caller, patch OfferPatch) (OfferUpdatePlan, error) {
	if caller.IsAnonymous() {
		return OfferUpdatePlan{}, apperrors.ErrAuthenticationNeeded
	}

	switch {
	case offer.UserID == caller.ID:
		return planAuthorUpdate(offer, patch)
	case isTaskOwner(task, caller):
		return planOwnerUpdate(offer, task, patch)
	default:
		return OfferUpdatePlan{}, ErrUpdateOffer
	}
}

func planAuthorUpdate(offer *model.Offer, patch OfferPatch) (OfferUpdatePlan, error) {
	if offer.Status != constants.OfferPending {
		return OfferUpdatePlan{}, apperrors.ErrOfferNotPending
	}
	if patch.Status != nil {
		return OfferUpdatePlan{}, ErrStatusOwnerOnly
	}

	fields := map[string]any{}
	if patch.Amount != nil {
		fields["amount"] = *patch.Amount
	}
	if patch.Message != nil {
		fields["message"] = *patch.Message
	}
	return OfferUpdatePlan{Fields: fields}, nil
}

func planOwnerUpdate(offer *model.Offer, task *model.Task, patch OfferPatch) (OfferUpdatePlan, error) {
	if patch.Status == nil {
		return OfferUpdatePlan{}, ErrStatusOnly
	}
	if patch.Amount != nil || patch.Message != nil {
		return OfferUpdatePlan{}, ErrTermsAuthorOnly
	}

	target := *patch.Status
	if target != constants.OfferAccepted && target != constants.OfferRejected {
		return OfferUpdatePlan{}, ErrOwnerStatusRange
	}
	if offer.Status != constants.OfferPending {
		return OfferUpdatePlan{}, apperrors.ErrOfferNotAcceptable
	}
	if target == constants.OfferAccepted && task.Status != constants.TaskPending {
		return OfferUpdatePlan{}, apperrors.ErrTaskNotAccepting
	}

	return OfferUpdatePlan{
		Fields: map[string]any{"status": target},
		Accept: target == constants.OfferAccepted,
	}, nil
}

func AuthorizeOfferDelete(offer *model.Offer, caller identity.Caller) error {
	if caller.IsAnonymous() {
		return apperrors.ErrAuthenticationNeeded
	}
	if offer.UserID != caller.ID {
		return ErrDeleteOffer
	}
	if offer.Status != constants.OfferPending {
		return apperrors.ErrOfferNotDeletable
	}
	return nil
}
