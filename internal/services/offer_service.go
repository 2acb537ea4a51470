package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	"taskhero.com/taskhero/internal/lifecycle"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
)

type OfferService struct {
	store *repository.Store
}

type OfferInput struct {
	TaskID   string
	Amount   float64
	Currency string
	Message  *string
}

func NewOfferService(store *repository.Store) *OfferService {
	return &OfferService{store: store}
}

// ListOffersForTask is public: anyone may see the bids on a task.
func (s *OfferService) ListOffersForTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, storeError("fetch task", err, apperrors.ErrTaskNotFound)
	}

	offers, err := s.store.Offers.ListByTask(ctx, taskID)
	if err != nil {
		return nil, storeError("fetch offers", err, nil)
	}
	return offers, nil
}

func (s *OfferService) ListMyOffers(ctx context.Context, caller identity.Caller) ([]model.OfferWithTask, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}

	offers, err := s.store.Offers.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, storeError("fetch offers", err, nil)
	}

	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.TaskID)
	}
	tasks, err := s.store.Tasks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("fetch tasks", err, nil)
	}

	summaries := make(map[string]model.TaskSummary, len(tasks))
	for i := range tasks {
		summaries[tasks[i].ID] = tasks[i].Summary()
	}

	out := make([]model.OfferWithTask, 0, len(offers))
	for _, o := range offers {
		row := model.OfferWithTask{Offer: o}
		if summary, ok := summaries[o.TaskID]; ok {
			row.Task = &summary
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *OfferService) GetOffer(ctx context.Context, caller identity.Caller, id string) (*model.Offer, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}

	offer, task, err := s.loadOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.AuthorizeOfferView(offer, task, caller); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) CreateOffer(ctx context.Context, caller identity.Caller, in OfferInput) (*model.Offer, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}

	task, err := s.store.Tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, storeError("fetch task", err, apperrors.ErrTaskNotFound)
	}

	if err := lifecycle.AuthorizeOfferCreate(task, caller); err != nil {
		return nil, err
	}

	exists, err := s.store.Offers.ExistsForUser(ctx, task.ID, caller.ID)
	if err != nil {
		return nil, storeError("check existing offer", err, nil)
	}
	if exists {
		return nil, apperrors.ErrDuplicateOffer
	}

	offer := &model.Offer{
		TaskID:   task.ID,
		UserID:   caller.ID,
		Amount:   in.Amount,
		Currency: in.Currency,
		Message:  in.Message,
	}
	if offer.Currency == "" {
		offer.Currency = constants.DefaultCurrency
	}

	if err := s.store.Offers.Create(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateOffer
		}
		return nil, storeError("create offer", err, nil)
	}
	return offer, nil
}

// UpdateOffer applies an author edit or a task owner decision. Accepting an
// offer moves the task to in_progress in the same transaction, then rejects
// the other pending offers on the task. A failure of that last step is
// logged and does not fail the accept.
func (s *OfferService) UpdateOffer(ctx context.Context, caller identity.Caller, id string, patch lifecycle.OfferPatch) (*model.Offer, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}

	offer, task, err := s.loadOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := lifecycle.PlanOfferUpdate(offer, task, caller, patch)
	if err != nil {
		return nil, err
	}

	if !plan.Accept {
		updated, err := s.store.Offers.Update(ctx, offer, plan.Fields)
		if err != nil {
			return nil, storeError("update offer", err, apperrors.ErrOfferNotFound)
		}
		return updated, nil
	}

	var updated *model.Offer
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if updated, err = tx.Offers.Update(ctx, offer, plan.Fields); err != nil {
			return err
		}
		_, err = tx.Tasks.Update(ctx, task, map[string]any{
			"status": constants.TaskInProgress,
		})
		return err
	})
	if err != nil {
		return nil, storeError("accept offer", err, apperrors.ErrOfferNotFound)
	}

	s.rejectSiblings(context.WithoutCancel(ctx), updated)
	return updated, nil
}

func (s *OfferService) rejectSiblings(ctx context.Context, accepted *model.Offer) {
	n, err := s.store.Offers.RejectPendingExcept(ctx, accepted.TaskID, accepted.ID)
	if err != nil {
		log.Printf("offers: rejecting siblings of accepted offer %s on task %s failed: %v", accepted.ID, accepted.TaskID, err)
		return
	}
	if n > 0 {
		log.Printf("offers: accepted %s on task %s, rejected %d competing offers", accepted.ID, accepted.TaskID, n)
	}
}

// DeleteOffer withdraws a pending offer by removing it.
func (s *OfferService) DeleteOffer(ctx context.Context, caller identity.Caller, id string) error {
	if caller.IsAnonymous() {
		return apperrors.ErrAuthenticationNeeded
	}

	offer, err := s.store.Offers.FindByID(ctx, id)
	if err != nil {
		return storeError("fetch offer", err, apperrors.ErrOfferNotFound)
	}

	if err := lifecycle.AuthorizeOfferDelete(offer, caller); err != nil {
		return err
	}

	if err := s.store.Offers.Delete(ctx, offer); err != nil {
		return storeError("delete offer", err, apperrors.ErrOfferNotFound)
	}
	return nil
}

// loadOffer returns the offer and its task. An orphaned offer comes back
// with an ownerless placeholder task.
func (s *OfferService) loadOffer(ctx context.Context, id string) (*model.Offer, *model.Task, error) {
	offer, err := s.store.Offers.FindByID(ctx, id)
	if err != nil {
		return nil, nil, storeError("fetch offer", err, apperrors.ErrOfferNotFound)
	}

	task, err := s.store.Tasks.FindByID(ctx, offer.TaskID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, storeError("fetch task", err, nil)
		}
		task = &model.Task{ID: offer.TaskID}
	}
	return offer, task, nil
}
