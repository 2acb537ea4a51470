package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	model "taskhero.com/taskhero/internal/models"
)

type Dashboard struct {
	Tasks  []model.Task          `json:"tasks"`
	Offers []model.OfferWithTask `json:"offers"`
}

type DashboardService struct {
	tasks  *TaskService
	offers *OfferService
}

func NewDashboardService(tasks *TaskService, offers *OfferService) *DashboardService {
	return &DashboardService{tasks: tasks, offers: offers}
}

// Dashboard loads the caller's tasks and offers concurrently.
func (s *DashboardService) Dashboard(ctx context.Context, caller identity.Caller) (*Dashboard, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}

	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := s.tasks.ListMyTasks(gctx, caller)
		out.Tasks = tasks
		return err
	})
	g.Go(func() error {
		offers, err := s.offers.ListMyOffers(gctx, caller)
		out.Offers = offers
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
