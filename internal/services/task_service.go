package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	"taskhero.com/taskhero/internal/lifecycle"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
)

type TaskService struct {
	store *repository.Store
}

// TaskInput holds the fields a caller may set when posting a task. Status is
// not among them: new tasks always start pending.
type TaskInput struct {
	Title           string
	Description     string
	DateType        constants.DateType
	TaskDate        *time.Time
	LocationAddress *string
	LocationLat     *float64
	LocationLng     *float64
	BudgetMin       *float64
	BudgetMax       *float64
	BudgetCurrency  string
}

// TaskPatch maps column names to new values. A nil value clears a nullable
// column.
type TaskPatch map[string]any

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) CreateTask(ctx context.Context, caller identity.Caller, in TaskInput) (*model.Task, error) {
	task := &model.Task{
		Title:           in.Title,
		Description:     in.Description,
		DateType:        in.DateType,
		TaskDate:        in.TaskDate,
		LocationAddress: in.LocationAddress,
		LocationLat:     in.LocationLat,
		LocationLng:     in.LocationLng,
		BudgetMin:       in.BudgetMin,
		BudgetMax:       in.BudgetMax,
		BudgetCurrency:  in.BudgetCurrency,
	}
	if task.BudgetCurrency == "" {
		task.BudgetCurrency = constants.DefaultCurrency
	}
	if !caller.IsAnonymous() {
		owner := caller.ID
		task.UserID = &owner
	}

	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, storeError("create task", err, nil)
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("fetch task", err, apperrors.ErrTaskNotFound)
	}

	tasks := []model.Task{*task}
	if err := s.store.Tasks.AttachOfferCounts(ctx, tasks); err != nil {
		return nil, storeError("count offers", err, nil)
	}
	return &tasks[0], nil
}

// ListTasks returns every task matching filter. Tasks are readable by
// anyone.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.store.Tasks.List(ctx, filter)
	if err != nil {
		return nil, storeError("fetch tasks", err, nil)
	}
	if err := s.store.Tasks.AttachOfferCounts(ctx, tasks); err != nil {
		return nil, storeError("count offers", err, nil)
	}
	return tasks, nil
}

func (s *TaskService) ListMyTasks(ctx context.Context, caller identity.Caller) ([]model.Task, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrAuthenticationNeeded
	}
	return s.ListTasks(ctx, repository.TaskFilter{OwnerID: caller.ID})
}

func (s *TaskService) Stats(ctx context.Context) (model.TaskStats, error) {
	stats, err := s.store.Tasks.Stats(ctx)
	if err != nil {
		return model.TaskStats{}, storeError("compute task stats", err, nil)
	}
	return stats, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, caller identity.Caller, id string, patch TaskPatch) (*model.Task, error) {
	task, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if len(patch) == 0 {
		return task, nil
	}

	fields := make(map[string]any, len(patch))
	for k, v := range patch {
		fields[k] = v
	}

	updated, err := s.store.Tasks.Update(ctx, task, fields)
	if err != nil {
		return nil, storeError("update task", err, apperrors.ErrTaskNotFound)
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, caller identity.Caller, id string) error {
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return err
	}

	if err := s.store.Tasks.Delete(ctx, id); err != nil {
		return storeError("delete task", err, apperrors.ErrTaskNotFound)
	}
	return nil
}

// CompleteTask moves an in-progress task to completed on behalf of the
// tasker whose offer was accepted.
func (s *TaskService) CompleteTask(ctx context.Context, caller identity.Caller, id string) (*model.Task, error) {
	task, _, err := s.loadTaskerAction(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Tasks.Update(ctx, task, map[string]any{
		"status": constants.TaskCompleted,
	})
	if err != nil {
		return nil, storeError("complete task", err, apperrors.ErrTaskNotFound)
	}

	return updated, nil
}

// DeclineTask hands an in-progress task back to the marketplace: the task
// returns to pending and the tasker's accepted offer becomes withdrawn.
func (s *TaskService) DeclineTask(ctx context.Context, caller identity.Caller, id string) (*model.Task, error) {
	task, accepted, err := s.loadTaskerAction(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var updated *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Offers.Update(ctx, accepted, map[string]any{
			"status": constants.OfferWithdrawn,
		}); err != nil {
			return err
		}

		var err error
		updated, err = tx.Tasks.Update(ctx, task, map[string]any{
			"status": constants.TaskPending,
		})
		return err
	})
	if err != nil {
		return nil, storeError("decline task", err, apperrors.ErrTaskNotFound)
	}
	return updated, nil
}

func (s *TaskService) loadTaskerAction(ctx context.Context, caller identity.Caller, id string) (*model.Task, *model.Offer, error) {
	if caller.IsAnonymous() {
		return nil, nil, apperrors.ErrAuthenticationNeeded
	}

	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, nil, storeError("fetch task", err, apperrors.ErrTaskNotFound)
	}

	accepted, err := s.store.Offers.FindAccepted(ctx, task.ID, caller.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, storeError("fetch offer", err, nil)
	}

	if err := lifecycle.AuthorizeTaskerAction(task, accepted, caller); err != nil {
		return nil, nil, err
	}
	return task, accepted, nil
}

func (s *TaskService) findOwned(ctx context.Context, caller identity.Caller, id string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("fetch task", err, apperrors.ErrTaskNotFound)
	}
	if err := lifecycle.AuthorizeTaskMutation(task, caller); err != nil {
		return nil, err
	}
	return task, nil
}
