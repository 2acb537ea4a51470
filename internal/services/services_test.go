package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskhero.com/taskhero/internal/constants"
	apperrors "taskhero.com/taskhero/internal/errors"
	"taskhero.com/taskhero/internal/identity"
	"taskhero.com/taskhero/internal/lifecycle"
	model "taskhero.com/taskhero/internal/models"
	repository "taskhero.com/taskhero/internal/repositories"
	"taskhero.com/taskhero/internal/testsupport"
)

var (
	u1 = identity.Caller{ID: "11111111-1111-1111-1111-111111111111"}
	u2 = identity.Caller{ID: "22222222-2222-2222-2222-222222222222"}
	u3 = identity.Caller{ID: "33333333-3333-3333-3333-333333333333"}
)

type fixture struct {
	db     *gorm.DB
	store  *repository.Store
	tasks  *TaskService
	offers *OfferService
}

func setup(t *testing.T) *fixture {
	db := testsupport.OpenDB(t)
	store := repository.NewStore(db)
	return &fixture{
		db:     db,
		store:  store,
		tasks:  NewTaskService(store),
		offers: NewOfferService(store),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) postTask(t *testing.T, owner identity.Caller) *model.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), owner, TaskInput{Title: "Fix sink", Description: "leaky"})
	require.NoError(t, err)
	return task
}

func (f *fixture) bid(t *testing.T, caller identity.Caller, taskID string, amount float64) *model.Offer {
	t.Helper()
	offer, err := f.offers.CreateOffer(context.Background(), caller, OfferInput{TaskID: taskID, Amount: amount, Message: ptr("can do")})
	require.NoError(t, err)
	return offer
}

func (f *fixture) accept(t *testing.T, offerID string) *model.Offer {
	t.Helper()
	offer, err := f.offers.UpdateOffer(context.Background(), u1, offerID, lifecycle.OfferPatch{
		Status: ptr(constants.OfferAccepted),
	})
	require.NoError(t, err)
	return offer
}

func TestTaskService_CreateAndGet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	task, err := f.tasks.CreateTask(ctx, u1, TaskInput{
		Title:           "Fix sink",
		Description:     "leaky",
		DateType:        constants.DateBefore,
		TaskDate:        &due,
		LocationAddress: ptr("1 Main St"),
		LocationLat:     ptr(40.7),
		LocationLng:     ptr(-74.0),
		BudgetMin:       ptr(20.0),
		BudgetMax:       ptr(80.0),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, constants.TaskPending, task.Status)
	require.NotNil(t, task.UserID)
	assert.Equal(t, u1.ID, *task.UserID)
	assert.Equal(t, "USD", task.BudgetCurrency)

	fetched, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix sink", fetched.Title)
	assert.Equal(t, "leaky", fetched.Description)
	assert.Equal(t, constants.DateBefore, fetched.DateType)
	assert.True(t, due.Equal(*fetched.TaskDate))
	assert.Equal(t, "1 Main St", *fetched.LocationAddress)
	assert.Equal(t, 40.7, *fetched.LocationLat)
	assert.Equal(t, 80.0, *fetched.BudgetMax)
	assert.Equal(t, constants.TaskPending, fetched.Status)
	require.NotNil(t, fetched.OfferCount)
	assert.Zero(t, *fetched.OfferCount)
}

func TestTaskService_AnonymousTaskHasNoOwner(t *testing.T) {
	f := setup(t)
	task := f.postTask(t, identity.Anonymous())
	assert.Nil(t, task.UserID)
}

func TestTaskService_GetUnknown(t *testing.T) {
	f := setup(t)
	_, err := f.tasks.GetTask(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_ListIsPublicWithOfferCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a := f.postTask(t, u1)
	f.postTask(t, u2)
	f.postTask(t, identity.Anonymous())
	f.bid(t, u2, a.ID, 10)
	f.bid(t, u3, a.ID, 12)

	tasks, err := f.tasks.ListTasks(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	for _, task := range tasks {
		require.NotNil(t, task.OfferCount)
		if task.ID == a.ID {
			assert.EqualValues(t, 2, *task.OfferCount)
		} else {
			assert.Zero(t, *task.OfferCount)
		}
	}

	mine, err := f.tasks.ListMyTasks(ctx, u1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	_, err = f.tasks.ListMyTasks(ctx, identity.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationNeeded)
}

func TestTaskService_ListFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.tasks.CreateTask(ctx, u1, TaskInput{Title: "Paint fence"})
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(ctx, u1, TaskInput{Title: "Garden", Description: "mow and PAINT shed"})
	require.NoError(t, err)
	assigned := f.postTask(t, u1)
	f.accept(t, f.bid(t, u2, assigned.ID, 30).ID)

	found, err := f.tasks.ListTasks(ctx, repository.TaskFilter{Query: "paint"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = f.tasks.ListTasks(ctx, repository.TaskFilter{Status: constants.TaskInProgress})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, assigned.ID, found[0].ID)

	stats, err := f.tasks.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStats{Total: 3, Pending: 2, InProgress: 1}, stats)
}

func TestTaskService_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	_, err := f.tasks.UpdateTask(ctx, u2, task.ID, TaskPatch{"title": "hijack"})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	updated, err := f.tasks.UpdateTask(ctx, u1, task.ID, TaskPatch{"title": "Fix kitchen sink", "budget_max": nil})
	require.NoError(t, err)
	assert.Equal(t, "Fix kitchen sink", updated.Title)
	assert.Nil(t, updated.BudgetMax)
	assert.Equal(t, constants.TaskPending, updated.Status)

	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, u2, task.ID), apperrors.ErrTaskNotFound)
	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, identity.Anonymous(), task.ID), apperrors.ErrTaskNotFound)

	offer := f.bid(t, u2, task.ID, 40)
	require.NoError(t, f.tasks.DeleteTask(ctx, u1, task.ID))

	_, err = f.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	_, err = f.store.Offers.FindByID(ctx, offer.ID)
	assert.Error(t, err, "offers go with their task")
}

func TestOfferService_CreateAndDuplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	offer := f.bid(t, u2, task.ID, 50)
	assert.Equal(t, constants.OfferPending, offer.Status)
	assert.Equal(t, "USD", offer.Currency)
	assert.Equal(t, "can do", *offer.Message)

	_, err := f.offers.CreateOffer(ctx, u2, OfferInput{TaskID: task.ID, Amount: 60})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateOffer)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestOfferService_CreateGuards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	_, err := f.offers.CreateOffer(ctx, u1, OfferInput{TaskID: task.ID, Amount: 50})
	assert.ErrorIs(t, err, apperrors.ErrOwnTaskOffer)

	_, err = f.offers.CreateOffer(ctx, u2, OfferInput{TaskID: "missing", Amount: 50})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = f.offers.CreateOffer(ctx, identity.Anonymous(), OfferInput{TaskID: task.ID, Amount: 50})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	f.accept(t, f.bid(t, u2, task.ID, 50).ID)
	_, err = f.offers.CreateOffer(ctx, u3, OfferInput{TaskID: task.ID, Amount: 45})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotAccepting)
}

func TestOfferService_AcceptCascade(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	mine := f.bid(t, u2, task.ID, 50)
	rival := f.bid(t, u3, task.ID, 55)

	accepted := f.accept(t, mine.ID)
	assert.Equal(t, constants.OfferAccepted, accepted.Status)

	fetched, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskInProgress, fetched.Status)

	r, err := f.store.Offers.FindByID(ctx, rival.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferRejected, r.Status)

	_, err = f.offers.UpdateOffer(ctx, u1, rival.ID, lifecycle.OfferPatch{Status: ptr(constants.OfferAccepted)})
	assert.ErrorIs(t, err, apperrors.ErrOfferNotAcceptable)
}

func TestOfferService_AcceptSurvivesFailedSiblingRejection(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	mine := f.bid(t, u2, task.ID, 50)
	rival := f.bid(t, u3, task.ID, 55)

	err := f.db.Callback().Update().Before("gorm:update").Register("test:fail_reject", func(tx *gorm.DB) {
		if fields, ok := tx.Statement.Dest.(map[string]any); ok && fields["status"] == constants.OfferRejected {
			tx.AddError(errors.New("offers table locked"))
		}
	})
	require.NoError(t, err)

	accepted, err := f.offers.UpdateOffer(ctx, u1, mine.ID, lifecycle.OfferPatch{Status: ptr(constants.OfferAccepted)})
	require.NoError(t, err)
	assert.Equal(t, constants.OfferAccepted, accepted.Status)

	fetched, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskInProgress, fetched.Status)

	r, err := f.store.Offers.FindByID(ctx, rival.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferPending, r.Status)
}

func TestOfferService_AcceptCascadeOutlivesCanceledRequest(t *testing.T) {
	f := setup(t)
	task := f.postTask(t, u1)

	mine := f.bid(t, u2, task.ID, 50)
	rival := f.bid(t, u3, task.ID, 55)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The request goes away after the accept commits, just before the
	// competing offers are rejected.
	err := f.db.Callback().Update().Before("gorm:update").Register("test:cancel_before_reject", func(tx *gorm.DB) {
		if fields, ok := tx.Statement.Dest.(map[string]any); ok && fields["status"] == constants.OfferRejected {
			cancel()
		}
	})
	require.NoError(t, err)

	_, err = f.offers.UpdateOffer(ctx, u1, mine.ID, lifecycle.OfferPatch{Status: ptr(constants.OfferAccepted)})
	require.NoError(t, err)

	r, err := f.store.Offers.FindByID(context.Background(), rival.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferRejected, r.Status)
}

func TestOfferService_ConcurrentAcceptsLeaveOneWinner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)

	const bidders = 10
	ids := make([]string, bidders)
	for i := range ids {
		caller := identity.Caller{ID: fmt.Sprintf("bidder-%d", i)}
		ids[i] = f.bid(t, caller, task.ID, float64(10+i)).ID
	}

	var wg sync.WaitGroup
	results := make(chan error, bidders)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.offers.UpdateOffer(ctx, u1, id, lifecycle.OfferPatch{Status: ptr(constants.OfferAccepted)})
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	offers, err := f.offers.ListOffersForTask(ctx, task.ID)
	require.NoError(t, err)
	accepted := 0
	for _, o := range offers {
		if o.Status == constants.OfferAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestOfferService_UpdateRoles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	offer := f.bid(t, u2, task.ID, 50)

	updated, err := f.offers.UpdateOffer(ctx, u2, offer.ID, lifecycle.OfferPatch{Amount: ptr(45.0)})
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Amount)

	_, err = f.offers.UpdateOffer(ctx, u2, offer.ID, lifecycle.OfferPatch{Status: ptr(constants.OfferAccepted)})
	assert.ErrorIs(t, err, lifecycle.ErrStatusOwnerOnly)

	_, err = f.offers.UpdateOffer(ctx, u1, offer.ID, lifecycle.OfferPatch{Amount: ptr(1.0), Status: ptr(constants.OfferRejected)})
	assert.ErrorIs(t, err, lifecycle.ErrTermsAuthorOnly)

	_, err = f.offers.UpdateOffer(ctx, u3, offer.ID, lifecycle.OfferPatch{Message: ptr("mine now")})
	assert.ErrorIs(t, err, lifecycle.ErrUpdateOffer)

	rejected, err := f.offers.UpdateOffer(ctx, u1, offer.ID, lifecycle.OfferPatch{Status: ptr(constants.OfferRejected)})
	require.NoError(t, err)
	assert.Equal(t, constants.OfferRejected, rejected.Status)

	_, err = f.offers.UpdateOffer(ctx, u2, offer.ID, lifecycle.OfferPatch{Amount: ptr(40.0)})
	assert.ErrorIs(t, err, apperrors.ErrOfferNotPending)

	fetched, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskPending, fetched.Status, "rejecting does not move the task")
}

func TestOfferService_GetAndListMine(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	offer := f.bid(t, u2, task.ID, 50)

	_, err := f.offers.GetOffer(ctx, u2, offer.ID)
	assert.NoError(t, err)
	_, err = f.offers.GetOffer(ctx, u1, offer.ID)
	assert.NoError(t, err)
	_, err = f.offers.GetOffer(ctx, u3, offer.ID)
	assert.ErrorIs(t, err, lifecycle.ErrViewOffer)
	_, err = f.offers.GetOffer(ctx, u2, "missing")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)

	mine, err := f.offers.ListMyOffers(ctx, u2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Task)
	assert.Equal(t, task.ID, mine[0].Task.ID)
	assert.Equal(t, "Fix sink", mine[0].Task.Title)
	assert.Equal(t, constants.TaskPending, mine[0].Task.Status)

	public, err := f.offers.ListOffersForTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	_, err = f.offers.ListOffersForTask(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestOfferService_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	offer := f.bid(t, u2, task.ID, 50)

	assert.ErrorIs(t, f.offers.DeleteOffer(ctx, u1, offer.ID), lifecycle.ErrDeleteOffer)
	require.NoError(t, f.offers.DeleteOffer(ctx, u2, offer.ID))
	assert.ErrorIs(t, f.offers.DeleteOffer(ctx, u2, offer.ID), apperrors.ErrOfferNotFound)

	again := f.bid(t, u2, task.ID, 55)
	f.accept(t, again.ID)
	assert.ErrorIs(t, f.offers.DeleteOffer(ctx, u2, again.ID), apperrors.ErrOfferNotDeletable)
}

func TestTaskService_CompleteTwice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	f.accept(t, f.bid(t, u2, task.ID, 50).ID)

	done, err := f.tasks.CompleteTask(ctx, u2, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskCompleted, done.Status)

	_, err = f.tasks.CompleteTask(ctx, u2, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotInProgress)

	_, err = f.tasks.DeclineTask(ctx, u2, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotInProgress)
}

func TestTaskService_CompleteGuards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	f.accept(t, f.bid(t, u2, task.ID, 50).ID)

	_, err := f.tasks.CompleteTask(ctx, identity.Anonymous(), task.ID)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	_, err = f.tasks.CompleteTask(ctx, u1, task.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotTasker)

	_, err = f.tasks.CompleteTask(ctx, u3, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	pending := f.postTask(t, u1)
	f.bid(t, u2, pending.ID, 10)
	_, err = f.tasks.CompleteTask(ctx, u2, pending.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotTasker)
}

func TestTaskService_DeclineReopensTask(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	task := f.postTask(t, u1)
	offer := f.bid(t, u2, task.ID, 50)
	f.accept(t, offer.ID)

	reopened, err := f.tasks.DeclineTask(ctx, u2, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskPending, reopened.Status)

	withdrawn, err := f.store.Offers.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferWithdrawn, withdrawn.Status)

	f.bid(t, u3, task.ID, 60)

	_, err = f.offers.CreateOffer(ctx, u2, OfferInput{TaskID: task.ID, Amount: 40})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateOffer, "a withdrawn offer still counts as the user's offer")
}

func TestDashboardService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	dash := NewDashboardService(f.tasks, f.offers)

	mine := f.postTask(t, u2)
	theirs := f.postTask(t, u1)
	f.bid(t, u2, theirs.ID, 25)

	d, err := dash.Dashboard(ctx, u2)
	require.NoError(t, err)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, mine.ID, d.Tasks[0].ID)
	require.Len(t, d.Offers, 1)
	assert.Equal(t, theirs.ID, d.Offers[0].TaskID)

	_, err = dash.Dashboard(ctx, identity.Anonymous())
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationNeeded)
}
