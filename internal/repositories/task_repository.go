package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhero.com/taskhero/internal/constants"
	model "taskhero.com/taskhero/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskFilter struct {
	Status constants.TaskStatus
	Query  string
	// OwnerID restricts the listing to one owner when set.
	OwnerID string
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.Status = constants.TaskPending
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now

	return translate(r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != "" {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	tasks := []model.Task{}
	err := query.Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

// Update writes fields to the task guarded by its version and returns the
// stored row.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task, fields map[string]any) (*model.Task, error) {
	fields["updated_at"] = time.Now().UTC()
	fields["version"] = gorm.Expr("version + 1")

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(fields)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, ErrOptimisticLock
	}

	return r.FindByID(ctx, task.ID)
}

// Delete removes the task and every offer made on it.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Offer{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AttachOfferCounts fills OfferCount on every task with one grouped query.
func (r *TaskRepository) AttachOfferCounts(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	var rows []struct {
		TaskID string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Select("task_id, count(*) as count").
		Where("task_id IN ?", ids).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.TaskID] = row.Count
	}

	for i := range tasks {
		c := counts[tasks[i].ID]
		tasks[i].OfferCount = &c
	}
	return nil
}

func (r *TaskRepository) Stats(ctx context.Context) (model.TaskStats, error) {
	var rows []struct {
		Status constants.TaskStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return model.TaskStats{}, err
	}

	var stats model.TaskStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case constants.TaskPending:
			stats.Pending = row.Count
		case constants.TaskInProgress:
			stats.InProgress = row.Count
		case constants.TaskCompleted:
			stats.Completed = row.Count
		}
	}
	return stats, nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	tasks := []model.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}
