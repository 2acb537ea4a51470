package model

import (
	"time"

	"taskhero.com/taskhero/internal/constants"
)

type Task struct {
	ID              string               `gorm:"primaryKey;size:36" json:"id"`
	Title           string               `gorm:"size:200;not null" json:"title"`
	Description     string               `gorm:"not null;default:''" json:"description"`
	Status          constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UserID          *string              `gorm:"size:36;index" json:"user_id"`
	DateType        constants.DateType   `gorm:"type:varchar(20)" json:"date_type,omitempty"`
	TaskDate        *time.Time           `json:"task_date"`
	LocationAddress *string              `json:"location_address"`
	LocationLat     *float64             `json:"location_lat"`
	LocationLng     *float64             `json:"location_lng"`
	BudgetMin       *float64             `json:"budget_min"`
	BudgetMax       *float64             `json:"budget_max"`
	BudgetCurrency  string               `gorm:"size:3;not null;default:'USD'" json:"budget_currency"`
	Version         uint                 `gorm:"not null;default:1" json:"-"`
	CreatedAt       time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	OfferCount *int64 `gorm:"-" json:"offer_count,omitempty"`
}

// OwnedBy reports whether userID owns the task. A nil owner only matches an
// empty userID.
func (t *Task) OwnedBy(userID string) bool {
	if t.UserID == nil {
		return userID == ""
	}
	return *t.UserID == userID
}

// TaskSummary is the slice of a task shown next to an offer.
type TaskSummary struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Status    constants.TaskStatus `json:"status"`
	BudgetMin *float64             `json:"budget_min"`
	BudgetMax *float64             `json:"budget_max"`
}

func (t *Task) Summary() TaskSummary {
	return TaskSummary{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		BudgetMin: t.BudgetMin,
		BudgetMax: t.BudgetMax,
	}
}

type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
