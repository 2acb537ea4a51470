package model

import (
	"time"

	"taskhero.com/taskhero/internal/constants"
)

type Offer struct {
	ID        string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string                `gorm:"size:36;not null;uniqueIndex:idx_offers_task_user;index" json:"task_id"`
	UserID    string                `gorm:"size:36;not null;uniqueIndex:idx_offers_task_user" json:"user_id"`
	Amount    float64               `gorm:"not null" json:"amount"`
	Currency  string                `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Message   *string               `gorm:"size:1000" json:"message,omitempty"`
	Status    constants.OfferStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version   uint                  `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time             `gorm:"index" json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// OfferWithTask is an offer joined with the task it bids on.
type OfferWithTask struct {
	Offer
	Task *TaskSummary `json:"task"`
}
