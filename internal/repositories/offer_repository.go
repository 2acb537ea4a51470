package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhero.com/taskhero/internal/constants"
	model "taskhero.com/taskhero/internal/models"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	now := time.Now().UTC()
	offer.ID = uuid.NewString()
	offer.Status = constants.OfferPending
	offer.Version = 1
	offer.CreatedAt = now
	offer.UpdatedAt = now

	return translate(r.db.WithContext(ctx).Create(offer).Error)
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ExistsForUser reports whether userID has any offer row on the task,
// whatever its status.
func (r *OfferRepository) ExistsForUser(ctx context.Context, taskID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *OfferRepository) ListByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	offers := []model.Offer{}
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListByUser(ctx context.Context, userID string) ([]model.Offer, error) {
	offers := []model.Offer{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) FindAccepted(ctx context.Context, taskID, userID string) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ? AND status = ?", taskID, userID, constants.OfferAccepted).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Update writes fields to the offer guarded by its version and returns the
// stored row.
func (r *OfferRepository) Update(ctx context.Context, offer *model.Offer, fields map[string]any) (*model.Offer, error) {
	fields["updated_at"] = time.Now().UTC()
	fields["version"] = gorm.Expr("version + 1")

	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("id = ? AND version = ?", offer.ID, offer.Version).
		Updates(fields)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, ErrOptimisticLock
	}

	return r.FindByID(ctx, offer.ID)
}

// RejectPendingExcept flips every other pending offer on the task to
// rejected and returns how many rows changed.
func (r *OfferRepository) RejectPendingExcept(ctx context.Context, taskID, keepID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND status = ? AND id <> ?", taskID, constants.OfferPending, keepID).
		Updates(map[string]any{
			"status":     constants.OfferRejected,
			"updated_at": time.Now().UTC(),
			"version":    gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

func (r *OfferRepository) Delete(ctx context.Context, offer *model.Offer) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", offer.ID, offer.Version).
		Delete(&model.Offer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}
	return nil
}
