package repository

import (
	"context"
	"errors"
	"kzstore-backoffice/internal/model"
	"time"

	"gorm.io/gorm"
)

type CartRepository interface {
	// Track upserts the open abandoned cart for an email: an existing
	// abandoned cart gets its items and timer reset, otherwise a new row
	// is created.
	Track(ctx context.Context, cart *model.AbandonedCart) (*model.AbandonedCart, error)
	MarkRecovered(ctx context.Context, userEmail, orderID string) error
	// FindRecoverable returns abandoned carts whose created_at and
	// updated_at are both at or before cutoff and that still have items,
	// oldest first, capped at limit.
	FindRecoverable(ctx context.Context, cutoff time.Time, limit int) ([]*model.AbandonedCart, error)
	MarkReminded(ctx context.Context, cartID string) error
	// DeleteInactiveBefore hard-deletes carts last updated at or before
	// cutoff and returns the number removed.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountByStatus(ctx context.Context, status string, r DateRange) (int64, error)
	Count(ctx context.Context, r DateRange) (int64, error)
	DistinctEmails(ctx context.Context, r DateRange) ([]string, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Track(ctx context.Context, cart *model.AbandonedCart) (*model.AbandonedCart, error) {
	var existing model.AbandonedCart
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND status = ?", cart.UserEmail, model.CartStatusAbandoned).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
			return nil, err
		}
		return cart, nil
	}

	err = r.db.WithContext(ctx).Model(&existing).
		Updates(map[string]interface{}{
			"items":      cart.Items,
			"cart_total": cart.CartTotal,
			"user_name":  cart.UserName,
			"updated_at": time.Now(),
		}).Error

	if err != nil {
		return nil, err
	}

	return &existing, nil
}

func (r *cartRepoImpl) MarkRecovered(ctx context.Context, userEmail, orderID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.AbandonedCart{}).
		Where("user_email = ? AND status = ?", userEmail, model.CartStatusAbandoned).
		Updates(map[string]interface{}{
			"status":             model.CartStatusRecovered,
			"recovered_order_id": orderID,
			"recovered_at":       now,
		}).Error
}

func (r *cartRepoImpl) FindRecoverable(ctx context.Context, cutoff time.Time, limit int) ([]*model.AbandonedCart, error) {
	var carts []*model.AbandonedCart
	err := r.db.WithContext(ctx).
		Where("status = ?", model.CartStatusAbandoned).
		Where("created_at <= ? AND updated_at <= ?", cutoff, cutoff).
		Where("items <> ?", "[]").
		Order("updated_at ASC").
		Limit(limit).
		Find(&carts).Error

	if err != nil {
		return nil, err
	}

	return carts, nil
}

func (r *cartRepoImpl) MarkReminded(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Model(&model.AbandonedCart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"reminder_count":   gorm.Expr("reminder_count + 1"),
			"last_reminder_at": time.Now(),
		}).Error
}

func (r *cartRepoImpl) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at <= ?", cutoff).
		Delete(&model.AbandonedCart{})

	return result.RowsAffected, result.Error
}

func (r *cartRepoImpl) CountByStatus(ctx context.Context, status string, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.db.WithContext(ctx).Model(&model.AbandonedCart{}), "created_at").
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *cartRepoImpl) Count(ctx context.Context, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.db.WithContext(ctx).Model(&model.AbandonedCart{}), "created_at").
		Count(&count).Error
	return count, err
}

func (r *cartRepoImpl) DistinctEmails(ctx context.Context, dr DateRange) ([]string, error) {
	var emails []string
	err := dr.apply(r.db.WithContext(ctx).Model(&model.AbandonedCart{}), "created_at").
		Distinct("user_email").
		Pluck("user_email", &emails).Error

	if err != nil {
		return nil, err
	}

	return emails, nil
}
