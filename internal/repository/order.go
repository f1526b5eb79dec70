package repository

import (
	"context"
	"kzstore-backoffice/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// FindQualifying returns paid orders in a qualifying fulfillment status,
	// optionally narrowed to one customer (account id or email).
	FindQualifying(ctx context.Context, r DateRange, customerID string) ([]*model.Order, error)
	// FindPaidQualifying returns paid + qualifying orders ordered by
	// creation time ascending, capped at limit (0 = no cap).
	FindPaidQualifying(ctx context.Context, r DateRange, limit int) ([]*model.Order, error)
	CountQualifying(ctx context.Context, r DateRange) (int64, error)
	CountCreated(ctx context.Context, r DateRange) (int64, error)
	CountPaid(ctx context.Context, r DateRange) (int64, error)
	CountDelivered(ctx context.Context, r DateRange) (int64, error)
	DistinctEmails(ctx context.Context, r DateRange) ([]string, error)
	// SumPaidQualifyingTotal sums order totals over paid + qualifying orders.
	SumPaidQualifyingTotal(ctx context.Context, r DateRange) (float64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) qualifying(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status IN ?", model.QualifyingOrderStatuses)
}

func (r *orderRepoImpl) FindQualifying(ctx context.Context, dr DateRange, customerID string) ([]*model.Order, error) {
	q := dr.apply(r.qualifying(ctx), "created_at").
		Where("payment_status = ?", model.PaymentStatusPaid)

	if customerID != "" {
		q = q.Where("user_id = ? OR user_email = ?", customerID, customerID)
	}

	var orders []*model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindPaidQualifying(ctx context.Context, dr DateRange, limit int) ([]*model.Order, error) {
	q := dr.apply(r.qualifying(ctx), "created_at").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var orders []*model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) CountQualifying(ctx context.Context, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.qualifying(ctx), "created_at").Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) CountCreated(ctx context.Context, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.db.WithContext(ctx).Model(&model.Order{}), "created_at").
		Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) CountPaid(ctx context.Context, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.db.WithContext(ctx).Model(&model.Order{}), "created_at").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) CountDelivered(ctx context.Context, dr DateRange) (int64, error) {
	var count int64
	err := dr.apply(r.db.WithContext(ctx).Model(&model.Order{}), "created_at").
		Where("status = ?", model.OrderStatusDelivered).
		Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) DistinctEmails(ctx context.Context, dr DateRange) ([]string, error) {
	var emails []string
	err := dr.apply(r.db.WithContext(ctx).Model(&model.Order{}), "created_at").
		Distinct("user_email").
		Pluck("user_email", &emails).Error

	if err != nil {
		return nil, err
	}

	return emails, nil
}

func (r *orderRepoImpl) SumPaidQualifyingTotal(ctx context.Context, dr DateRange) (float64, error) {
	var total *float64
	err := dr.apply(r.qualifying(ctx), "created_at").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Select("SUM(total)").
		Scan(&total).Error

	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
