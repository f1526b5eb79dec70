package repository

import (
	"context"
	"kzstore-backoffice/internal/model"

	"gorm.io/gorm"
)

// MetricRepository is the append-only snapshot store. There is deliberately
// no update or delete: once written, a snapshot row is immutable.
type MetricRepository interface {
	Insert(ctx context.Context, metric *model.AnalyticsMetric) error
	// Find returns snapshots of one metric type within the optional date
	// bounds, newest first, capped at limit.
	Find(ctx context.Context, metricType string, r DateRange, limit int) ([]*model.AnalyticsMetric, error)
}

type metricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepoImpl{
		db: db,
	}
}

func (r *metricRepoImpl) Insert(ctx context.Context, metric *model.AnalyticsMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *metricRepoImpl) Find(ctx context.Context, metricType string, dr DateRange, limit int) ([]*model.AnalyticsMetric, error) {
	var metrics []*model.AnalyticsMetric
	q := dr.apply(r.db.WithContext(ctx).Model(&model.AnalyticsMetric{}), "date").
		Where("metric_type = ?", metricType).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}
