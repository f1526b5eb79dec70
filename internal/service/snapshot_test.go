package service

import (
	"context"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exercises the snapshot path end to end against sqlite: every computation
// appends a new metric row, nothing is overwritten, and history comes back
// newest first.
func TestSnapshotsAccumulateAcrossRuns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Order{},
		&model.AbandonedCart{},
		&model.AnalyticsMetric{},
	))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&model.Order{
		UserEmail:     "buyer@example.com",
		Total:         500,
		Status:        model.OrderStatusDelivered,
		PaymentStatus: model.PaymentStatusPaid,
	}).Error)

	svc := NewAnalyticsService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewMetricRepository(db),
	)

	for i := 0; i < 2; i++ {
		_, err := svc.ComputeCLV(ctx, AnalyticsFilter{})
		require.NoError(t, err)
	}

	history, err := svc.HistoricalMetrics(ctx, "clv", AnalyticsFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, 500.0, history[0].MetricValue)
	assert.Equal(t, 500.0, history[1].MetricValue)
	assert.False(t, history[0].Date.Before(history[1].Date))
}
