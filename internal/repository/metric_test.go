package repository

import (
	"context"
	"kzstore-backoffice/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricAppendOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetricRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	// Two snapshots for the same (type, date, period) must both persist.
	require.NoError(t, repo.Insert(ctx, &model.AnalyticsMetric{
		MetricType: "clv", MetricValue: 100, MetricUnit: "AOA",
		Date: day, PeriodType: model.PeriodDaily,
	}))
	require.NoError(t, repo.Insert(ctx, &model.AnalyticsMetric{
		MetricType: "clv", MetricValue: 120, MetricUnit: "AOA",
		Date: day.Add(time.Hour), PeriodType: model.PeriodDaily,
	}))

	metrics, err := repo.Find(ctx, "clv", DateRange{}, 10)
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	// newest first
	assert.Equal(t, 120.0, metrics[0].MetricValue)
	assert.Equal(t, 100.0, metrics[1].MetricValue)
}

func TestMetricFindFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetricRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, &model.AnalyticsMetric{
			MetricType: "revenue", MetricValue: float64(i), MetricUnit: "AOA",
			Date: base.AddDate(0, 0, i), PeriodType: model.PeriodDaily,
		}))
	}
	require.NoError(t, repo.Insert(ctx, &model.AnalyticsMetric{
		MetricType: "clv", MetricValue: 99, MetricUnit: "AOA",
		Date: base, PeriodType: model.PeriodDaily,
	}))

	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 3)
	metrics, err := repo.Find(ctx, "revenue", DateRange{Start: &start, End: &end}, 2)
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	assert.Equal(t, 3.0, metrics[0].MetricValue)
	assert.Equal(t, 2.0, metrics[1].MetricValue)
	for _, m := range metrics {
		assert.Equal(t, "revenue", m.MetricType)
	}
}
