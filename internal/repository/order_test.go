package repository

import (
	"context"
	"kzstore-backoffice/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, email, status, paymentStatus string, total float64, age time.Duration) *model.Order {
	t.Helper()

	order := &model.Order{
		UserEmail:     email,
		Items:         "[]",
		Total:         total,
		PaymentStatus: paymentStatus,
		Status:        status,
	}
	require.NoError(t, db.Create(order).Error)
	backdate(t, db, order, map[string]interface{}{"created_at": time.Now().Add(-age)})
	return order
}

func TestFindQualifying(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "a@example.com", model.OrderStatusDelivered, model.PaymentStatusPaid, 100, time.Hour)
	seedOrder(t, db, "a@example.com", model.OrderStatusProcessing, model.PaymentStatusPaid, 50, time.Hour)
	seedOrder(t, db, "b@example.com", model.OrderStatusCancelled, model.PaymentStatusPaid, 70, time.Hour)
	seedOrder(t, db, "c@example.com", model.OrderStatusShipped, model.PaymentStatusUnpaid, 30, time.Hour)

	orders, err := repo.FindQualifying(ctx, DateRange{}, "")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	// customer filter matches by email for guest orders
	orders, err = repo.FindQualifying(ctx, DateRange{}, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.FindQualifying(ctx, DateRange{}, "b@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSumPaidQualifyingTotal(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "a@example.com", model.OrderStatusDelivered, model.PaymentStatusPaid, 100, time.Hour)
	seedOrder(t, db, "b@example.com", model.OrderStatusShipped, model.PaymentStatusPaid, 250, 2*time.Hour)
	seedOrder(t, db, "c@example.com", model.OrderStatusPending, model.PaymentStatusPaid, 999, time.Hour)
	seedOrder(t, db, "d@example.com", model.OrderStatusDelivered, model.PaymentStatusUnpaid, 999, time.Hour)

	total, err := repo.SumPaidQualifyingTotal(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 350.0, total)
}

func TestSumPaidQualifyingTotalEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	total, err := repo.SumPaidQualifyingTotal(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestDateRangeBounds(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "old@example.com", model.OrderStatusDelivered, model.PaymentStatusPaid, 10, 72*time.Hour)
	seedOrder(t, db, "new@example.com", model.OrderStatusDelivered, model.PaymentStatusPaid, 20, time.Hour)

	start := time.Now().Add(-24 * time.Hour)
	count, err := repo.CountQualifying(ctx, DateRange{Start: &start})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	end := time.Now().Add(-24 * time.Hour)
	count, err = repo.CountQualifying(ctx, DateRange{End: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDistinctEmails(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "dup@example.com", model.OrderStatusDelivered, model.PaymentStatusPaid, 10, time.Hour)
	seedOrder(t, db, "dup@example.com", model.OrderStatusProcessing, model.PaymentStatusPaid, 10, time.Hour)
	seedOrder(t, db, "other@example.com", model.OrderStatusPending, model.PaymentStatusUnpaid, 10, time.Hour)

	emails, err := repo.DistinctEmails(ctx, DateRange{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dup@example.com", "other@example.com"}, emails)
}
