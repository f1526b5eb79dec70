package model

import "time"

// Order status values set by the order-management flow.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// QualifyingOrderStatuses are the fulfillment statuses that count as a real
// sale for every metric in the analytics engine.
var QualifyingOrderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

type Order struct {
	ID uint `gorm:"primaryKey"`
	// Account reference when the buyer is logged in, empty for guest checkout.
	UserID    string `gorm:"size:64;index"`
	UserEmail string `gorm:"size:255;index;not null"`
	// JSON-encoded []LineItem, decoded at the repository boundary.
	Items          string  `gorm:"type:text;not null"`
	Total          float64 `gorm:"not null"`
	ShippingCost   float64
	DiscountAmount float64
	PaymentStatus  string `gorm:"size:32;index;not null"`
	Status         string `gorm:"size:32;index;not null"`
	PaymentMethod  string `gorm:"size:64"`
	CreatedAt      time.Time
}

const (
	CartStatusAbandoned = "abandoned"
	CartStatusRecovered = "recovered"
)

type AbandonedCart struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:64;index"`
	UserEmail string `gorm:"size:255;index;not null"`
	UserName  string `gorm:"size:255"`
	// JSON-encoded []LineItem.
	Items     string  `gorm:"type:text;not null"`
	CartTotal float64 `gorm:"not null"`
	Status    string  `gorm:"size:32;index;not null;default:abandoned"`

	RecoveryToken    string `gorm:"size:64;uniqueIndex"`
	ReminderCount    int    `gorm:"not null;default:0"`
	LastReminderAt   *time.Time
	RecoveredOrderID string `gorm:"size:64"`
	RecoveredAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID       string `gorm:"primaryKey;size:64;not null"` // product sku
	Name     string `gorm:"size:255;not null"`
	SKU      string `gorm:"size:64;index"`
	Category string `gorm:"size:64;index"`
	Price    float64
	Active   bool `gorm:"index;not null;default:true"`
	Stock    int  `gorm:"not null"`
	MinStock int  `gorm:"not null"`
	Featured bool `gorm:"index;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID        string `gorm:"primaryKey;size:64"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Name      string `gorm:"size:255"`
	Role      string `gorm:"size:32;index;not null;default:customer"`
	CreatedAt time.Time
}

// Snapshot period granularities.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// AnalyticsMetric is one immutable metric snapshot. Rows are append-only:
// nothing in this codebase updates or deletes them, and the
// (metric_type, date, period_type) tuple is intentionally not unique —
// re-running a snapshot job for the same day appends a second row.
type AnalyticsMetric struct {
	ID          uint    `gorm:"primaryKey"`
	MetricType  string  `gorm:"size:64;index;not null"` // clv, conversion_rate, revenue
	MetricValue float64 `gorm:"not null"`
	MetricUnit  string  `gorm:"size:16;not null"` // currency code or "%"
	Date        time.Time
	PeriodType  string `gorm:"size:16;not null"`
	// JSON-encoded map of metric-specific breakdown values.
	Metadata  string `gorm:"type:text"`
	CreatedAt time.Time
}

// Job run states.
const (
	JobStatusIdle    = "idle"
	JobStatusRunning = "running"
	JobStatusSuccess = "success"
	JobStatusError   = "error"
)

// JobRun is the last-known execution record for one job. One row per job id,
// overwritten on every run.
type JobRun struct {
	JobID     string `gorm:"primaryKey;size:64"`
	Status    string `gorm:"size:16;not null"`
	LastRun   *time.Time
	LastError string `gorm:"size:1024"`
	UpdatedAt time.Time
}
