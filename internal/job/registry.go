package job

import (
	"context"
	"kzstore-backoffice/internal/service"
)

// Handler is one job body. The returned value is the job's result payload,
// surfaced to whoever triggered the run.
type Handler func(ctx context.Context) (interface{}, error)

// Descriptor is the static catalogue entry for one job. Schedule is
// informational only: actual periodic triggering is done by an external
// scheduler calling the trigger path.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Path        string
	Schedule    string
	Enabled     bool
}

// Registry is the fixed set of jobs owned by the process. It is built once
// at startup and never mutated afterwards.
type Registry struct {
	descriptors []Descriptor
	handlers    map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

func (r *Registry) Register(d Descriptor, h Handler) {
	r.descriptors = append(r.descriptors, d)
	r.handlers[d.ID] = h
}

func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}

func (r *Registry) lookup(id string) (Descriptor, Handler, bool) {
	for _, d := range r.descriptors {
		if d.ID == id {
			return d, r.handlers[id], true
		}
	}
	return Descriptor{}, nil, false
}

// BuildRegistry wires the six scheduled jobs to their service bodies.
func BuildRegistry(cron service.CronService) *Registry {
	r := NewRegistry()

	r.Register(Descriptor{
		ID:          "low-stock-alert",
		Name:        "Low Stock Alert",
		Description: "Emails administrators when active products fall to or below their minimum stock",
		Path:        "/cron/low-stock-alert",
		Schedule:    "every 30 minutes",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.LowStockAlert(ctx)
	})

	r.Register(Descriptor{
		ID:          "abandoned-cart-recovery",
		Name:        "Abandoned Cart Recovery",
		Description: "Sends reminder emails for carts inactive for more than two hours",
		Path:        "/cron/abandoned-cart-recovery",
		Schedule:    "every hour",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.AbandonedCartRecovery(ctx)
	})

	r.Register(Descriptor{
		ID:          "daily-metrics",
		Name:        "Daily Metrics Snapshot",
		Description: "Computes CLV, conversion rate and revenue snapshots for the current day",
		Path:        "/cron/daily-metrics",
		Schedule:    "daily at 23:59",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.DailyMetricsSnapshot(ctx)
	})

	r.Register(Descriptor{
		ID:          "cart-cleanup",
		Name:        "Cart Cleanup",
		Description: "Hard-deletes carts inactive for more than 30 days",
		Path:        "/cron/cart-cleanup",
		Schedule:    "daily at 02:00",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.CartCleanup(ctx)
	})

	r.Register(Descriptor{
		ID:          "featured-products",
		Name:        "Featured Products Refresh",
		Description: "Marks the 10 best-selling products of the trailing 30 days as featured",
		Path:        "/cron/featured-products",
		Schedule:    "weekly, Sunday at 00:00",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.FeaturedProductsRefresh(ctx)
	})

	r.Register(Descriptor{
		ID:          "weekly-report",
		Name:        "Weekly Report",
		Description: "Emails administrators a trailing-7-day sales summary",
		Path:        "/cron/weekly-report",
		Schedule:    "weekly, Monday at 09:00",
		Enabled:     true,
	}, func(ctx context.Context) (interface{}, error) {
		return cron.WeeklyReport(ctx)
	})

	return r
}
