package service

import (
	"context"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"
	"sync"
	"time"
)

type fakeOrderRepo struct {
	qualifying      []*model.Order
	paidQualifying  []*model.Order
	countQualifying int64
	countCreated    int64
	countPaid       int64
	countDelivered  int64
	emails          []string
	sumTotal        float64
	err             error
}

func (f *fakeOrderRepo) FindQualifying(ctx context.Context, r repository.DateRange, customerID string) ([]*model.Order, error) {
	return f.qualifying, f.err
}

func (f *fakeOrderRepo) FindPaidQualifying(ctx context.Context, r repository.DateRange, limit int) ([]*model.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.paidQualifying) > limit {
		return f.paidQualifying[:limit], nil
	}
	return f.paidQualifying, nil
}

func (f *fakeOrderRepo) CountQualifying(ctx context.Context, r repository.DateRange) (int64, error) {
	return f.countQualifying, f.err
}

func (f *fakeOrderRepo) CountCreated(ctx context.Context, r repository.DateRange) (int64, error) {
	return f.countCreated, f.err
}

func (f *fakeOrderRepo) CountPaid(ctx context.Context, r repository.DateRange) (int64, error) {
	return f.countPaid, f.err
}

func (f *fakeOrderRepo) CountDelivered(ctx context.Context, r repository.DateRange) (int64, error) {
	return f.countDelivered, f.err
}

func (f *fakeOrderRepo) DistinctEmails(ctx context.Context, r repository.DateRange) ([]string, error) {
	return f.emails, f.err
}

func (f *fakeOrderRepo) SumPaidQualifyingTotal(ctx context.Context, r repository.DateRange) (float64, error) {
	return f.sumTotal, f.err
}

type fakeCartRepo struct {
	recoverable    []*model.AbandonedCart
	emails         []string
	count          int64
	abandonedCount int64
	recoveredCount int64
	deleted        int64
	reminded       []string
	err            error
}

func (f *fakeCartRepo) Track(ctx context.Context, cart *model.AbandonedCart) (*model.AbandonedCart, error) {
	return cart, f.err
}

func (f *fakeCartRepo) MarkRecovered(ctx context.Context, userEmail, orderID string) error {
	return f.err
}

func (f *fakeCartRepo) FindRecoverable(ctx context.Context, cutoff time.Time, limit int) ([]*model.AbandonedCart, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.recoverable) > limit {
		return f.recoverable[:limit], nil
	}
	return f.recoverable, nil
}

func (f *fakeCartRepo) MarkReminded(ctx context.Context, cartID string) error {
	f.reminded = append(f.reminded, cartID)
	return nil
}

func (f *fakeCartRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.deleted, f.err
}

func (f *fakeCartRepo) CountByStatus(ctx context.Context, status string, r repository.DateRange) (int64, error) {
	if status == model.CartStatusAbandoned {
		return f.abandonedCount, f.err
	}
	return f.recoveredCount, f.err
}

func (f *fakeCartRepo) Count(ctx context.Context, r repository.DateRange) (int64, error) {
	return f.count, f.err
}

func (f *fakeCartRepo) DistinctEmails(ctx context.Context, r repository.DateRange) ([]string, error) {
	return f.emails, f.err
}

type fakeMetricRepo struct {
	mu       sync.Mutex
	inserted []*model.AnalyticsMetric
	found    []*model.AnalyticsMetric
	err      error
}

func (f *fakeMetricRepo) Insert(ctx context.Context, metric *model.AnalyticsMetric) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, metric)
	return nil
}

func (f *fakeMetricRepo) Find(ctx context.Context, metricType string, r repository.DateRange, limit int) ([]*model.AnalyticsMetric, error) {
	return f.found, f.err
}

func (f *fakeMetricRepo) byType(metricType string) []*model.AnalyticsMetric {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AnalyticsMetric
	for _, m := range f.inserted {
		if m.MetricType == metricType {
			out = append(out, m)
		}
	}
	return out
}

type fakeProductRepo struct {
	lowStock    []*model.Product
	featuredIDs []string
	activeCount int64
	unset, set  []string
	err         error
}

func (f *fakeProductRepo) FindLowStock(ctx context.Context, limit int) ([]*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.lowStock) > limit {
		return f.lowStock[:limit], nil
	}
	return f.lowStock, nil
}

func (f *fakeProductRepo) CountActive(ctx context.Context) (int64, error) {
	return f.activeCount, f.err
}

func (f *fakeProductRepo) FindFeaturedIDs(ctx context.Context) ([]string, error) {
	return f.featuredIDs, f.err
}

func (f *fakeProductRepo) ApplyFeaturedDiff(ctx context.Context, unset, set []string) error {
	f.unset = unset
	f.set = set
	return f.err
}

type fakeUserRepo struct {
	emails       map[string]string
	newCustomers int64
	err          error
}

func (f *fakeUserRepo) EmailByID(ctx context.Context, userID string) (string, error) {
	return f.emails[userID], f.err
}

func (f *fakeUserRepo) CountNewCustomers(ctx context.Context, since time.Time) (int64, error) {
	return f.newCustomers, f.err
}

// fakeMailer records every send and fails the recipients listed in failFor.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	bodies   []string
	failFor  map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]error)}
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, html)
	return nil
}

// fakeAnalytics lets each sub-computation fail independently.
type fakeAnalytics struct {
	clvErr  error
	convErr error
	revErr  error
	calls   []string
}

func (f *fakeAnalytics) ComputeCLV(ctx context.Context, filter AnalyticsFilter) (*dto.CLVReport, error) {
	f.calls = append(f.calls, "clv")
	if f.clvErr != nil {
		return nil, f.clvErr
	}
	return &dto.CLVReport{}, nil
}

func (f *fakeAnalytics) ComputeConversionRate(ctx context.Context, filter AnalyticsFilter) (*dto.ConversionReport, error) {
	f.calls = append(f.calls, "conversion_rate")
	if f.convErr != nil {
		return nil, f.convErr
	}
	return &dto.ConversionReport{}, nil
}

func (f *fakeAnalytics) ComputeRevenue(ctx context.Context, filter AnalyticsFilter, groupBy string) (*dto.RevenueReport, error) {
	f.calls = append(f.calls, "revenue")
	if f.revErr != nil {
		return nil, f.revErr
	}
	return &dto.RevenueReport{}, nil
}

func (f *fakeAnalytics) AnalyzeSalesFunnel(ctx context.Context, filter AnalyticsFilter) (*dto.FunnelReport, error) {
	return &dto.FunnelReport{}, nil
}

func (f *fakeAnalytics) HistoricalMetrics(ctx context.Context, metricType string, filter AnalyticsFilter, limit int) ([]*model.AnalyticsMetric, error) {
	return nil, nil
}
