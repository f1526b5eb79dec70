package service

import (
	"context"
	"encoding/json"
	"fmt"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"
	"log"
	"sort"
	"time"
)

// currencyUnit tags every monetary snapshot. The store trades in a single
// currency, so it is not configurable.
const currencyUnit = "AOA"

const defaultHistoryLimit = 30

// AnalyticsFilter bounds a metric computation. Nil dates leave that side
// open; CustomerID narrows CLV to one customer (account id or email).
type AnalyticsFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID string
}

func (f AnalyticsFilter) dateRange() repository.DateRange {
	return repository.DateRange{Start: f.StartDate, End: f.EndDate}
}

type AnalyticsService interface {
	ComputeCLV(ctx context.Context, filter AnalyticsFilter) (*dto.CLVReport, error)
	ComputeConversionRate(ctx context.Context, filter AnalyticsFilter) (*dto.ConversionReport, error)
	ComputeRevenue(ctx context.Context, filter AnalyticsFilter, groupBy string) (*dto.RevenueReport, error)
	AnalyzeSalesFunnel(ctx context.Context, filter AnalyticsFilter) (*dto.FunnelReport, error)
	HistoricalMetrics(ctx context.Context, metricType string, filter AnalyticsFilter, limit int) ([]*model.AnalyticsMetric, error)
}

type analyticsServiceImpl struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	metricRepo repository.MetricRepository
}

func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	metricRepo repository.MetricRepository,
) AnalyticsService {
	return &analyticsServiceImpl{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		metricRepo: metricRepo,
	}
}

func (s *analyticsServiceImpl) saveSnapshot(ctx context.Context, metricType string, value float64, unit, periodType string, metadata map[string]interface{}) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	err = s.metricRepo.Insert(ctx, &model.AnalyticsMetric{
		MetricType:  metricType,
		MetricValue: value,
		MetricUnit:  unit,
		Date:        time.Now(),
		PeriodType:  periodType,
		Metadata:    string(raw),
	})
	if err != nil {
		return fmt.Errorf("insert %s snapshot: %w", metricType, err)
	}

	return nil
}

type customerAccumulator struct {
	email         string
	totalSpent    float64
	orderCount    int
	firstPurchase time.Time
	lastPurchase  time.Time
}

// ComputeCLV groups paid, qualifying orders by customer and reports average
// lifetime value. The grouping key is the account reference, falling back to
// the order email when the buyer checked out as a guest — an order with an
// account id and another with only the matching email count as two customers.
func (s *analyticsServiceImpl) ComputeCLV(ctx context.Context, filter AnalyticsFilter) (*dto.CLVReport, error) {
	orders, err := s.orderRepo.FindQualifying(ctx, filter.dateRange(), filter.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find qualifying orders: %w", err)
	}

	grouped := make(map[string]*customerAccumulator)
	keys := make([]string, 0)

	for _, order := range orders {
		key := order.UserID
		if key == "" {
			key = order.UserEmail
		}

		acc, ok := grouped[key]
		if !ok {
			grouped[key] = &customerAccumulator{
				email:         order.UserEmail,
				totalSpent:    order.Total,
				orderCount:    1,
				firstPurchase: order.CreatedAt,
				lastPurchase:  order.CreatedAt,
			}
			keys = append(keys, key)
			continue
		}

		acc.totalSpent += order.Total
		acc.orderCount++
		if order.CreatedAt.Before(acc.firstPurchase) {
			acc.firstPurchase = order.CreatedAt
		}
		if order.CreatedAt.After(acc.lastPurchase) {
			acc.lastPurchase = order.CreatedAt
		}
	}

	customers := make([]dto.CustomerCLV, 0, len(keys))
	for _, key := range keys {
		acc := grouped[key]
		customers = append(customers, dto.CustomerCLV{
			CustomerID:        key,
			Email:             acc.email,
			CLV:               acc.totalSpent,
			TotalOrders:       acc.orderCount,
			AverageOrderValue: acc.totalSpent / float64(acc.orderCount),
			FirstPurchase:     acc.firstPurchase,
			LastPurchase:      acc.lastPurchase,
			LifetimeDays:      int(acc.lastPurchase.Sub(acc.firstPurchase).Hours() / 24),
		})
	}

	totalCustomers := len(customers)
	totalRevenue := 0.0
	sumOrderValues := 0.0
	for _, c := range customers {
		totalRevenue += c.CLV
		sumOrderValues += c.AverageOrderValue
	}

	averageCLV := 0.0
	averageOrderValue := 0.0
	if totalCustomers > 0 {
		averageCLV = totalRevenue / float64(totalCustomers)
		averageOrderValue = sumOrderValues / float64(totalCustomers)
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CLV > customers[j].CLV
	})

	result := customers
	if filter.CustomerID == "" && len(result) > 10 {
		result = result[:10]
	}

	err = s.saveSnapshot(ctx, "clv", averageCLV, currencyUnit, model.PeriodDaily, map[string]interface{}{
		"total_customers":     totalCustomers,
		"total_revenue":       totalRevenue,
		"average_order_value": averageOrderValue,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYTICS] CLV computed: %.2f %s over %d customers", averageCLV, currencyUnit, totalCustomers)

	return &dto.CLVReport{
		AverageCLV:        averageCLV,
		TotalCustomers:    totalCustomers,
		TotalRevenue:      totalRevenue,
		AverageOrderValue: averageOrderValue,
		Customers:         result,
	}, nil
}

// ComputeConversionRate estimates unique visitors as the union of distinct
// emails seen on orders and abandoned carts in range.
func (s *analyticsServiceImpl) ComputeConversionRate(ctx context.Context, filter AnalyticsFilter) (*dto.ConversionReport, error) {
	dr := filter.dateRange()

	totalOrders, err := s.orderRepo.CountQualifying(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count qualifying orders: %w", err)
	}

	orderEmails, err := s.orderRepo.DistinctEmails(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("distinct order emails: %w", err)
	}
	cartEmails, err := s.cartRepo.DistinctEmails(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("distinct cart emails: %w", err)
	}

	visitors := make(map[string]struct{})
	for _, email := range orderEmails {
		if email != "" {
			visitors[email] = struct{}{}
		}
	}
	for _, email := range cartEmails {
		if email != "" {
			visitors[email] = struct{}{}
		}
	}

	totalVisitors := len(visitors)
	conversionRate := 0.0
	if totalVisitors > 0 {
		conversionRate = float64(totalOrders) / float64(totalVisitors) * 100
	}

	abandoned, err := s.cartRepo.CountByStatus(ctx, model.CartStatusAbandoned, dr)
	if err != nil {
		return nil, fmt.Errorf("count abandoned carts: %w", err)
	}
	recovered, err := s.cartRepo.CountByStatus(ctx, model.CartStatusRecovered, dr)
	if err != nil {
		return nil, fmt.Errorf("count recovered carts: %w", err)
	}

	recoveryRate := 0.0
	if abandoned+recovered > 0 {
		recoveryRate = float64(recovered) / float64(abandoned+recovered) * 100
	}

	err = s.saveSnapshot(ctx, "conversion_rate", conversionRate, "%", model.PeriodDaily, map[string]interface{}{
		"total_orders":       totalOrders,
		"total_visitors":     totalVisitors,
		"cart_recovery_rate": recoveryRate,
		"abandoned_carts":    abandoned,
		"recovered_carts":    recovered,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYTICS] conversion rate: %.2f%% (%d orders / %d visitors)", conversionRate, totalOrders, totalVisitors)

	return &dto.ConversionReport{
		ConversionRate:   conversionRate,
		TotalOrders:      totalOrders,
		TotalVisitors:    totalVisitors,
		CartRecoveryRate: recoveryRate,
		AbandonedCarts:   abandoned,
		RecoveredCarts:   recovered,
	}, nil
}

// periodKey buckets a timestamp: day -> calendar date, week -> the Sunday on
// or before it, month -> YYYY-MM.
func periodKey(t time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return sunday.Format("2006-01-02")
	case "month":
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func snapshotPeriod(groupBy string) string {
	switch groupBy {
	case "week":
		return model.PeriodWeekly
	case "month":
		return model.PeriodMonthly
	default:
		return model.PeriodDaily
	}
}

func (s *analyticsServiceImpl) ComputeRevenue(ctx context.Context, filter AnalyticsFilter, groupBy string) (*dto.RevenueReport, error) {
	switch groupBy {
	case "", "day":
		groupBy = "day"
	case "week", "month":
	default:
		return nil, fmt.Errorf("invalid group_by %q", groupBy)
	}

	orders, err := s.orderRepo.FindPaidQualifying(ctx, filter.dateRange(), 0)
	if err != nil {
		return nil, fmt.Errorf("find paid orders: %w", err)
	}

	totalRevenue := 0.0
	totalShipping := 0.0
	totalDiscounts := 0.0
	for _, order := range orders {
		totalRevenue += order.Total
		totalShipping += order.ShippingCost
		totalDiscounts += order.DiscountAmount
	}
	netRevenue := totalRevenue - totalDiscounts

	// Orders arrive sorted by creation time, so first-seen key order keeps
	// the period buckets chronological.
	byPeriod := make(map[string]*dto.PeriodRevenue)
	periodOrder := make([]string, 0)
	byMethod := make(map[string]float64)
	methodOrder := make([]string, 0)

	for _, order := range orders {
		key := periodKey(order.CreatedAt, groupBy)
		bucket, ok := byPeriod[key]
		if !ok {
			bucket = &dto.PeriodRevenue{Period: key}
			byPeriod[key] = bucket
			periodOrder = append(periodOrder, key)
		}
		bucket.Revenue += order.Total
		bucket.Orders++
		bucket.AverageOrderValue = bucket.Revenue / float64(bucket.Orders)

		method := order.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		if _, ok := byMethod[method]; !ok {
			methodOrder = append(methodOrder, method)
		}
		byMethod[method] += order.Total
	}

	periods := make([]dto.PeriodRevenue, 0, len(periodOrder))
	for _, key := range periodOrder {
		periods = append(periods, *byPeriod[key])
	}
	methods := make([]dto.PaymentMethodRevenue, 0, len(methodOrder))
	for _, method := range methodOrder {
		methods = append(methods, dto.PaymentMethodRevenue{
			PaymentMethod: method,
			Revenue:       byMethod[method],
		})
	}

	averageOrderValue := 0.0
	if len(orders) > 0 {
		averageOrderValue = totalRevenue / float64(len(orders))
	}

	err = s.saveSnapshot(ctx, "revenue", totalRevenue, currencyUnit, snapshotPeriod(groupBy), map[string]interface{}{
		"net_revenue":     netRevenue,
		"total_shipping":  totalShipping,
		"total_discounts": totalDiscounts,
		"total_orders":    len(orders),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYTICS] revenue: %.2f %s over %d orders", totalRevenue, currencyUnit, len(orders))

	return &dto.RevenueReport{
		TotalRevenue:      totalRevenue,
		NetRevenue:        netRevenue,
		TotalShipping:     totalShipping,
		TotalDiscounts:    totalDiscounts,
		TotalOrders:       len(orders),
		AverageOrderValue: averageOrderValue,
		ByPeriod:          periods,
		ByPaymentMethod:   methods,
	}, nil
}

// AnalyzeSalesFunnel is an on-demand report; it writes no snapshot.
func (s *analyticsServiceImpl) AnalyzeSalesFunnel(ctx context.Context, filter AnalyticsFilter) (*dto.FunnelReport, error) {
	dr := filter.dateRange()

	cartsCreated, err := s.cartRepo.Count(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count carts: %w", err)
	}
	ordersCreated, err := s.orderRepo.CountCreated(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	completedOrders, err := s.orderRepo.CountPaid(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count paid orders: %w", err)
	}
	deliveredOrders, err := s.orderRepo.CountDelivered(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}

	visitors := cartsCreated + ordersCreated
	// Every estimated visitor either opened a cart or went straight to an
	// order, so the second stage equals the first by construction.
	addedToCart := visitors
	initiatedCheckout := ordersCreated

	stagePct := func(count, prev int64) float64 {
		if prev == 0 {
			return 0
		}
		return float64(count) / float64(prev) * 100
	}

	funnel := []dto.FunnelStage{
		{Stage: "Visitors", Count: visitors, Percentage: 100, DropOff: 0},
		{Stage: "Added to Cart", Count: addedToCart, Percentage: stagePct(addedToCart, visitors), DropOff: visitors - addedToCart},
		{Stage: "Initiated Checkout", Count: initiatedCheckout, Percentage: stagePct(initiatedCheckout, addedToCart), DropOff: addedToCart - initiatedCheckout},
		{Stage: "Completed Order", Count: completedOrders, Percentage: stagePct(completedOrders, initiatedCheckout), DropOff: initiatedCheckout - completedOrders},
		{Stage: "Delivered", Count: deliveredOrders, Percentage: stagePct(deliveredOrders, completedOrders), DropOff: completedOrders - deliveredOrders},
	}

	overall := 0.0
	if visitors > 0 {
		overall = float64(deliveredOrders) / float64(visitors) * 100
	}

	biggest := funnel[0]
	for _, stage := range funnel[1:] {
		if stage.DropOff > biggest.DropOff {
			biggest = stage
		}
	}

	return &dto.FunnelReport{
		Funnel:            funnel,
		OverallConversion: overall,
		BiggestDropOff:    biggest,
	}, nil
}

func (s *analyticsServiceImpl) HistoricalMetrics(ctx context.Context, metricType string, filter AnalyticsFilter, limit int) ([]*model.AnalyticsMetric, error) {
	if metricType == "" {
		return nil, fmt.Errorf("metric_type is required")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	metrics, err := s.metricRepo.Find(ctx, metricType, filter.dateRange(), limit)
	if err != nil {
		return nil, fmt.Errorf("find metrics: %w", err)
	}

	return metrics, nil
}
