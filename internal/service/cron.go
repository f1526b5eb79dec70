package service

import (
	"context"
	"fmt"
	"kzstore-backoffice/internal/client"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"
	"log"
	"sort"
	"time"
)

const (
	// Abandoned carts become eligible for a reminder after this much
	// inactivity, and each run processes at most recoveryBatchSize of
	// them, oldest first.
	abandonedAfter    = 2 * time.Hour
	recoveryBatchSize = 50

	// Reminders per cart are capped, with at least a day between them.
	maxReminders    = 3
	reminderSpacing = 24 * time.Hour

	// Scan caps for the catalog-wide jobs.
	lowStockScanLimit   = 500
	featuredOrderLimit  = 2000
	featuredWindow      = 30 * 24 * time.Hour
	cartRetentionWindow = 30 * 24 * time.Hour
	weeklyWindow        = 7 * 24 * time.Hour
)

// Discount ladder for recovery reminders: 5% on the first, 10% on the
// second, 15% on the third.
var reminderDiscounts = []int{5, 10, 15}

type CronService interface {
	LowStockAlert(ctx context.Context) (*dto.LowStockResult, error)
	AbandonedCartRecovery(ctx context.Context) (*dto.CartRecoveryResult, error)
	DailyMetricsSnapshot(ctx context.Context) (*dto.DailyMetricsResult, error)
	CartCleanup(ctx context.Context) (*dto.CleanupResult, error)
	FeaturedProductsRefresh(ctx context.Context) (*dto.FeaturedRefreshResult, error)
	WeeklyReport(ctx context.Context) (*dto.WeeklyReportResult, error)
}

type cronServiceImpl struct {
	mailClient  client.MailClient
	analytics   AnalyticsService
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository

	adminEmails []string
	frontendURL string
	loc         *time.Location
}

func NewCronService(
	mailClient client.MailClient,
	analytics AnalyticsService,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	adminEmails []string,
	frontendURL string,
	loc *time.Location,
) CronService {
	if loc == nil {
		loc = time.Local
	}
	return &cronServiceImpl{
		mailClient:  mailClient,
		analytics:   analytics,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		adminEmails: adminEmails,
		frontendURL: frontendURL,
		loc:         loc,
	}
}

// sendToAdmins fans one message out to every configured admin recipient.
// A failed send is logged and counted; it never aborts the loop.
func (s *cronServiceImpl) sendToAdmins(ctx context.Context, subject, html string) (sent, failed int) {
	for _, email := range s.adminEmails {
		if err := s.mailClient.Send(ctx, email, subject, html); err != nil {
			log.Printf("[CRON] send to %s failed: %v", email, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func (s *cronServiceImpl) LowStockAlert(ctx context.Context) (*dto.LowStockResult, error) {
	products, err := s.productRepo.FindLowStock(ctx, lowStockScanLimit)
	if err != nil {
		return nil, fmt.Errorf("find low stock products: %w", err)
	}

	log.Printf("[CRON] %d products at or below minimum stock", len(products))

	result := &dto.LowStockResult{
		ProductsChecked: len(products),
		LowStockItems:   make([]dto.LowStockProduct, 0, len(products)),
	}
	for _, p := range products {
		result.LowStockItems = append(result.LowStockItems, dto.LowStockProduct{
			ID:       p.ID,
			Name:     p.Name,
			SKU:      p.SKU,
			Category: p.Category,
			Price:    p.Price,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}

	if len(products) == 0 {
		return result, nil
	}

	subject := fmt.Sprintf("KZSTORE - %d products low on stock", len(products))
	html := lowStockAlertEmail(result.LowStockItems)
	result.AlertsSent, result.AlertsFailed = s.sendToAdmins(ctx, subject, html)

	return result, nil
}

func (s *cronServiceImpl) AbandonedCartRecovery(ctx context.Context) (*dto.CartRecoveryResult, error) {
	cutoff := time.Now().Add(-abandonedAfter)
	carts, err := s.cartRepo.FindRecoverable(ctx, cutoff, recoveryBatchSize)
	if err != nil {
		return nil, fmt.Errorf("find recoverable carts: %w", err)
	}

	log.Printf("[CRON] %d abandoned carts found", len(carts))

	result := &dto.CartRecoveryResult{CartsProcessed: len(carts)}

	for _, cart := range carts {
		if cart.ReminderCount >= maxReminders {
			result.Skipped++
			continue
		}
		if cart.LastReminderAt != nil && time.Since(*cart.LastReminderAt) < reminderSpacing {
			result.Skipped++
			continue
		}

		email := cart.UserEmail
		if email == "" && cart.UserID != "" {
			email, err = s.userRepo.EmailByID(ctx, cart.UserID)
			if err != nil {
				log.Printf("[CRON] resolve email for cart %s: %v", cart.ID, err)
				result.EmailsFailed++
				continue
			}
		}
		if email == "" {
			result.Skipped++
			continue
		}

		items, err := model.DecodeLineItems(cart.Items)
		if err != nil {
			log.Printf("[CRON] cart %s has invalid items: %v", cart.ID, err)
			result.EmailsFailed++
			continue
		}

		discount := 0
		if cart.ReminderCount < len(reminderDiscounts) {
			discount = reminderDiscounts[cart.ReminderCount]
		}
		recoveryLink := fmt.Sprintf("%s/cart/recover?token=%s", s.frontendURL, cart.RecoveryToken)

		subject := fmt.Sprintf("%s, you left products in your cart!", displayName(cart.UserName))
		html := cartRecoveryEmail(cart.UserName, items, model.ItemsTotal(items), discount, recoveryLink)

		if err := s.mailClient.Send(ctx, email, subject, html); err != nil {
			log.Printf("[CRON] recovery email for cart %s failed: %v", cart.ID, err)
			result.EmailsFailed++
			continue
		}

		if err := s.cartRepo.MarkReminded(ctx, cart.ID); err != nil {
			log.Printf("[CRON] mark cart %s reminded: %v", cart.ID, err)
		}
		result.EmailsSent++
	}

	return result, nil
}

// DailyMetricsSnapshot runs the three snapshot computations for the current
// local calendar day. Each one fails independently; the result reports which
// of the three succeeded.
func (s *cronServiceImpl) DailyMetricsSnapshot(ctx context.Context) (*dto.DailyMetricsResult, error) {
	now := time.Now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), s.loc)

	filter := AnalyticsFilter{StartDate: &start, EndDate: &end}
	calculated := make([]string, 0, 3)

	if _, err := s.analytics.ComputeCLV(ctx, filter); err != nil {
		log.Printf("[CRON] CLV snapshot failed: %v", err)
	} else {
		calculated = append(calculated, "clv")
	}

	if _, err := s.analytics.ComputeConversionRate(ctx, filter); err != nil {
		log.Printf("[CRON] conversion rate snapshot failed: %v", err)
	} else {
		calculated = append(calculated, "conversion_rate")
	}

	if _, err := s.analytics.ComputeRevenue(ctx, filter, "day"); err != nil {
		log.Printf("[CRON] revenue snapshot failed: %v", err)
	} else {
		calculated = append(calculated, "revenue")
	}

	log.Printf("[CRON] %d of 3 daily metrics computed", len(calculated))

	return &dto.DailyMetricsResult{
		MetricsCalculated: calculated,
		Date:              time.Now(),
	}, nil
}

func (s *cronServiceImpl) CartCleanup(ctx context.Context) (*dto.CleanupResult, error) {
	cutoff := time.Now().Add(-cartRetentionWindow)
	deleted, err := s.cartRepo.DeleteInactiveBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete inactive carts: %w", err)
	}

	log.Printf("[CRON] %d inactive carts removed", deleted)

	return &dto.CleanupResult{DeletedCarts: deleted}, nil
}

func (s *cronServiceImpl) FeaturedProductsRefresh(ctx context.Context) (*dto.FeaturedRefreshResult, error) {
	since := time.Now().Add(-featuredWindow)
	orders, err := s.orderRepo.FindPaidQualifying(ctx, repository.DateRange{Start: &since}, featuredOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("find recent orders: %w", err)
	}

	sales := aggregateProductSales(orders)

	// Quantity descending, product id ascending on ties, so the top 10 is
	// stable across runs.
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Sales != sales[j].Sales {
			return sales[i].Sales > sales[j].Sales
		}
		return sales[i].ProductID < sales[j].ProductID
	})
	if len(sales) > 10 {
		sales = sales[:10]
	}

	target := make(map[string]bool, len(sales))
	for _, p := range sales {
		target[p.ProductID] = true
	}

	currentIDs, err := s.productRepo.FindFeaturedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("find featured products: %w", err)
	}
	current := make(map[string]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}

	unset := make([]string, 0)
	for _, id := range currentIDs {
		if !target[id] {
			unset = append(unset, id)
		}
	}
	set := make([]string, 0)
	for _, p := range sales {
		if !current[p.ProductID] {
			set = append(set, p.ProductID)
		}
	}

	if err := s.productRepo.ApplyFeaturedDiff(ctx, unset, set); err != nil {
		return nil, fmt.Errorf("apply featured diff: %w", err)
	}

	log.Printf("[CRON] featured set refreshed: %d set, %d unset", len(set), len(unset))

	return &dto.FeaturedRefreshResult{
		FeaturedUpdated: len(set) + len(unset),
		TopProducts:     sales,
	}, nil
}

func (s *cronServiceImpl) WeeklyReport(ctx context.Context) (*dto.WeeklyReportResult, error) {
	since := time.Now().Add(-weeklyWindow)
	dr := repository.DateRange{Start: &since}

	totalOrders, err := s.orderRepo.CountCreated(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.orderRepo.SumPaidQualifyingTotal(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	newCustomers, err := s.userRepo.CountNewCustomers(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count new customers: %w", err)
	}
	activeProducts, err := s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}

	orders, err := s.orderRepo.FindPaidQualifying(ctx, dr, 0)
	if err != nil {
		return nil, fmt.Errorf("find week orders: %w", err)
	}
	sales := aggregateProductSales(orders)
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Sales != sales[j].Sales {
			return sales[i].Sales > sales[j].Sales
		}
		return sales[i].ProductID < sales[j].ProductID
	})
	topProduct := dto.ProductSales{Name: "N/A"}
	if len(sales) > 0 {
		topProduct = sales[0]
	}

	averageOrder := 0.0
	if totalOrders > 0 {
		averageOrder = revenue / float64(totalOrders)
	}

	html := weeklyReportEmail(weeklyReportData{
		From:           since,
		To:             time.Now(),
		TotalOrders:    totalOrders,
		Revenue:        revenue,
		AverageOrder:   averageOrder,
		NewCustomers:   newCustomers,
		ActiveProducts: activeProducts,
		TopProduct:     topProduct,
	})

	sent, _ := s.sendToAdmins(ctx, "KZSTORE - Weekly Report", html)

	return &dto.WeeklyReportResult{
		ReportSent:  sent > 0,
		EmailsSent:  sent,
		TotalOrders: totalOrders,
	}, nil
}

// aggregateProductSales sums quantity sold per product over the orders'
// line items. Orders with undecodable items are logged and skipped.
func aggregateProductSales(orders []*model.Order) []dto.ProductSales {
	counts := make(map[string]*dto.ProductSales)
	ids := make([]string, 0)

	for _, order := range orders {
		items, err := model.DecodeLineItems(order.Items)
		if err != nil {
			log.Printf("[CRON] order %d has invalid items: %v", order.ID, err)
			continue
		}
		for _, item := range items {
			entry, ok := counts[item.ProductID]
			if !ok {
				entry = &dto.ProductSales{ProductID: item.ProductID, Name: item.Name}
				counts[item.ProductID] = entry
				ids = append(ids, item.ProductID)
			}
			entry.Sales += item.Quantity
		}
	}

	sales := make([]dto.ProductSales, 0, len(ids))
	for _, id := range ids {
		sales = append(sales, *counts[id])
	}
	return sales
}

func displayName(name string) string {
	if name == "" {
		return "Customer"
	}
	return name
}
