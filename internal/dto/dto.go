package dto

import "time"

// -------- analytics --------

type CustomerCLV struct {
	CustomerID        string    `json:"customer_id"`
	Email             string    `json:"email"`
	CLV               float64   `json:"clv"`
	TotalOrders       int       `json:"total_orders"`
	AverageOrderValue float64   `json:"average_order_value"`
	FirstPurchase     time.Time `json:"first_purchase"`
	LastPurchase      time.Time `json:"last_purchase"`
	LifetimeDays      int       `json:"customer_lifetime_days"`
}

type CLVReport struct {
	AverageCLV        float64       `json:"average_clv"`
	TotalCustomers    int           `json:"total_customers"`
	TotalRevenue      float64       `json:"total_revenue"`
	AverageOrderValue float64       `json:"average_order_value"`
	Customers         []CustomerCLV `json:"customers"`
}

type ConversionReport struct {
	ConversionRate   float64 `json:"conversion_rate"`
	TotalOrders      int64   `json:"total_orders"`
	TotalVisitors    int     `json:"total_visitors"`
	CartRecoveryRate float64 `json:"cart_recovery_rate"`
	AbandonedCarts   int64   `json:"abandoned_carts"`
	RecoveredCarts   int64   `json:"recovered_carts"`
}

type PeriodRevenue struct {
	Period            string  `json:"period"`
	Revenue           float64 `json:"revenue"`
	Orders            int     `json:"orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type PaymentMethodRevenue struct {
	PaymentMethod string  `json:"payment_method"`
	Revenue       float64 `json:"revenue"`
}

type RevenueReport struct {
	TotalRevenue      float64                `json:"total_revenue"`
	NetRevenue        float64                `json:"net_revenue"`
	TotalShipping     float64                `json:"total_shipping"`
	TotalDiscounts    float64                `json:"total_discounts"`
	TotalOrders       int                    `json:"total_orders"`
	AverageOrderValue float64                `json:"average_order_value"`
	ByPeriod          []PeriodRevenue        `json:"revenue_by_period"`
	ByPaymentMethod   []PaymentMethodRevenue `json:"revenue_by_payment_method"`
}

type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
	DropOff    int64   `json:"drop_off"`
}

type FunnelReport struct {
	Funnel            []FunnelStage `json:"funnel"`
	OverallConversion float64       `json:"overall_conversion"`
	BiggestDropOff    FunnelStage   `json:"biggest_drop_off"`
}

// -------- cron job results --------

type LowStockProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
}

type LowStockResult struct {
	AlertsSent      int               `json:"alerts_sent"`
	AlertsFailed    int               `json:"alerts_failed"`
	ProductsChecked int               `json:"products_checked"`
	LowStockItems   []LowStockProduct `json:"low_stock_products"`
}

type CartRecoveryResult struct {
	CartsProcessed int `json:"carts_processed"`
	EmailsSent     int `json:"emails_sent"`
	EmailsFailed   int `json:"emails_failed"`
	Skipped        int `json:"skipped"`
}

type DailyMetricsResult struct {
	MetricsCalculated []string  `json:"metrics_calculated"`
	Date              time.Time `json:"date"`
}

type CleanupResult struct {
	DeletedCarts int64 `json:"deleted_carts"`
}

type ProductSales struct {
	ProductID string `json:"id"`
	Name      string `json:"name,omitempty"`
	Sales     int    `json:"sales"`
}

type FeaturedRefreshResult struct {
	FeaturedUpdated int            `json:"featured_updated"`
	TopProducts     []ProductSales `json:"top_products"`
}

type WeeklyReportResult struct {
	ReportSent  bool  `json:"report_sent"`
	EmailsSent  int   `json:"emails_sent"`
	TotalOrders int64 `json:"total_orders"`
}

// -------- job runner --------

type JobInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Path        string     `json:"path"`
	Schedule    string     `json:"schedule"`
	Enabled     bool       `json:"enabled"`
	Status      string     `json:"status"`
	LastRun     *time.Time `json:"last_run,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

type JobOutcome struct {
	JobID  string      `json:"job_id"`
	Status string      `json:"status"` // success | error
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// -------- cart tracking --------

type TrackCartRequest struct {
	UserID    string     `json:"user_id"`
	UserEmail string     `json:"user_email"`
	UserName  string     `json:"user_name"`
	Items     []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type MarkRecoveredRequest struct {
	UserEmail string `json:"user_email"`
	OrderID   string `json:"order_id"`
}
