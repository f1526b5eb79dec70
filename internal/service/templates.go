package service

import (
	"fmt"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"strings"
	"time"
)

const emailFooter = `<hr><p style="color: #666; font-size: 12px;">KZSTORE - Tech &amp; Electronics | www.kzstore.ao</p>`

func lowStockAlertEmail(products []dto.LowStockProduct) string {
	var list strings.Builder
	for _, p := range products {
		status := "LOW"
		if p.Stock == 0 {
			status = "OUT OF STOCK"
		}
		sku := p.SKU
		if sku == "" {
			sku = "N/A"
		}
		fmt.Fprintf(&list, "%s - %s (SKU: %s)\n   Current stock: %d | Minimum: %d\n\n",
			status, p.Name, sku, p.Stock, p.MinStock)
	}

	return fmt.Sprintf(`<h2>Low Stock Alert</h2>
<p>The following products need restocking:</p>
<pre style="font-family: monospace; background: #f5f5f5; padding: 15px; border-radius: 5px;">
%s</pre>
<p><strong>Total products affected:</strong> %d</p>
%s`, list.String(), len(products), emailFooter)
}

func cartRecoveryEmail(name string, items []model.LineItem, total float64, discount int, recoveryLink string) string {
	var list strings.Builder
	for _, item := range items {
		fmt.Fprintf(&list, "- %s (%dx) - %.2f AOA\n", item.Name, item.Quantity, item.UnitPrice)
	}

	discountLine := ""
	if discount > 0 {
		discountLine = fmt.Sprintf("<p><strong>Complete your order now and get %d%% off!</strong></p>", discount)
	}

	return fmt.Sprintf(`<h2>Hello %s!</h2>
<p>We noticed you left some products in your cart:</p>
<pre style="font-family: monospace; background: #f5f5f5; padding: 15px; border-radius: 5px;">
%s</pre>
<p><strong>Total:</strong> %.2f AOA</p>
%s<p>
  <a href="%s" style="display: inline-block; background: #E31E24; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">
    Complete Your Purchase
  </a>
</p>
%s`, displayName(name), list.String(), total, discountLine, recoveryLink, emailFooter)
}

type weeklyReportData struct {
	From           time.Time
	To             time.Time
	TotalOrders    int64
	Revenue        float64
	AverageOrder   float64
	NewCustomers   int64
	ActiveProducts int64
	TopProduct     dto.ProductSales
}

func weeklyReportEmail(d weeklyReportData) string {
	return fmt.Sprintf(`<h2>KZSTORE Weekly Report</h2>
<p><strong>Period:</strong> %s - %s</p>

<h3>Sales Summary</h3>
<ul>
  <li><strong>Total Orders:</strong> %d</li>
  <li><strong>Total Revenue:</strong> %.2f AOA</li>
  <li><strong>Average Order:</strong> %.2f AOA</li>
</ul>

<h3>Customers and Products</h3>
<ul>
  <li><strong>New Customers:</strong> %d</li>
  <li><strong>Active Products:</strong> %d</li>
  <li><strong>Top Seller:</strong> %s (%d units)</li>
</ul>
%s`,
		d.From.Format("2006-01-02"), d.To.Format("2006-01-02"),
		d.TotalOrders, d.Revenue, d.AverageOrder,
		d.NewCustomers, d.ActiveProducts,
		d.TopProduct.Name, d.TopProduct.Sales,
		emailFooter)
}
