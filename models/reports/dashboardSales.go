package reports

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

type TopProduct struct {
	ID           int             `json:"id"`
	Sku          string          `json:"sku"`
	Name         string          `json:"name"`
	SalesCount   int64           `json:"salesCount"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin float64         `json:"profitMargin"`
}

type CategorySales struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

// MonthlySales carries revenue as a fixed two-digit string.
type MonthlySales struct {
	Month   string `json:"month"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

// WeeklySales carries revenue as a decimal, unlike MonthlySales.
type WeeklySales struct {
	Week    string          `json:"week"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type RecentOrder struct {
	ID           int                `json:"id"`
	OrderNumber  string             `json:"orderNumber"`
	CustomerName string             `json:"customerName"`
	Date         time.Time          `json:"date"`
	Amount       decimal.Decimal    `json:"amount"`
	Status       models.OrderStatus `json:"status"`
}

type TopCustomer struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	OrderCount        int             `json:"orderCount"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	LastOrderDate     time.Time       `json:"lastOrderDate"`
}

// GetTopPerformingProducts ranks products sold in the trailing 3 months by revenue.
func (d *Dashboard) GetTopPerformingProducts(ctx context.Context, limit int) (top []TopProduct, err error) {
	ctx, done := d.startReport(ctx, "topProducts")
	defer func() { done(err) }()

	products, err := d.source.ActiveProductsWithOrderItems(ctx, trailingMonths(d.currentTime(), 3))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	top = []TopProduct{}
	for _, product := range products {
		if len(product.OrderItems) == 0 {
			continue
		}
		var salesCount int64
		revenue := decimal.Zero
		for _, item := range product.OrderItems {
			salesCount += int64(item.Quantity)
			revenue = revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		cost := product.UnitCost.Mul(decimal.NewFromInt(salesCount))
		profit := revenue.Sub(cost)
		top = append(top, TopProduct{
			ID:           product.ID,
			Sku:          product.Sku,
			Name:         product.Name,
			SalesCount:   salesCount,
			Revenue:      revenue,
			Cost:         cost,
			Profit:       profit,
			ProfitMargin: percentOf(profit, revenue),
		})
	}
	slices.SortStableFunc(top, func(a, b TopProduct) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	return truncate(top, normalizeLimit(limit)), nil
}

// GetSalesByCategory totals order lines of the trailing 6 months per category.
func (d *Dashboard) GetSalesByCategory(ctx context.Context) (sales []CategorySales, err error) {
	ctx, done := d.startReport(ctx, "salesByCategory")
	defer func() { done(err) }()

	categories, err := d.source.ActiveCategoriesWithOrderItems(ctx, trailingMonths(d.currentTime(), 6))
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}

	sales = make([]CategorySales, 0, len(categories))
	grandTotal := decimal.Zero
	for _, category := range categories {
		entry := CategorySales{ID: category.ID, Name: category.Name, Revenue: decimal.Zero}
		for _, product := range category.Products {
			for _, item := range product.OrderItems {
				entry.Quantity += int64(item.Quantity)
				entry.Revenue = entry.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
		grandTotal = grandTotal.Add(entry.Revenue)
		sales = append(sales, entry)
	}
	for i := range sales {
		sales[i].Percentage = percentOf(sales[i].Revenue, grandTotal)
	}
	slices.SortStableFunc(sales, func(a, b CategorySales) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	return sales, nil
}

// GetMonthlySales returns the last 12 calendar months, oldest first, current month included.
func (d *Dashboard) GetMonthlySales(ctx context.Context) (series []MonthlySales, err error) {
	ctx, done := d.startReport(ctx, "monthlySales")
	defer func() { done(err) }()

	thisMonth := startOfMonth(d.currentTime())
	series = make([]MonthlySales, 0, monthlySeriesLength)
	for i := monthlySeriesLength - 1; i >= 0; i-- {
		from := thisMonth.AddDate(0, -i, 0)
		orders, revenue, err := d.source.SumCustomerOrders(ctx, Window{From: from, To: from.AddDate(0, 1, 0)})
		if err != nil {
			return nil, fmt.Errorf("monthly sales for %s: %w", monthLabel(from), err)
		}
		series = append(series, MonthlySales{
			Month:   monthLabel(from),
			Orders:  orders,
			Revenue: revenue.StringFixed(2),
		})
	}
	return series, nil
}

// GetWeeklySales returns the last 8 Sunday-based weeks, oldest first, current week included.
func (d *Dashboard) GetWeeklySales(ctx context.Context) (series []WeeklySales, err error) {
	ctx, done := d.startReport(ctx, "weeklySales")
	defer func() { done(err) }()

	thisWeek := startOfWeek(d.currentTime())
	series = make([]WeeklySales, 0, weeklySeriesLength)
	for i := weeklySeriesLength - 1; i >= 0; i-- {
		from := thisWeek.AddDate(0, 0, -7*i)
		orders, revenue, err := d.source.SumCustomerOrders(ctx, Window{From: from, To: from.AddDate(0, 0, 7)})
		if err != nil {
			return nil, fmt.Errorf("weekly sales for %s: %w", weekLabel(from), err)
		}
		series = append(series, WeeklySales{
			Week:    weekLabel(from),
			Orders:  orders,
			Revenue: revenue,
		})
	}
	return series, nil
}

func (d *Dashboard) GetRecentOrders(ctx context.Context, limit int) (recent []RecentOrder, err error) {
	ctx, done := d.startReport(ctx, "recentOrders")
	defer func() { done(err) }()

	orders, err := d.source.RecentCustomerOrders(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	recent = make([]RecentOrder, 0, len(orders))
	for _, order := range orders {
		entry := RecentOrder{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Date:        order.OrderDate,
			Amount:      order.TotalAmount,
			Status:      order.Status,
		}
		if order.Customer != nil {
			entry.CustomerName = order.Customer.Name
		}
		recent = append(recent, entry)
	}
	return recent, nil
}

// GetTopCustomers ranks customers active in the trailing 6 months by lifetime spend.
func (d *Dashboard) GetTopCustomers(ctx context.Context, limit int) (top []TopCustomer, err error) {
	ctx, done := d.startReport(ctx, "topCustomers")
	defer func() { done(err) }()

	now := d.currentTime()
	window := trailingMonths(now, 6)
	customers, err := d.source.ActiveCustomersWithOrders(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}

	top = []TopCustomer{}
	for _, customer := range customers {
		if !slices.ContainsFunc(customer.Orders, func(o models.CustomerOrder) bool { return window.Contains(o.OrderDate) }) {
			continue
		}
		entry := TopCustomer{
			ID:                customer.ID,
			Name:              customer.Name,
			Email:             customer.Email,
			OrderCount:        len(customer.Orders),
			TotalSpent:        decimal.Zero,
			AverageOrderValue: decimal.Zero,
			LastOrderDate:     now,
		}
		var last time.Time
		for _, order := range customer.Orders {
			entry.TotalSpent = entry.TotalSpent.Add(order.TotalAmount)
			if order.OrderDate.After(last) {
				last = order.OrderDate
			}
		}
		if entry.OrderCount > 0 {
			entry.AverageOrderValue = entry.TotalSpent.Div(decimal.NewFromInt(int64(entry.OrderCount))).Round(2)
			entry.LastOrderDate = last
		}
		top = append(top, entry)
	}
	slices.SortStableFunc(top, func(a, b TopCustomer) int {
		return b.TotalSpent.Cmp(a.TotalSpent)
	})
	return truncate(top, normalizeLimit(limit)), nil
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
