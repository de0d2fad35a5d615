package reports

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Stats struct {
	TotalRevenue   string `json:"totalRevenue"`
	TotalProducts  int64  `json:"totalProducts"`
	ActiveOrders   int64  `json:"activeOrders"`
	TotalUsers     int64  `json:"totalUsers"`
	RevenueGrowth  string `json:"revenueGrowth"`
	ProductsGrowth string `json:"productsGrowth"`
	OrdersGrowth   string `json:"ordersGrowth"`
	UsersGrowth    string `json:"usersGrowth"`
}

// GetStats returns the headline totals with growth against the previous calendar month.
func (d *Dashboard) GetStats(ctx context.Context) (stats *Stats, err error) {
	ctx, done := d.startReport(ctx, "stats")
	defer func() { done(err) }()

	prev := previousMonthWindow(d.currentTime())
	var (
		revenue, prevRevenue   decimal.Decimal
		products, prevProducts int64
		orders, prevOrders     int64
		users, prevUsers       int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenue, err = d.source.SumTransactions(gctx, models.TransactionStatusCompleted, Window{})
		return err
	})
	g.Go(func() (err error) {
		prevRevenue, err = d.source.SumTransactions(gctx, models.TransactionStatusCompleted, prev)
		return err
	})
	g.Go(func() (err error) {
		products, err = d.source.CountProducts(gctx, Window{})
		return err
	})
	g.Go(func() (err error) {
		prevProducts, err = d.source.CountProducts(gctx, prev)
		return err
	})
	g.Go(func() (err error) {
		orders, err = d.source.CountCustomerOrders(gctx, models.ActiveOrderStatuses, Window{})
		return err
	})
	g.Go(func() (err error) {
		prevOrders, err = d.source.CountCustomerOrders(gctx, nil, prev)
		return err
	})
	g.Go(func() (err error) {
		users, err = d.source.CountUsers(gctx, Window{})
		return err
	})
	g.Go(func() (err error) {
		prevUsers, err = d.source.CountUsers(gctx, prev)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	return &Stats{
		TotalRevenue:   revenue.StringFixed(2),
		TotalProducts:  products,
		ActiveOrders:   orders,
		TotalUsers:     users,
		RevenueGrowth:  calculateGrowth(revenue, prevRevenue),
		ProductsGrowth: calculateGrowth(decimal.NewFromInt(products), decimal.NewFromInt(prevProducts)),
		OrdersGrowth:   calculateGrowth(decimal.NewFromInt(orders), decimal.NewFromInt(prevOrders)),
		UsersGrowth:    calculateGrowth(decimal.NewFromInt(users), decimal.NewFromInt(prevUsers)),
	}, nil
}
