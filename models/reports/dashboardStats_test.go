package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lastMonth = time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)

func TestStatsOrdersGrowthSentinel(t *testing.T) {
	src := newMemorySource()
	for i := 1; i <= 5; i++ {
		src.customerOrders = append(src.customerOrders, models.CustomerOrder{
			ID:        i,
			Status:    models.OrderStatusPending,
			CreatedAt: daysAgo(2),
		})
	}

	stats, err := newTestDashboard(src).GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.ActiveOrders)
	assert.Equal(t, "+100%", stats.OrdersGrowth)
	assert.Equal(t, "+100%", stats.RevenueGrowth)
	assert.Equal(t, "0.00", stats.TotalRevenue)
}

func TestStatsTotalsAndGrowth(t *testing.T) {
	src := newMemorySource()
	src.transactions = []models.Transaction{
		{Amount: dec("100.10"), Status: models.TransactionStatusCompleted, CreatedAt: lastMonth},
		{Amount: dec("99.90"), Status: models.TransactionStatusCompleted, CreatedAt: lastMonth},
		{Amount: dec("100"), Status: models.TransactionStatusCompleted, CreatedAt: daysAgo(1)},
		{Amount: dec("999"), Status: models.TransactionStatusPending, CreatedAt: daysAgo(1)},
		{Amount: dec("5"), Status: models.TransactionStatusFailed, CreatedAt: lastMonth},
	}
	src.products = []models.Product{
		{ID: 1, CreatedAt: lastMonth},
		{ID: 2, CreatedAt: lastMonth},
		{ID: 3, CreatedAt: daysAgo(1)},
		{ID: 4, CreatedAt: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}
	src.customerOrders = []models.CustomerOrder{
		{ID: 1, Status: models.OrderStatusPending, CreatedAt: lastMonth},
		{ID: 2, Status: models.OrderStatusCompleted, CreatedAt: lastMonth},
		{ID: 3, Status: models.OrderStatusInProgress, CreatedAt: daysAgo(1)},
		{ID: 4, Status: models.OrderStatusCancelled, CreatedAt: daysAgo(1)},
	}
	src.users = []models.User{
		{ID: 1, CreatedAt: lastMonth},
		{ID: 2, CreatedAt: lastMonth},
		{ID: 3, CreatedAt: lastMonth},
		{ID: 4, CreatedAt: lastMonth},
		{ID: 5, CreatedAt: daysAgo(1)},
	}

	stats, err := newTestDashboard(src).GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalRevenue:   "300.00",
		TotalProducts:  4,
		ActiveOrders:   2,
		TotalUsers:     5,
		RevenueGrowth:  "+50.0%",
		ProductsGrowth: "+100.0%",
		OrdersGrowth:   "+0.0%",
		UsersGrowth:    "+25.0%",
	}, stats)
}

func TestStatsFailsFast(t *testing.T) {
	src := newMemorySource()
	src.failures["CountUsers"] = errors.New("users table locked")

	stats, err := newTestDashboard(src).GetStats(context.Background())

	require.Error(t, err)
	assert.Nil(t, stats)
	assert.ErrorContains(t, err, "users table locked")
}
