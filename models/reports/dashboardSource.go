package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

// Window is the half-open range [From, To). A zero bound is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// Source is the read-only data access the dashboard is computed from.
// Implementations must not mutate anything.
type Source interface {
	SumTransactions(ctx context.Context, status models.TransactionStatus, w Window) (decimal.Decimal, error)
	CountProducts(ctx context.Context, w Window) (int64, error)
	// CountCustomerOrders counts orders created in w; an empty status list matches every status.
	CountCustomerOrders(ctx context.Context, statuses []models.OrderStatus, w Window) (int64, error)
	CountUsers(ctx context.Context, w Window) (int64, error)

	// ActiveProductsWithOrderItems returns active products with only their order lines created in w.
	ActiveProductsWithOrderItems(ctx context.Context, w Window) ([]models.Product, error)
	ActiveMaterialsWithBoms(ctx context.Context) ([]models.Material, error)
	// OrderedQuantityByProduct sums order line quantities created in w, keyed by product id.
	OrderedQuantityByProduct(ctx context.Context, w Window) (map[int]int64, error)
	// CompletedProductionByProduct sums quantities of COMPLETED production orders started in w, keyed by product id.
	CompletedProductionByProduct(ctx context.Context, w Window) (map[int]int64, error)

	// ActiveSuppliersWithPurchaseOrders returns active suppliers having a purchase order dated in w,
	// with only those purchase orders loaded.
	ActiveSuppliersWithPurchaseOrders(ctx context.Context, w Window) ([]models.Supplier, error)
	ProductionOrderStatusCounts(ctx context.Context) (map[models.ProductionOrderStatus]int64, error)
	// ActiveCategoriesWithOrderItems returns active categories with their products and the order lines created in w.
	ActiveCategoriesWithOrderItems(ctx context.Context, w Window) ([]models.Category, error)
	// SumCustomerOrders counts customer orders dated in w and sums their totals.
	SumCustomerOrders(ctx context.Context, w Window) (int64, decimal.Decimal, error)
	// RecentCustomerOrders returns the newest orders by order date with the customer loaded.
	RecentCustomerOrders(ctx context.Context, limit int) ([]models.CustomerOrder, error)
	QualityChecks(ctx context.Context, w Window) ([]models.QualityCheck, error)
	// ActiveWorkCentersWithOperations returns active work centers having an operation starting in w,
	// with those operations and their production orders loaded.
	ActiveWorkCentersWithOperations(ctx context.Context, w Window) ([]models.WorkCenter, error)
	// ActiveCustomersWithOrders returns active customers having an order dated in w, with ALL their orders loaded.
	ActiveCustomersWithOrders(ctx context.Context, w Window) ([]models.Customer, error)

	CountLowStockProducts(ctx context.Context, ratio decimal.Decimal) (int64, error)
	CountLowStockMaterials(ctx context.Context, ratio decimal.Decimal) (int64, error)
	CountOverdueProductionOrders(ctx context.Context, now time.Time) (int64, error)
	CountQualityIssues(ctx context.Context, w Window) (int64, error)
	CountOverdueCustomerOrders(ctx context.Context, now time.Time) (int64, error)
	CountPurchaseOrders(ctx context.Context, status models.PurchaseOrderStatus) (int64, error)
}
