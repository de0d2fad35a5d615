package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSource reads the dashboard entities through gorm.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func withinWindow(column string, w Window) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !w.From.IsZero() {
			db = db.Where(column+" >= ?", w.From)
		}
		if !w.To.IsZero() {
			db = db.Where(column+" < ?", w.To)
		}
		return db
	}
}

func onlyActive(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_active = ?", true)
	}
}

type productQuantity struct {
	ProductId int
	Quantity  int64
}

func (s *GormSource) SumTransactions(ctx context.Context, status models.TransactionStatus, w Window) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", status).
		Scopes(withinWindow("created_at", w)).
		Scan(&total).Error
	return total, err
}

func (s *GormSource) CountProducts(ctx context.Context, w Window) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Scopes(withinWindow("created_at", w)).
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountCustomerOrders(ctx context.Context, statuses []models.OrderStatus, w Window) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.CustomerOrder{}).Scopes(withinWindow("created_at", w))
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Count(&count).Error
	return count, err
}

func (s *GormSource) CountUsers(ctx context.Context, w Window) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Scopes(withinWindow("created_at", w)).
		Count(&count).Error
	return count, err
}

func (s *GormSource) ActiveProductsWithOrderItems(ctx context.Context, w Window) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("products")).
		Preload("OrderItems", withinWindow("created_at", w)).
		Order("id").
		Find(&products).Error
	return products, err
}

func (s *GormSource) ActiveMaterialsWithBoms(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("materials")).
		Preload("Boms").
		Order("id").
		Find(&materials).Error
	return materials, err
}

func (s *GormSource) OrderedQuantityByProduct(ctx context.Context, w Window) (map[int]int64, error) {
	var rows []productQuantity
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS quantity").
		Scopes(withinWindow("created_at", w)).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return quantitiesByProduct(rows), nil
}

func (s *GormSource) CompletedProductionByProduct(ctx context.Context, w Window) (map[int]int64, error) {
	var rows []productQuantity
	err := s.db.WithContext(ctx).Model(&models.ProductionOrder{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS quantity").
		Where("status = ?", models.ProductionOrderStatusCompleted).
		Scopes(withinWindow("start_date", w)).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return quantitiesByProduct(rows), nil
}

func quantitiesByProduct(rows []productQuantity) map[int]int64 {
	result := make(map[int]int64, len(rows))
	for _, row := range rows {
		result[row.ProductId] += row.Quantity
	}
	return result
}

func (s *GormSource) ActiveSuppliersWithPurchaseOrders(ctx context.Context, w Window) ([]models.Supplier, error) {
	hasOrders := s.db.Model(&models.PurchaseOrder{}).
		Select("1").
		Where("purchase_orders.supplier_id = suppliers.id").
		Scopes(withinWindow("purchase_orders.order_date", w))

	var suppliers []models.Supplier
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("suppliers")).
		Where("EXISTS (?)", hasOrders).
		Preload("PurchaseOrders", withinWindow("order_date", w)).
		Order("id").
		Find(&suppliers).Error
	return suppliers, err
}

func (s *GormSource) ProductionOrderStatusCounts(ctx context.Context) (map[models.ProductionOrderStatus]int64, error) {
	var rows []struct {
		Status models.ProductionOrderStatus
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&models.ProductionOrder{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ProductionOrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (s *GormSource) ActiveCategoriesWithOrderItems(ctx context.Context, w Window) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("categories")).
		Preload("Products").
		Preload("Products.OrderItems", withinWindow("created_at", w)).
		Order("id").
		Find(&categories).Error
	return categories, err
}

func (s *GormSource) SumCustomerOrders(ctx context.Context, w Window) (int64, decimal.Decimal, error) {
	var row struct {
		Orders  int64
		Revenue decimal.Decimal
	}
	err := s.db.WithContext(ctx).Model(&models.CustomerOrder{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Scopes(withinWindow("order_date", w)).
		Scan(&row).Error
	return row.Orders, row.Revenue, err
}

func (s *GormSource) RecentCustomerOrders(ctx context.Context, limit int) ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("order_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *GormSource) QualityChecks(ctx context.Context, w Window) ([]models.QualityCheck, error) {
	var checks []models.QualityCheck
	err := s.db.WithContext(ctx).
		Scopes(withinWindow("check_date", w)).
		Order("check_date").
		Find(&checks).Error
	return checks, err
}

func (s *GormSource) ActiveWorkCentersWithOperations(ctx context.Context, w Window) ([]models.WorkCenter, error) {
	hasOperations := s.db.Model(&models.Operation{}).
		Select("1").
		Where("operations.work_center_id = work_centers.id").
		Scopes(withinWindow("operations.start_time", w))

	var workCenters []models.WorkCenter
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("work_centers")).
		Where("EXISTS (?)", hasOperations).
		Preload("Operations", withinWindow("start_time", w)).
		Preload("Operations.ProductionOrder").
		Order("id").
		Find(&workCenters).Error
	return workCenters, err
}

func (s *GormSource) ActiveCustomersWithOrders(ctx context.Context, w Window) ([]models.Customer, error) {
	hasOrders := s.db.Model(&models.CustomerOrder{}).
		Select("1").
		Where("customer_orders.customer_id = customers.id").
		Scopes(withinWindow("customer_orders.order_date", w))

	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Scopes(onlyActive("customers")).
		Where("EXISTS (?)", hasOrders).
		Preload("Orders").
		Order("id").
		Find(&customers).Error
	return customers, err
}

func (s *GormSource) CountLowStockProducts(ctx context.Context, ratio decimal.Decimal) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Scopes(onlyActive("products")).
		Where("current_stock <= minimum_stock_level * ?", ratio).
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountLowStockMaterials(ctx context.Context, ratio decimal.Decimal) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Material{}).
		Scopes(onlyActive("materials")).
		Where("current_stock <= minimum_stock_level * ?", ratio).
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountOverdueProductionOrders(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ProductionOrder{}).
		Where("due_date < ? AND status <> ?", now, models.ProductionOrderStatusCompleted).
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountQualityIssues(ctx context.Context, w Window) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.QualityCheck{}).
		Scopes(withinWindow("check_date", w)).
		Where("defects_found IS NOT NULL AND TRIM(defects_found) <> ''").
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountOverdueCustomerOrders(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.CustomerOrder{}).
		Where("required_date < ? AND status <> ?", now, models.OrderStatusCompleted).
		Count(&count).Error
	return count, err
}

func (s *GormSource) CountPurchaseOrders(ctx context.Context, status models.PurchaseOrderStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.PurchaseOrder{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
