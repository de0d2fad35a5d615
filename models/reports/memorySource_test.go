package reports

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

// memorySource is an in-memory Source backed by plain slices.
// Setting failures[method] makes that method return the error.
type memorySource struct {
	mu sync.Mutex

	categories       []models.Category
	products         []models.Product
	orderItems       []models.OrderItem
	materials        []models.Material
	boms             []models.Bom
	productionOrders []models.ProductionOrder
	workCenters      []models.WorkCenter
	operations       []models.Operation
	suppliers        []models.Supplier
	purchaseOrders   []models.PurchaseOrder
	customers        []models.Customer
	customerOrders   []models.CustomerOrder
	qualityChecks    []models.QualityCheck
	transactions     []models.Transaction
	users            []models.User

	failures map[string]error
	calls    map[string]int
}

func newMemorySource() *memorySource {
	return &memorySource{failures: map[string]error{}, calls: map[string]int{}}
}

func (m *memorySource) fail(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	return m.failures[method]
}

func (m *memorySource) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func (m *memorySource) SumTransactions(ctx context.Context, status models.TransactionStatus, w Window) (decimal.Decimal, error) {
	if err := m.fail("SumTransactions"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range m.transactions {
		if t.Status == status && w.Contains(t.CreatedAt) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *memorySource) CountProducts(ctx context.Context, w Window) (int64, error) {
	if err := m.fail("CountProducts"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range m.products {
		if w.Contains(p.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) CountCustomerOrders(ctx context.Context, statuses []models.OrderStatus, w Window) (int64, error) {
	if err := m.fail("CountCustomerOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range m.customerOrders {
		if !w.Contains(o.CreatedAt) {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, o.Status) {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memorySource) CountUsers(ctx context.Context, w Window) (int64, error) {
	if err := m.fail("CountUsers"); err != nil {
		return 0, err
	}
	var n int64
	for _, u := range m.users {
		if w.Contains(u.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) itemsForProduct(productId int, w Window) []models.OrderItem {
	var items []models.OrderItem
	for _, item := range m.orderItems {
		if item.ProductId == productId && w.Contains(item.CreatedAt) {
			items = append(items, item)
		}
	}
	return items
}

func (m *memorySource) ActiveProductsWithOrderItems(ctx context.Context, w Window) ([]models.Product, error) {
	if err := m.fail("ActiveProductsWithOrderItems"); err != nil {
		return nil, err
	}
	var products []models.Product
	for _, p := range m.products {
		if !p.Active() {
			continue
		}
		p.OrderItems = m.itemsForProduct(p.ID, w)
		products = append(products, p)
	}
	return products, nil
}

func (m *memorySource) ActiveMaterialsWithBoms(ctx context.Context) ([]models.Material, error) {
	if err := m.fail("ActiveMaterialsWithBoms"); err != nil {
		return nil, err
	}
	var materials []models.Material
	for _, mat := range m.materials {
		if !mat.Active() {
			continue
		}
		mat.Boms = nil
		for _, bom := range m.boms {
			if bom.MaterialId == mat.ID {
				mat.Boms = append(mat.Boms, bom)
			}
		}
		materials = append(materials, mat)
	}
	return materials, nil
}

func (m *memorySource) OrderedQuantityByProduct(ctx context.Context, w Window) (map[int]int64, error) {
	if err := m.fail("OrderedQuantityByProduct"); err != nil {
		return nil, err
	}
	result := map[int]int64{}
	for _, item := range m.orderItems {
		if w.Contains(item.CreatedAt) {
			result[item.ProductId] += int64(item.Quantity)
		}
	}
	return result, nil
}

func (m *memorySource) CompletedProductionByProduct(ctx context.Context, w Window) (map[int]int64, error) {
	if err := m.fail("CompletedProductionByProduct"); err != nil {
		return nil, err
	}
	result := map[int]int64{}
	for _, po := range m.productionOrders {
		if po.Status == models.ProductionOrderStatusCompleted && w.Contains(po.StartDate) {
			result[po.ProductId] += int64(po.Quantity)
		}
	}
	return result, nil
}

func (m *memorySource) ActiveSuppliersWithPurchaseOrders(ctx context.Context, w Window) ([]models.Supplier, error) {
	if err := m.fail("ActiveSuppliersWithPurchaseOrders"); err != nil {
		return nil, err
	}
	var suppliers []models.Supplier
	for _, s := range m.suppliers {
		if !s.Active() {
			continue
		}
		s.PurchaseOrders = nil
		for _, po := range m.purchaseOrders {
			if po.SupplierId == s.ID && w.Contains(po.OrderDate) {
				s.PurchaseOrders = append(s.PurchaseOrders, po)
			}
		}
		if len(s.PurchaseOrders) > 0 {
			suppliers = append(suppliers, s)
		}
	}
	return suppliers, nil
}

func (m *memorySource) ProductionOrderStatusCounts(ctx context.Context) (map[models.ProductionOrderStatus]int64, error) {
	if err := m.fail("ProductionOrderStatusCounts"); err != nil {
		return nil, err
	}
	counts := map[models.ProductionOrderStatus]int64{}
	for _, po := range m.productionOrders {
		counts[po.Status]++
	}
	return counts, nil
}

func (m *memorySource) ActiveCategoriesWithOrderItems(ctx context.Context, w Window) ([]models.Category, error) {
	if err := m.fail("ActiveCategoriesWithOrderItems"); err != nil {
		return nil, err
	}
	var categories []models.Category
	for _, c := range m.categories {
		if !c.Active() {
			continue
		}
		c.Products = nil
		for _, p := range m.products {
			if p.CategoryId == c.ID {
				p.OrderItems = m.itemsForProduct(p.ID, w)
				c.Products = append(c.Products, p)
			}
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (m *memorySource) SumCustomerOrders(ctx context.Context, w Window) (int64, decimal.Decimal, error) {
	if err := m.fail("SumCustomerOrders"); err != nil {
		return 0, decimal.Zero, err
	}
	var n int64
	total := decimal.Zero
	for _, o := range m.customerOrders {
		if w.Contains(o.OrderDate) {
			n++
			total = total.Add(o.TotalAmount)
		}
	}
	return n, total, nil
}

func (m *memorySource) customer(id int) *models.Customer {
	for i := range m.customers {
		if m.customers[i].ID == id {
			c := m.customers[i]
			return &c
		}
	}
	return nil
}

func (m *memorySource) RecentCustomerOrders(ctx context.Context, limit int) ([]models.CustomerOrder, error) {
	if err := m.fail("RecentCustomerOrders"); err != nil {
		return nil, err
	}
	orders := slices.Clone(m.customerOrders)
	slices.SortStableFunc(orders, func(a, b models.CustomerOrder) int {
		return b.OrderDate.Compare(a.OrderDate)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	for i := range orders {
		orders[i].Customer = m.customer(orders[i].CustomerId)
	}
	return orders, nil
}

func (m *memorySource) QualityChecks(ctx context.Context, w Window) ([]models.QualityCheck, error) {
	if err := m.fail("QualityChecks"); err != nil {
		return nil, err
	}
	var checks []models.QualityCheck
	for _, qc := range m.qualityChecks {
		if w.Contains(qc.CheckDate) {
			checks = append(checks, qc)
		}
	}
	return checks, nil
}

func (m *memorySource) productionOrder(id int) *models.ProductionOrder {
	for i := range m.productionOrders {
		if m.productionOrders[i].ID == id {
			po := m.productionOrders[i]
			return &po
		}
	}
	return nil
}

func (m *memorySource) ActiveWorkCentersWithOperations(ctx context.Context, w Window) ([]models.WorkCenter, error) {
	if err := m.fail("ActiveWorkCentersWithOperations"); err != nil {
		return nil, err
	}
	var workCenters []models.WorkCenter
	for _, wc := range m.workCenters {
		if !wc.Active() {
			continue
		}
		wc.Operations = nil
		for _, op := range m.operations {
			if op.WorkCenterId == wc.ID && w.Contains(op.StartTime) {
				op.ProductionOrder = m.productionOrder(op.ProductionOrderId)
				wc.Operations = append(wc.Operations, op)
			}
		}
		if len(wc.Operations) > 0 {
			workCenters = append(workCenters, wc)
		}
	}
	return workCenters, nil
}

func (m *memorySource) ActiveCustomersWithOrders(ctx context.Context, w Window) ([]models.Customer, error) {
	if err := m.fail("ActiveCustomersWithOrders"); err != nil {
		return nil, err
	}
	var customers []models.Customer
	for _, c := range m.customers {
		if !c.Active() {
			continue
		}
		c.Orders = nil
		inWindow := false
		for _, o := range m.customerOrders {
			if o.CustomerId == c.ID {
				c.Orders = append(c.Orders, o)
				inWindow = inWindow || w.Contains(o.OrderDate)
			}
		}
		if inWindow {
			customers = append(customers, c)
		}
	}
	return customers, nil
}

func (m *memorySource) CountLowStockProducts(ctx context.Context, ratio decimal.Decimal) (int64, error) {
	if err := m.fail("CountLowStockProducts"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range m.products {
		if p.Active() && lowStockAt(p.CurrentStock, p.MinimumStockLevel, ratio) {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) CountLowStockMaterials(ctx context.Context, ratio decimal.Decimal) (int64, error) {
	if err := m.fail("CountLowStockMaterials"); err != nil {
		return 0, err
	}
	var n int64
	for _, mat := range m.materials {
		if mat.Active() && lowStockAt(mat.CurrentStock, mat.MinimumStockLevel, ratio) {
			n++
		}
	}
	return n, nil
}

func lowStockAt(current, minimum int, ratio decimal.Decimal) bool {
	return decimal.NewFromInt(int64(current)).LessThanOrEqual(decimal.NewFromInt(int64(minimum)).Mul(ratio))
}

func (m *memorySource) CountOverdueProductionOrders(ctx context.Context, now time.Time) (int64, error) {
	if err := m.fail("CountOverdueProductionOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, po := range m.productionOrders {
		if po.DueDate.Before(now) && po.Status != models.ProductionOrderStatusCompleted {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) CountQualityIssues(ctx context.Context, w Window) (int64, error) {
	if err := m.fail("CountQualityIssues"); err != nil {
		return 0, err
	}
	var n int64
	for _, qc := range m.qualityChecks {
		if w.Contains(qc.CheckDate) && qc.DefectsFound != nil && strings.TrimSpace(*qc.DefectsFound) != "" {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) CountOverdueCustomerOrders(ctx context.Context, now time.Time) (int64, error) {
	if err := m.fail("CountOverdueCustomerOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range m.customerOrders {
		if o.RequiredDate.Before(now) && o.Status != models.OrderStatusCompleted {
			n++
		}
	}
	return n, nil
}

func (m *memorySource) CountPurchaseOrders(ctx context.Context, status models.PurchaseOrderStatus) (int64, error) {
	if err := m.fail("CountPurchaseOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, po := range m.purchaseOrders {
		if po.Status == status {
			n++
		}
	}
	return n, nil
}

// fixedNow is a Friday in the middle of the month.
var fixedNow = time.Date(2026, time.October, 16, 10, 30, 0, 0, time.UTC)

func newTestDashboard(source Source) *Dashboard {
	d := NewDashboard(source, nil, time.UTC)
	d.now = func() time.Time { return fixedNow }
	d.SetSlowThreshold(0)
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}
