package reports

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmdatafocus/factory_backend/config"
	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

type StockAlert struct {
	ID                int                     `json:"id"`
	Sku               string                  `json:"sku"`
	Name              string                  `json:"name"`
	Unit              string                  `json:"unit,omitempty"`
	CurrentStock      int                     `json:"currentStock"`
	MinimumStockLevel int                     `json:"minimumStockLevel"`
	LeadTime          int                     `json:"leadTime"`
	Status            models.StockAlertStatus `json:"status"`
	DailyConsumption  decimal.Decimal         `json:"dailyConsumption"`
	DaysUntilStockout *int64                  `json:"daysUntilStockout"`
}

type OperationalAlerts struct {
	LowStockProducts      int64 `json:"lowStockProducts"`
	LowStockMaterials     int64 `json:"lowStockMaterials"`
	OverdueProduction     int64 `json:"overdueProduction"`
	QualityIssues         int64 `json:"qualityIssues"`
	OverdueOrders         int64 `json:"overdueOrders"`
	PendingPurchaseOrders int64 `json:"pendingPurchaseOrders"`
}

// newStockAlert reports false when the item is above the low stock threshold.
func newStockAlert(currentStock, minimumStockLevel int, consumed decimal.Decimal) (StockAlert, bool) {
	if !isLowStock(currentStock, minimumStockLevel) {
		return StockAlert{}, false
	}
	return StockAlert{
		CurrentStock:      currentStock,
		MinimumStockLevel: minimumStockLevel,
		Status:            stockAlertStatus(currentStock, minimumStockLevel),
		DailyConsumption:  consumed.Div(decimal.NewFromInt(consumptionWindowDays)).Round(4),
		DaysUntilStockout: daysUntilStockout(currentStock, consumed),
	}, true
}

func severityRank(status models.StockAlertStatus) int {
	switch status {
	case models.StockAlertStatusCritical:
		return 0
	case models.StockAlertStatusWarning:
		return 1
	default:
		return 2
	}
}

// compareStockAlerts orders CRITICAL before WARNING, then by days until stockout with unknown last.
func compareStockAlerts(a, b StockAlert) int {
	if ra, rb := severityRank(a.Status), severityRank(b.Status); ra != rb {
		return ra - rb
	}
	switch {
	case a.DaysUntilStockout == nil && b.DaysUntilStockout == nil:
		return 0
	case a.DaysUntilStockout == nil:
		return 1
	case b.DaysUntilStockout == nil:
		return -1
	case *a.DaysUntilStockout < *b.DaysUntilStockout:
		return -1
	case *a.DaysUntilStockout > *b.DaysUntilStockout:
		return 1
	}
	return 0
}

// GetInventoryAlerts lists active products at or below 1.2x their minimum stock.
// Failures are logged and yield an empty list.
func (d *Dashboard) GetInventoryAlerts(ctx context.Context) []StockAlert {
	alerts, err := d.inventoryAlerts(ctx)
	if err != nil {
		config.LogError(d.logger, moduleName, "GetInventoryAlerts", "computing inventory alerts", nil, err)
		return []StockAlert{}
	}
	return alerts
}

func (d *Dashboard) inventoryAlerts(ctx context.Context) (alerts []StockAlert, err error) {
	ctx, done := d.startReport(ctx, "inventoryAlerts")
	defer func() { done(err) }()

	products, err := d.source.ActiveProductsWithOrderItems(ctx, trailingDays(d.currentTime(), consumptionWindowDays))
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	alerts = []StockAlert{}
	for _, product := range products {
		var ordered int64
		for _, item := range product.OrderItems {
			ordered += int64(item.Quantity)
		}
		alert, ok := newStockAlert(product.CurrentStock, product.MinimumStockLevel, decimal.NewFromInt(ordered))
		if !ok {
			continue
		}
		alert.ID = product.ID
		alert.Sku = product.Sku
		alert.Name = product.Name
		alert.LeadTime = product.LeadTime
		alerts = append(alerts, alert)
	}
	slices.SortStableFunc(alerts, compareStockAlerts)
	return alerts, nil
}

// GetMaterialAlerts lists active materials at or below 1.2x their minimum stock.
// Consumption is derived from the trailing order volume of every product using the material.
// Failures are logged and yield an empty list.
func (d *Dashboard) GetMaterialAlerts(ctx context.Context) []StockAlert {
	alerts, err := d.materialAlerts(ctx)
	if err != nil {
		config.LogError(d.logger, moduleName, "GetMaterialAlerts", "computing material alerts", nil, err)
		return []StockAlert{}
	}
	return alerts
}

func (d *Dashboard) materialAlerts(ctx context.Context) (alerts []StockAlert, err error) {
	ctx, done := d.startReport(ctx, "materialAlerts")
	defer func() { done(err) }()

	materials, err := d.source.ActiveMaterialsWithBoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	ordered, err := d.source.OrderedQuantityByProduct(ctx, trailingDays(d.currentTime(), consumptionWindowDays))
	if err != nil {
		return nil, fmt.Errorf("loading ordered quantities: %w", err)
	}

	alerts = []StockAlert{}
	for _, material := range materials {
		consumed := decimal.Zero
		for _, bom := range material.Boms {
			consumed = consumed.Add(bom.QuantityNeeded.Mul(decimal.NewFromInt(ordered[bom.ProductId])))
		}
		alert, ok := newStockAlert(material.CurrentStock, material.MinimumStockLevel, consumed)
		if !ok {
			continue
		}
		alert.ID = material.ID
		alert.Sku = material.Sku
		alert.Name = material.Name
		alert.Unit = material.Unit
		alert.LeadTime = material.LeadTime
		alerts = append(alerts, alert)
	}
	slices.SortStableFunc(alerts, compareStockAlerts)
	return alerts, nil
}

// GetOperationalAlerts runs six independent counts. A failing count is logged and reported as 0.
func (d *Dashboard) GetOperationalAlerts(ctx context.Context) OperationalAlerts {
	ctx, done := d.startReport(ctx, "operationalAlerts")
	defer done(nil)

	now := d.currentTime()
	var alerts OperationalAlerts
	counts := []struct {
		name  string
		dest  *int64
		count func(context.Context) (int64, error)
	}{
		{"lowStockProducts", &alerts.LowStockProducts, func(ctx context.Context) (int64, error) {
			return d.source.CountLowStockProducts(ctx, LowStockRatio)
		}},
		{"lowStockMaterials", &alerts.LowStockMaterials, func(ctx context.Context) (int64, error) {
			return d.source.CountLowStockMaterials(ctx, LowStockRatio)
		}},
		{"overdueProduction", &alerts.OverdueProduction, func(ctx context.Context) (int64, error) {
			return d.source.CountOverdueProductionOrders(ctx, now)
		}},
		{"qualityIssues", &alerts.QualityIssues, func(ctx context.Context) (int64, error) {
			return d.source.CountQualityIssues(ctx, trailingMonths(now, 1))
		}},
		{"overdueOrders", &alerts.OverdueOrders, func(ctx context.Context) (int64, error) {
			return d.source.CountOverdueCustomerOrders(ctx, now)
		}},
		{"pendingPurchaseOrders", &alerts.PendingPurchaseOrders, func(ctx context.Context) (int64, error) {
			return d.source.CountPurchaseOrders(ctx, models.PurchaseOrderStatusPending)
		}},
	}

	var wg sync.WaitGroup
	for _, c := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.count(ctx)
			if err != nil {
				config.LogError(d.logger, moduleName, "GetOperationalAlerts", "counting "+c.name, nil, err)
				return
			}
			*c.dest = n
		}()
	}
	wg.Wait()
	return alerts
}
