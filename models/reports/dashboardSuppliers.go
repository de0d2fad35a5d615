package reports

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

var hoursPerDay = decimal.NewFromInt(24)

type SupplierPerformance struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	OrderCount      int             `json:"orderCount"`
	OnTimeDelivery  float64         `json:"onTimeDelivery"`
	AverageLeadTime float64         `json:"averageLeadTime"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
}

// GetSupplierPerformance ranks suppliers with purchase orders in the trailing 6 months by spend.
// On-time delivery compares the promised delivery to the order date only; there is no actual
// delivery date to compare against.
func (d *Dashboard) GetSupplierPerformance(ctx context.Context, limit int) (top []SupplierPerformance, err error) {
	ctx, done := d.startReport(ctx, "topSuppliers")
	defer func() { done(err) }()

	suppliers, err := d.source.ActiveSuppliersWithPurchaseOrders(ctx, trailingMonths(d.currentTime(), 6))
	if err != nil {
		return nil, fmt.Errorf("supplier performance: %w", err)
	}

	top = []SupplierPerformance{}
	for _, supplier := range suppliers {
		if len(supplier.PurchaseOrders) == 0 {
			continue
		}
		entry := SupplierPerformance{
			ID:         supplier.ID,
			Name:       supplier.Name,
			OrderCount: len(supplier.PurchaseOrders),
			TotalSpent: decimal.Zero,
		}
		var completed, onTime int64
		leadDays := decimal.Zero
		for _, po := range supplier.PurchaseOrders {
			entry.TotalSpent = entry.TotalSpent.Add(po.TotalAmount)
			if po.Status != models.PurchaseOrderStatusCompleted {
				continue
			}
			completed++
			if !po.ExpectedDelivery.Before(po.OrderDate) {
				onTime++
			}
			hours := decimal.NewFromFloat(po.ExpectedDelivery.Sub(po.OrderDate).Hours())
			leadDays = leadDays.Add(hours.Div(hoursPerDay))
		}
		entry.OnTimeDelivery = percentOfCount(onTime, completed)
		if completed > 0 {
			entry.AverageLeadTime = leadDays.Div(decimal.NewFromInt(completed)).Round(2).InexactFloat64()
		}
		top = append(top, entry)
	}
	slices.SortStableFunc(top, func(a, b SupplierPerformance) int {
		return b.TotalSpent.Cmp(a.TotalSpent)
	})
	return truncate(top, normalizeLimit(limit)), nil
}
