package reports

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(int64(time.Hour / time.Second))

type ProductionStatus struct {
	Pending              int64   `json:"pending"`
	InProgress           int64   `json:"inProgress"`
	Completed            int64   `json:"completed"`
	Total                int64   `json:"total"`
	PendingPercentage    float64 `json:"pendingPercentage"`
	InProgressPercentage float64 `json:"inProgressPercentage"`
	CompletedPercentage  float64 `json:"completedPercentage"`
}

type WorkCenterEfficiency struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PlannedOutput  decimal.Decimal `json:"plannedOutput"`
	ActualOutput   int64           `json:"actualOutput"`
	Efficiency     float64         `json:"efficiency"`
	Cost           decimal.Decimal `json:"cost"`
	OperationCount int             `json:"operationCount"`
}

type MaterialUtilization struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Planned           decimal.Decimal `json:"planned"`
	Actual            decimal.Decimal `json:"actual"`
	Wastage           decimal.Decimal `json:"wastage"`
	WastagePercentage float64         `json:"wastagePercentage"`
	CostImpact        decimal.Decimal `json:"costImpact"`
}

// GetProductionStatus counts production orders per status. Total includes every status.
func (d *Dashboard) GetProductionStatus(ctx context.Context) (status *ProductionStatus, err error) {
	ctx, done := d.startReport(ctx, "productionStatus")
	defer func() { done(err) }()

	counts, err := d.source.ProductionOrderStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("production status: %w", err)
	}

	status = &ProductionStatus{
		Pending:    counts[models.ProductionOrderStatusPending],
		InProgress: counts[models.ProductionOrderStatusInProgress],
		Completed:  counts[models.ProductionOrderStatusCompleted],
	}
	for _, n := range counts {
		status.Total += n
	}
	status.PendingPercentage = percentOfCount(status.Pending, status.Total)
	status.InProgressPercentage = percentOfCount(status.InProgress, status.Total)
	status.CompletedPercentage = percentOfCount(status.Completed, status.Total)
	return status, nil
}

// GetProductionEfficiency compares scheduled capacity against completed output per work center
// over the trailing month.
func (d *Dashboard) GetProductionEfficiency(ctx context.Context) (efficiency []WorkCenterEfficiency, err error) {
	ctx, done := d.startReport(ctx, "productionEfficiency")
	defer func() { done(err) }()

	workCenters, err := d.source.ActiveWorkCentersWithOperations(ctx, trailingMonths(d.currentTime(), 1))
	if err != nil {
		return nil, fmt.Errorf("production efficiency: %w", err)
	}

	efficiency = []WorkCenterEfficiency{}
	for _, wc := range workCenters {
		if len(wc.Operations) == 0 {
			continue
		}
		var scheduled time.Duration
		var actual int64
		cost := decimal.Zero
		for _, op := range wc.Operations {
			scheduled += op.Duration()
			cost = cost.Add(op.Cost)
			if op.Status == models.OperationStatusCompleted && op.ProductionOrder != nil {
				actual += int64(op.ProductionOrder.Quantity)
			}
		}
		hours := decimal.NewFromInt(int64(scheduled / time.Second)).Div(secondsPerHour)
		planned := wc.CapacityPerHour.Mul(hours)
		efficiency = append(efficiency, WorkCenterEfficiency{
			ID:             wc.ID,
			Name:           wc.Name,
			PlannedOutput:  planned.Round(2),
			ActualOutput:   actual,
			Efficiency:     percentOf(decimal.NewFromInt(actual), planned),
			Cost:           cost,
			OperationCount: len(wc.Operations),
		})
	}
	slices.SortStableFunc(efficiency, func(a, b WorkCenterEfficiency) int {
		switch {
		case a.Efficiency > b.Efficiency:
			return -1
		case a.Efficiency < b.Efficiency:
			return 1
		}
		return 0
	})
	return efficiency, nil
}

// GetMaterialUtilization projects planned and wasted material use from the trailing month's
// completed production.
func (d *Dashboard) GetMaterialUtilization(ctx context.Context) (utilization []MaterialUtilization, err error) {
	ctx, done := d.startReport(ctx, "materialUtilization")
	defer func() { done(err) }()

	window := trailingMonths(d.currentTime(), 1)
	materials, err := d.source.ActiveMaterialsWithBoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("material utilization: loading materials: %w", err)
	}
	produced, err := d.source.CompletedProductionByProduct(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("material utilization: loading production: %w", err)
	}

	utilization = []MaterialUtilization{}
	for _, material := range materials {
		if len(material.Boms) == 0 {
			continue
		}
		planned, actual := decimal.Zero, decimal.Zero
		for _, bom := range material.Boms {
			need := bom.QuantityNeeded.Mul(decimal.NewFromInt(produced[bom.ProductId]))
			planned = planned.Add(need)
			actual = actual.Add(need.Mul(decimal.NewFromInt(1).Add(bom.WastePercentage.Div(hundred))))
		}
		wastage := actual.Sub(planned)
		utilization = append(utilization, MaterialUtilization{
			ID:                material.ID,
			Name:              material.Name,
			Unit:              material.Unit,
			Planned:           planned,
			Actual:            actual,
			Wastage:           wastage,
			WastagePercentage: percentOf(wastage, planned),
			CostImpact:        wastage.Mul(material.CostPerUnit),
		})
	}
	slices.SortStableFunc(utilization, func(a, b MaterialUtilization) int {
		return b.CostImpact.Cmp(a.CostImpact)
	})
	return utilization, nil
}
