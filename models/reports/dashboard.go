package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/factory_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const moduleName = "reports"

var tracer trace.Tracer = otel.Tracer("factory-dashboard")

// Dashboard computes the dashboard metrics from a Source.
// Every call reads fresh data; the only cache is the optional redis one in reportCache.go.
type Dashboard struct {
	source        Source
	logger        *logrus.Logger
	loc           *time.Location
	now           func() time.Time
	slowThreshold time.Duration
	cacheEnabled  bool
	cacheTTL      time.Duration
}

func NewDashboard(source Source, logger *logrus.Logger, loc *time.Location) *Dashboard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Dashboard{
		source:        source,
		logger:        logger,
		loc:           loc,
		now:           time.Now,
		slowThreshold: 500 * time.Millisecond,
	}
}

// SetSlowThreshold sets the duration above which a metric computation is logged as slow.
func (d *Dashboard) SetSlowThreshold(threshold time.Duration) {
	d.slowThreshold = threshold
}

func (d *Dashboard) currentTime() time.Time {
	return d.now().In(d.loc)
}

type DashboardData struct {
	Stats                *Stats                 `json:"stats"`
	InventoryAlerts      []StockAlert           `json:"inventoryAlerts"`
	MaterialAlerts       []StockAlert           `json:"materialAlerts"`
	TopProducts          []TopProduct           `json:"topProducts"`
	TopSuppliers         []SupplierPerformance  `json:"topSuppliers"`
	ProductionStatus     *ProductionStatus      `json:"productionStatus"`
	SalesByCategory      []CategorySales        `json:"salesByCategory"`
	MonthlySales         []MonthlySales         `json:"monthlySales"`
	WeeklySales          []WeeklySales          `json:"weeklySales"`
	RecentOrders         []RecentOrder          `json:"recentOrders"`
	QualityMetrics       *QualityMetrics        `json:"qualityMetrics"`
	ProductionEfficiency []WorkCenterEfficiency `json:"productionEfficiency"`
	MaterialUtilization  []MaterialUtilization  `json:"materialUtilization"`
	TopCustomers         []TopCustomer          `json:"topCustomers"`
	OperationalAlerts    OperationalAlerts      `json:"operationalAlerts"`
}

// GetDashboardData runs every metric concurrently and assembles the combined payload.
// The first failing metric aborts the whole call; no partial payload is returned.
func (d *Dashboard) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	started := time.Now()
	data := &DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Stats, err = d.GetStats(gctx)
		return err
	})
	g.Go(func() error {
		data.InventoryAlerts = d.GetInventoryAlerts(gctx)
		return nil
	})
	g.Go(func() error {
		data.MaterialAlerts = d.GetMaterialAlerts(gctx)
		return nil
	})
	g.Go(func() (err error) {
		data.TopProducts, err = d.GetTopPerformingProducts(gctx, DefaultTopLimit)
		return err
	})
	g.Go(func() (err error) {
		data.TopSuppliers, err = d.GetSupplierPerformance(gctx, DefaultTopLimit)
		return err
	})
	g.Go(func() (err error) {
		data.ProductionStatus, err = d.GetProductionStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.SalesByCategory, err = d.GetSalesByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.MonthlySales, err = d.GetMonthlySales(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.WeeklySales, err = d.GetWeeklySales(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.RecentOrders, err = d.GetRecentOrders(gctx, DefaultTopLimit)
		return err
	})
	g.Go(func() (err error) {
		data.QualityMetrics, err = d.GetQualityMetrics(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.ProductionEfficiency, err = d.GetProductionEfficiency(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.MaterialUtilization, err = d.GetMaterialUtilization(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.TopCustomers, err = d.GetTopCustomers(gctx, DefaultTopLimit)
		return err
	})
	g.Go(func() error {
		data.OperationalAlerts = d.GetOperationalAlerts(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.logSlowReport(ctx, "dashboard", started)
	return data, nil
}

// startReport opens a span for one metric; the returned func closes it and records err.
func (d *Dashboard) startReport(ctx context.Context, name string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "dashboard."+name)
	started := time.Now()
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		d.logSlowReport(ctx, name, started)
	}
}

func (d *Dashboard) logSlowReport(ctx context.Context, name string, started time.Time) {
	elapsed := time.Since(started)
	if d.slowThreshold <= 0 || elapsed < d.slowThreshold {
		return
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	d.logger.WithFields(logrus.Fields{
		"module":        moduleName,
		"report":        name,
		"ms":            elapsed.Milliseconds(),
		"correlationId": cid,
	}).Warn("slow_report")
}
