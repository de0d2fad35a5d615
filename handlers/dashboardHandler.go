package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/factory_backend/models/reports"
	"github.com/mmdatafocus/factory_backend/utils"
)

type metricFunc func(ctx context.Context, d *reports.Dashboard, limit int) (any, error)

// dashboardMetrics is keyed by the json field names of reports.DashboardData.
var dashboardMetrics = map[string]metricFunc{
	"stats": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetStats(ctx)
	},
	"inventoryAlerts": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetInventoryAlerts(ctx), nil
	},
	"materialAlerts": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetMaterialAlerts(ctx), nil
	},
	"topProducts": func(ctx context.Context, d *reports.Dashboard, limit int) (any, error) {
		return d.GetTopPerformingProducts(ctx, limit)
	},
	"topSuppliers": func(ctx context.Context, d *reports.Dashboard, limit int) (any, error) {
		return d.GetSupplierPerformance(ctx, limit)
	},
	"productionStatus": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetProductionStatus(ctx)
	},
	"salesByCategory": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetSalesByCategory(ctx)
	},
	"monthlySales": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetMonthlySales(ctx)
	},
	"weeklySales": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetWeeklySales(ctx)
	},
	"recentOrders": func(ctx context.Context, d *reports.Dashboard, limit int) (any, error) {
		return d.GetRecentOrders(ctx, limit)
	},
	"qualityMetrics": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetQualityMetrics(ctx)
	},
	"productionEfficiency": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetProductionEfficiency(ctx)
	},
	"materialUtilization": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetMaterialUtilization(ctx)
	},
	"topCustomers": func(ctx context.Context, d *reports.Dashboard, limit int) (any, error) {
		return d.GetTopCustomers(ctx, limit)
	},
	"operationalAlerts": func(ctx context.Context, d *reports.Dashboard, _ int) (any, error) {
		return d.GetOperationalAlerts(ctx), nil
	},
}

var validate = validator.New()

type DashboardHandler struct {
	dashboard atomic.Pointer[reports.Dashboard]
	timeout   time.Duration
	now       func() time.Time
}

// NewDashboardHandler serves d over HTTP. Every request gets at most timeout to complete.
// d may be nil and installed later with SetDashboard; requests get 503 until then.
func NewDashboardHandler(d *reports.Dashboard, timeout time.Duration) *DashboardHandler {
	h := &DashboardHandler{
		timeout: timeout,
		now:     time.Now,
	}
	if d != nil {
		h.dashboard.Store(d)
	}
	return h
}

func (h *DashboardHandler) SetDashboard(d *reports.Dashboard) {
	h.dashboard.Store(d)
}

func (h *DashboardHandler) Ready() bool {
	return h.dashboard.Load() != nil
}

func (h *DashboardHandler) current(c *gin.Context) (*reports.Dashboard, bool) {
	d := h.dashboard.Load()
	if d == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "dashboard not ready"})
		return nil, false
	}
	return d, true
}

func (h *DashboardHandler) Register(r gin.IRouter) {
	g := r.Group("/api/dashboard")
	g.GET("", h.GetDashboard)
	g.GET("/export", h.ExportDashboard)
	g.GET("/:metric", h.GetMetric)
}

func (h *DashboardHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// GetDashboard returns the combined payload. refresh=true drops the cached copy first.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, ok := h.current(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		if err := dashboard.InvalidateDashboardCache(ctx); err != nil {
			_ = c.Error(err)
		}
	}
	data, err := dashboard.GetCachedDashboardData(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *DashboardHandler) GetMetric(c *gin.Context) {
	dashboard, ok := h.current(c)
	if !ok {
		return
	}
	metric, ok := dashboardMetrics[c.Param("metric")]
	if !ok {
		abortWithError(c, fmt.Errorf("%w: %s", utils.ErrUnknownMetric, c.Param("metric")))
		return
	}
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := metric(ctx, dashboard, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportDashboard renders the combined payload as an xlsx attachment.
func (h *DashboardHandler) ExportDashboard(c *gin.Context) {
	dashboard, ok := h.current(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	data, err := dashboard.GetCachedDashboardData(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteDashboardWorkbook(data, &buf); err != nil {
		abortWithError(c, err)
		return
	}
	fileName := fmt.Sprintf("dashboard-%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, utils.XlsxContentType, buf.Bytes())
}

// parseLimit returns 0 for an absent limit, which the dashboard treats as its default.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.ErrInvalidLimit
	}
	if err := validate.Var(limit, fmt.Sprintf("min=1,max=%d", reports.MaxTopLimit)); err != nil {
		return 0, utils.ErrInvalidLimit
	}
	return limit, nil
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, utils.ErrInvalidLimit):
		status = http.StatusBadRequest
	case errors.Is(err, utils.ErrUnknownMetric):
		status = http.StatusNotFound
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
