package reports

import (
	"strings"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopLimit = 5
	MaxTopLimit     = 100

	consumptionWindowDays = 30
	topDefectCount        = 5
	monthlySeriesLength   = 12
	weeklySeriesLength    = 8
)

var (
	hundred = decimal.NewFromInt(100)

	// LowStockRatio is the multiple of the minimum stock level at or below which an item is flagged.
	LowStockRatio = decimal.RequireFromString("1.2")
)

// calculateGrowth formats (current - previous) / previous * 100 with one decimal and an explicit sign.
// A zero previous value reports +100%.
func calculateGrowth(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		return "+100%"
	}
	growth := current.Sub(previous).Div(previous).Mul(hundred).Round(1)
	if growth.Sign() >= 0 {
		return "+" + growth.StringFixed(1) + "%"
	}
	return growth.StringFixed(1) + "%"
}

// percentOf returns part / total * 100 rounded to two places, or 0 when total is zero.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(2).InexactFloat64()
}

func percentOfCount(part, total int64) float64 {
	return percentOf(decimal.NewFromInt(part), decimal.NewFromInt(total))
}

func isLowStock(currentStock, minimumStockLevel int) bool {
	return decimal.NewFromInt(int64(currentStock)).LessThanOrEqual(decimal.NewFromInt(int64(minimumStockLevel)).Mul(LowStockRatio))
}

func stockAlertStatus(currentStock, minimumStockLevel int) models.StockAlertStatus {
	switch {
	case currentStock <= minimumStockLevel:
		return models.StockAlertStatusCritical
	case isLowStock(currentStock, minimumStockLevel):
		return models.StockAlertStatusWarning
	default:
		return models.StockAlertStatusOk
	}
}

// daysUntilStockout projects floor(stock / daily consumption); nil when nothing was consumed.
func daysUntilStockout(currentStock int, consumed decimal.Decimal) *int64 {
	daily := consumed.Div(decimal.NewFromInt(consumptionWindowDays))
	if daily.Sign() <= 0 {
		return nil
	}
	days := decimal.NewFromInt(int64(currentStock)).Div(daily).Floor().IntPart()
	return &days
}

// parseDefectTags splits a comma separated defect list into trimmed, non-empty tags.
func parseDefectTags(defects *string) []string {
	if defects == nil {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(*defects, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func hasDefects(defects *string) bool {
	return defects != nil && strings.TrimSpace(*defects) != ""
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday that begins the week of t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func previousMonthWindow(now time.Time) Window {
	thisMonth := startOfMonth(now)
	return Window{From: thisMonth.AddDate(0, -1, 0), To: thisMonth}
}

func trailingDays(now time.Time, days int) Window {
	return Window{From: now.AddDate(0, 0, -days)}
}

func trailingMonths(now time.Time, months int) Window {
	return Window{From: now.AddDate(0, -months, 0)}
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func weekLabel(start time.Time) string {
	return start.Format("Jan 2") + " - " + start.AddDate(0, 0, 6).Format("Jan 2")
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	return limit
}
