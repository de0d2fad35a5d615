package reports

import (
	"testing"
	"time"

	"github.com/mmdatafocus/factory_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGrowth(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		previous string
		want     string
	}{
		{"zero previous", "5", "0", "+100%"},
		{"zero both", "0", "0", "+100%"},
		{"increase", "150", "100", "+50.0%"},
		{"no change", "100", "100", "+0.0%"},
		{"decrease", "75", "100", "-25.0%"},
		{"rounds to one decimal", "2", "3", "-33.3%"},
		{"rounds half up", "1.0005", "1", "+0.1%"},
		{"full drop", "0", "40", "-100.0%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calculateGrowth(dec(tc.current), dec(tc.previous)))
		})
	}
}

func TestPercentOfZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, percentOf(dec("10"), dec("0")))
	assert.Equal(t, 0.0, percentOfCount(3, 0))
	assert.Equal(t, 33.33, percentOfCount(1, 3))
	assert.Equal(t, 25.0, percentOf(dec("1.5"), dec("6")))
}

func TestStockAlertClassification(t *testing.T) {
	cases := []struct {
		current, minimum int
		low              bool
		status           models.StockAlertStatus
	}{
		{8, 10, true, models.StockAlertStatusCritical},
		{10, 10, true, models.StockAlertStatusCritical},
		{11, 10, true, models.StockAlertStatusWarning},
		{12, 10, true, models.StockAlertStatusWarning},
		{13, 10, false, models.StockAlertStatusOk},
		{0, 0, true, models.StockAlertStatusCritical},
		{1, 0, false, models.StockAlertStatusOk},
		{6, 5, true, models.StockAlertStatusWarning},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.low, isLowStock(tc.current, tc.minimum), "isLowStock(%d, %d)", tc.current, tc.minimum)
		assert.Equal(t, tc.status, stockAlertStatus(tc.current, tc.minimum), "stockAlertStatus(%d, %d)", tc.current, tc.minimum)
	}
}

func TestDaysUntilStockout(t *testing.T) {
	assert.Nil(t, daysUntilStockout(8, dec("0")))

	days := daysUntilStockout(10, dec("60"))
	require.NotNil(t, days)
	assert.Equal(t, int64(5), *days)

	days = daysUntilStockout(10, dec("45"))
	require.NotNil(t, days)
	assert.Equal(t, int64(6), *days, "10 / 1.5 floors to 6")

	days = daysUntilStockout(0, dec("30"))
	require.NotNil(t, days)
	assert.Equal(t, int64(0), *days)
}

func TestParseDefectTags(t *testing.T) {
	assert.Nil(t, parseDefectTags(nil))
	assert.Empty(t, parseDefectTags(strPtr("   ")))
	assert.Empty(t, parseDefectTags(strPtr(" , ,")))
	assert.Equal(t, []string{"scratch", "dent"}, parseDefectTags(strPtr("scratch, dent")))
	assert.Equal(t, []string{"crack", "crack"}, parseDefectTags(strPtr(",crack,,  crack ,")))

	assert.False(t, hasDefects(nil))
	assert.False(t, hasDefects(strPtr(" \t")))
	assert.True(t, hasDefects(strPtr("burr")))
}

func TestCalendarHelpers(t *testing.T) {
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), startOfMonth(fixedNow))
	assert.Equal(t, time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC), startOfWeek(fixedNow))

	sunday := time.Date(2026, time.October, 11, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))

	prev := previousMonthWindow(fixedNow)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), prev.From)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), prev.To)

	january := previousMonthWindow(time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), january.From)

	assert.Equal(t, "Oct 2026", monthLabel(fixedNow))
	assert.Equal(t, "Oct 11 - Oct 17", weekLabel(startOfWeek(fixedNow)))
	assert.Equal(t, "Dec 27 - Jan 2", weekLabel(time.Date(2026, time.December, 27, 0, 0, 0, 0, time.UTC)))
}

func TestWindowContains(t *testing.T) {
	w := Window{From: daysAgo(30), To: fixedNow}
	assert.True(t, w.Contains(daysAgo(30)))
	assert.True(t, w.Contains(daysAgo(1)))
	assert.False(t, w.Contains(fixedNow))
	assert.False(t, w.Contains(daysAgo(31)))
	assert.True(t, Window{}.Contains(time.Time{}))
	assert.True(t, Window{From: daysAgo(1)}.Contains(fixedNow.AddDate(5, 0, 0)))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultTopLimit, normalizeLimit(0))
	assert.Equal(t, DefaultTopLimit, normalizeLimit(-3))
	assert.Equal(t, 2, normalizeLimit(2))
}
