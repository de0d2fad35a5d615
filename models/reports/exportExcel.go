package reports

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

type excelSheet struct {
	name     string
	headings []interface{}
	rows     [][]interface{}
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func optionalDays(days *int64) interface{} {
	if days == nil {
		return ""
	}
	return *days
}

// WriteDashboardWorkbook renders the payload as an xlsx workbook with one sheet per section.
func WriteDashboardWorkbook(data *DashboardData, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	for i, sheet := range dashboardSheets(data) {
		if i > 0 {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return err
			}
		}
		if err := writeExcelSheet(f, sheet); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeExcelSheet(f *excelize.File, sheet excelSheet) error {
	if err := f.SetSheetRow(sheet.name, "A1", &sheet.headings); err != nil {
		return err
	}
	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func dashboardSheets(data *DashboardData) []excelSheet {
	summary := excelSheet{name: summarySheet, headings: []interface{}{"Metric", "Value", "Growth"}}
	if s := data.Stats; s != nil {
		summary.rows = append(summary.rows,
			[]interface{}{"Total Revenue", s.TotalRevenue, s.RevenueGrowth},
			[]interface{}{"Total Products", s.TotalProducts, s.ProductsGrowth},
			[]interface{}{"Active Orders", s.ActiveOrders, s.OrdersGrowth},
			[]interface{}{"Total Users", s.TotalUsers, s.UsersGrowth},
		)
	}
	if p := data.ProductionStatus; p != nil {
		summary.rows = append(summary.rows,
			[]interface{}{"Production Pending", p.Pending, p.PendingPercentage},
			[]interface{}{"Production In Progress", p.InProgress, p.InProgressPercentage},
			[]interface{}{"Production Completed", p.Completed, p.CompletedPercentage},
		)
	}
	a := data.OperationalAlerts
	summary.rows = append(summary.rows,
		[]interface{}{"Low Stock Products", a.LowStockProducts, ""},
		[]interface{}{"Low Stock Materials", a.LowStockMaterials, ""},
		[]interface{}{"Overdue Production", a.OverdueProduction, ""},
		[]interface{}{"Quality Issues", a.QualityIssues, ""},
		[]interface{}{"Overdue Orders", a.OverdueOrders, ""},
		[]interface{}{"Pending Purchase Orders", a.PendingPurchaseOrders, ""},
	)

	sheets := []excelSheet{
		summary,
		stockAlertSheet("Inventory Alerts", data.InventoryAlerts),
		stockAlertSheet("Material Alerts", data.MaterialAlerts),
	}

	products := excelSheet{name: "Top Products", headings: []interface{}{"SKU", "Name", "Sales Count", "Revenue", "Cost", "Profit", "Profit Margin %"}}
	for _, p := range data.TopProducts {
		products.rows = append(products.rows, []interface{}{p.Sku, p.Name, p.SalesCount, money(p.Revenue), money(p.Cost), money(p.Profit), p.ProfitMargin})
	}

	suppliers := excelSheet{name: "Suppliers", headings: []interface{}{"Name", "Orders", "On Time %", "Avg Lead Time (days)", "Total Spent"}}
	for _, s := range data.TopSuppliers {
		suppliers.rows = append(suppliers.rows, []interface{}{s.Name, s.OrderCount, s.OnTimeDelivery, s.AverageLeadTime, money(s.TotalSpent)})
	}

	categories := excelSheet{name: "Sales by Category", headings: []interface{}{"Category", "Quantity", "Revenue", "Share %"}}
	for _, c := range data.SalesByCategory {
		categories.rows = append(categories.rows, []interface{}{c.Name, c.Quantity, money(c.Revenue), c.Percentage})
	}

	monthly := excelSheet{name: "Monthly Sales", headings: []interface{}{"Month", "Orders", "Revenue"}}
	for _, m := range data.MonthlySales {
		revenue, err := decimal.NewFromString(m.Revenue)
		if err != nil {
			revenue = decimal.Zero
		}
		monthly.rows = append(monthly.rows, []interface{}{m.Month, m.Orders, money(revenue)})
	}

	weekly := excelSheet{name: "Weekly Sales", headings: []interface{}{"Week", "Orders", "Revenue"}}
	for _, wk := range data.WeeklySales {
		weekly.rows = append(weekly.rows, []interface{}{wk.Week, wk.Orders, money(wk.Revenue)})
	}

	efficiency := excelSheet{name: "Production Efficiency", headings: []interface{}{"Work Center", "Operations", "Planned Output", "Actual Output", "Efficiency %", "Cost"}}
	for _, e := range data.ProductionEfficiency {
		efficiency.rows = append(efficiency.rows, []interface{}{e.Name, e.OperationCount, money(e.PlannedOutput), e.ActualOutput, e.Efficiency, money(e.Cost)})
	}

	utilization := excelSheet{name: "Material Utilization", headings: []interface{}{"Material", "Unit", "Planned", "Actual", "Wastage", "Wastage %", "Cost Impact"}}
	for _, u := range data.MaterialUtilization {
		utilization.rows = append(utilization.rows, []interface{}{u.Name, u.Unit, money(u.Planned), money(u.Actual), money(u.Wastage), u.WastagePercentage, money(u.CostImpact)})
	}

	customers := excelSheet{name: "Top Customers", headings: []interface{}{"Name", "Email", "Orders", "Total Spent", "Avg Order Value", "Last Order"}}
	for _, c := range data.TopCustomers {
		customers.rows = append(customers.rows, []interface{}{c.Name, c.Email, c.OrderCount, money(c.TotalSpent), money(c.AverageOrderValue), c.LastOrderDate.Format("2006-01-02")})
	}

	quality := excelSheet{name: "Quality", headings: []interface{}{"Defect", "Count", "Share of Checks %"}}
	if q := data.QualityMetrics; q != nil {
		quality.rows = append(quality.rows,
			[]interface{}{"Total Checks", q.TotalChecks, ""},
			[]interface{}{"Passed", q.Passed, q.PassRate},
			[]interface{}{"Failed", q.Failed, q.FailRate},
		)
		for _, defect := range q.TopDefects {
			quality.rows = append(quality.rows, []interface{}{defect.Defect, defect.Count, defect.Percentage})
		}
	}

	return append(sheets, products, suppliers, categories, monthly, weekly, efficiency, utilization, customers, quality)
}

func stockAlertSheet(name string, alerts []StockAlert) excelSheet {
	sheet := excelSheet{name: name, headings: []interface{}{"SKU", "Name", "Status", "Current Stock", "Minimum Stock", "Lead Time", "Daily Consumption", "Days Until Stockout"}}
	for _, a := range alerts {
		sheet.rows = append(sheet.rows, []interface{}{a.Sku, a.Name, string(a.Status), a.CurrentStock, a.MinimumStockLevel, a.LeadTime, a.DailyConsumption.InexactFloat64(), optionalDays(a.DaysUntilStockout)})
	}
	return sheet
}
