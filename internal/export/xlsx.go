package export

import (
	"fmt"
	"io"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

// WriteReportXLSX writes the report as a workbook with a Summary and a Daily sheet.
// Item lines are listed under each day, sorted by revenue.
func WriteReportXLSX(w io.Writer, report models.Report, shop config.ShopConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	// 1. Summary sheet (rename the default "Sheet1")
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]any{
		{shop.Name},
		{"Daily Sales Report"},
		{"Selected Date", report.SelectedDate},
		{"Period Start", report.RangeStart.Format("2006-01-02 15:04:05")},
		{"Period End", report.RangeEnd.Format("2006-01-02 15:04:05")},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Sales", report.TotalSales.InexactFloat64()},
		{"Total Orders", report.TotalOrders},
		{"Average Order Value", report.AverageOrderValue.Round(2).InexactFloat64()},
	}
	if err := writeRows(f, summarySheet, 1, summary); err != nil {
		return err
	}

	// 2. Daily breakdown
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows := [][]any{{"Date", "Item", "Quantity", "Orders", "Total Sales", "Avg Order"}}
	for _, day := range report.DailyBuckets {
		rows = append(rows, []any{
			day.Date, "", "", day.OrderCount,
			day.TotalSales.InexactFloat64(), DayAverage(day).Round(2).InexactFloat64(),
		})
		for _, item := range SortedItemSales(day.ItemSales) {
			rows = append(rows, []any{day.Date, item.Name, item.Quantity, "", item.Revenue.InexactFloat64(), ""})
		}
	}
	if err := writeRows(f, dailySheet, 1, rows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, firstRow int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, firstRow+i, err)
		}
	}
	return nil
}
