package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"
)

const rule = "================================"

// WriteReportText renders the daily sales report as plain text.
func WriteReportText(w io.Writer, report models.Report, shop config.ShopConfig) error {
	bw := bufio.NewWriter(w)

	for _, line := range shopHeader(shop) {
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintln(bw, "Daily Sales Report")
	fmt.Fprintf(bw, "Period: %s to %s\n",
		report.RangeStart.Format("02/01/2006"), report.RangeEnd.Format("02/01/2006"))
	fmt.Fprintf(bw, "Generated: %s\n\n", report.GeneratedAt.In(report.RangeEnd.Location()).Format("02/01/2006 15:04:05"))

	fmt.Fprintln(bw, "Summary")
	fmt.Fprintf(bw, "Total Sales: %s\n", money(report.TotalSales))
	fmt.Fprintf(bw, "Total Orders: %d\n", report.TotalOrders)
	fmt.Fprintf(bw, "Average Order Value: %s\n\n", money(report.AverageOrderValue))

	if len(report.DailyBuckets) == 0 {
		fmt.Fprintln(bw, "No orders found for the selected period.")
		return bw.Flush()
	}

	fmt.Fprintln(bw, "Daily Breakdown")
	fmt.Fprintf(bw, "%-14s %8s %14s %14s\n", "Date", "Orders", "Total Sales", "Avg Order")
	fmt.Fprintln(bw, strings.Repeat("-", 53))
	for _, day := range report.DailyBuckets {
		fmt.Fprintf(bw, "%-14s %8d %14s %14s\n",
			displayDate(day.Date), day.OrderCount, money(day.TotalSales), money(DayAverage(day)))
		for _, item := range SortedItemSales(day.ItemSales) {
			fmt.Fprintf(bw, "  • %s: %dx (%s)\n", item.Name, item.Quantity, money(item.Revenue))
		}
	}

	return bw.Flush()
}

// WriteBillText renders the customer bill of one order.
func WriteBillText(w io.Writer, order models.Order, shop config.ShopConfig) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "   %s - Bill\n", shop.Name)
	fmt.Fprintln(bw, rule)
	if shop.Address != "" {
		fmt.Fprintln(bw, shop.Address)
	}
	if shop.Phone != "" {
		fmt.Fprintf(bw, "Ph No: %s\n", shop.Phone)
	}
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Order: %s\n", order.ID)
	fmt.Fprintf(bw, "Date: %s\n", order.CreatedAt.Format("02/01/2006"))
	fmt.Fprintf(bw, "Time: %s\n\n", order.CreatedAt.Format("15:04:05"))
	fmt.Fprintln(bw, "Items:")
	fmt.Fprintln(bw, "--------------------------------")
	for _, item := range order.Items {
		fmt.Fprintf(bw, "%s x %d\n", item.Name, item.Quantity)
		fmt.Fprintf(bw, "  %s\n", money(item.Revenue()))
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--------------------------------")
	fmt.Fprintf(bw, "Total: %s\n", money(order.Total))
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, "Thank you for your order!")

	return bw.Flush()
}
