// Package export renders reports and bills for download. Every function is a pure
// projection of the value it is given.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"

	"github.com/shopspring/decimal"
)

const currency = "₹"

// ItemSaleRow is one item line of a day, ready for display.
type ItemSaleRow struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SortedItemSales orders a day's item sales by descending revenue, then by name.
func SortedItemSales(sales map[string]models.ItemSales) []ItemSaleRow {
	rows := make([]ItemSaleRow, 0, len(sales))
	for name, s := range sales {
		rows = append(rows, ItemSaleRow{Name: name, Quantity: s.Quantity, Revenue: s.Revenue})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// DayAverage is the average order value of one bucket.
func DayAverage(day models.DailyBucket) decimal.Decimal {
	if day.OrderCount == 0 {
		return decimal.Zero
	}
	return day.TotalSales.Div(decimal.NewFromInt(int64(day.OrderCount)))
}

// ReportFilename builds Sales_Report_<timestamp>.<ext>.
func ReportFilename(t time.Time, ext string) string {
	return fmt.Sprintf("Sales_Report_%s.%s", t.UTC().Format("2006-01-02T15-04-05"), ext)
}

// BillFilename builds Bill_<order id>.txt.
func BillFilename(order models.Order) string {
	return fmt.Sprintf("Bill_%s.txt", order.ID)
}

func money(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

// displayDate turns a YYYY-MM-DD key into "10 Jan 2024".
func displayDate(key string) string {
	d, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return d.Format("2 Jan 2006")
}

func shopHeader(shop config.ShopConfig) []string {
	lines := []string{shop.Name}
	var contact []string
	if shop.Address != "" {
		contact = append(contact, shop.Address)
	}
	if shop.Phone != "" {
		contact = append(contact, "Ph No: "+shop.Phone)
	}
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, " | "))
	}
	return lines
}
