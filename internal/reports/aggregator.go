// Package reports builds the rolling daily sales report from the order ledger.
package reports

import (
	"sort"
	"time"

	"go-restaurant-pos/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for bucket keys and selected dates.
const DateLayout = "2006-01-02"

// DefaultWindowMonths is how far back a report reaches from the selected date.
const DefaultWindowMonths = 6

// Aggregator turns a snapshot of the order log into a Report. It performs no I/O.
type Aggregator struct {
	Location     *time.Location // Reference time zone for calendar dates
	WindowMonths int
	Now          func() time.Time
	NewID        func() string
}

// NewAggregator returns an Aggregator for loc with the default 6-month window.
func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		Location:     loc,
		WindowMonths: DefaultWindowMonths,
		Now:          time.Now,
		NewID:        uuid.NewString,
	}
}

// Range returns the inclusive [start, end] window for the selected calendar date.
// Only the year, month and day of selected matter, read as written in its own zone, so
// midnight UTC on the 10th selects the 10th for every reference zone.
func (a *Aggregator) Range(selected time.Time) (time.Time, time.Time) {
	y, m, d := selected.Date()

	// 1. End of the selected day
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), a.Location)

	// 2. Start of the day N calendar months earlier
	sy, sm, sd := SubtractMonths(y, m, d, a.windowMonths())
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, a.Location)

	return start, end
}

// Generate filters, buckets and sums orders into a Report for the selected date.
func (a *Aggregator) Generate(orders []models.Order, selected time.Time) models.Report {
	start, end := a.Range(selected)

	// We use a pointer so each bucket can be updated in place while we walk the orders
	buckets := make(map[string]*models.DailyBucket)
	totalSales := decimal.Zero
	totalOrders := 0

	for _, order := range orders {
		// 3. Inclusive on both ends
		if order.CreatedAt.Before(start) || order.CreatedAt.After(end) {
			continue
		}

		// 4. Partition by calendar date in the reference zone
		key := order.CreatedAt.In(a.Location).Format(DateLayout)
		bucket, exists := buckets[key]
		if !exists {
			bucket = &models.DailyBucket{
				Date:       key,
				Orders:     []models.Order{},
				TotalSales: decimal.Zero,
				ItemSales:  make(map[string]models.ItemSales),
			}
			buckets[key] = bucket
		}

		bucket.Orders = append(bucket.Orders, order)
		bucket.OrderCount++
		bucket.TotalSales = bucket.TotalSales.Add(order.Total)

		// Same name at different prices still lands in one entry
		for _, item := range order.Items {
			sales := bucket.ItemSales[item.Name]
			sales.Quantity += item.Quantity
			sales.Revenue = sales.Revenue.Add(item.Revenue())
			bucket.ItemSales[item.Name] = sales
		}

		totalSales = totalSales.Add(order.Total)
		totalOrders++
	}

	// 5. Flatten and sort newest first. Keys are YYYY-MM-DD so string order is date order.
	daily := make([]models.DailyBucket, 0, len(buckets))
	for _, bucket := range buckets {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date > daily[j].Date
	})

	// 6. Summary
	return models.Report{
		ID:                a.NewID(),
		SelectedDate:      time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, a.Location).Format(DateLayout),
		RangeStart:        start,
		RangeEnd:          end,
		DailyBuckets:      daily,
		TotalSales:        totalSales,
		TotalOrders:       totalOrders,
		AverageOrderValue: AverageOrderValue(totalSales, totalOrders),
		GeneratedAt:       a.Now(),
	}
}

// AverageOrderValue is total / count, or zero when there are no orders.
func AverageOrderValue(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func (a *Aggregator) windowMonths() int {
	if a.WindowMonths <= 0 {
		return DefaultWindowMonths
	}
	return a.WindowMonths
}

// SubtractMonths moves a calendar date back n months. A day that does not exist in
// the target month is clamped to that month's last day (Mar 31 - 6 → Sep 30).
func SubtractMonths(year int, month time.Month, day int, n int) (int, time.Month, int) {
	total := year*12 + int(month) - 1 - n
	ty := total / 12
	tm := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		ty--
		tm = time.Month(total%12 + 13)
	}

	if last := daysIn(ty, tm); day > last {
		day = last
	}
	return ty, tm, day
}

// daysIn relies on time.Date normalizing day 0 to the last day of the previous month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
