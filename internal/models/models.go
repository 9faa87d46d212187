package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The browser app stored money as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// ErrInvalidOrder is returned by Order.Validate for orders that break the ledger invariants.
	ErrInvalidOrder    = errors.New("invalid order")
	ErrInvalidMenuItem = errors.New("invalid menu item")
)

// MenuItem - One dish on the menu. Checkout copies its name and price into the order line.
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:120" json:"name"`
	Category    string          `gorm:"size:60" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(20,6)" json:"price"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"` // URL
}

func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidMenuItem)
	}
	if !m.Price.IsPositive() {
		return fmt.Errorf("%w: %q must have a price above zero", ErrInvalidMenuItem, m.Name)
	}
	return nil
}

// OrderLineItem - One row of a finalized order
type OrderLineItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"size:64;index" json:"-"`
	Position  int             `json:"-"` // Keeps the cart order when reading back from SQL
	Name      string          `gorm:"size:120" json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,6)" json:"price"` // Snapshot of the menu price at checkout
}

// Revenue is quantity × unit price for this line.
func (i OrderLineItem) Revenue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order - A completed customer purchase. Immutable once recorded.
type Order struct {
	ID            string          `gorm:"primaryKey;size:64" json:"id"`
	Items         []OrderLineItem `gorm:"foreignKey:OrderID" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(20,6)" json:"total"`
	CreatedAt     time.Time       `gorm:"index" json:"timestamp"`
	Status        string          `gorm:"size:20" json:"status,omitempty"`        // 'paid', 'pending'
	PaymentMethod string          `gorm:"size:40" json:"paymentMethod,omitempty"` // Carried through, never interpreted
}

// Validate checks the invariants the checkout flow must maintain.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidOrder)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order %s has no items", ErrInvalidOrder, o.ID)
	}
	for i, item := range o.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: order %s item %d has no name", ErrInvalidOrder, o.ID, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: order %s item %q has quantity %d", ErrInvalidOrder, o.ID, item.Name, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: order %s item %q has negative price", ErrInvalidOrder, o.ID, item.Name)
		}
	}
	if o.Total.IsNegative() {
		return fmt.Errorf("%w: order %s has negative total", ErrInvalidOrder, o.ID)
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("%w: order %s has no timestamp", ErrInvalidOrder, o.ID)
	}
	return nil
}

// ItemsTotal sums quantity × unit price over every line.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Revenue())
	}
	return total
}

// ItemSales - Rolled-up sales of one item name within a day
type ItemSales struct {
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyBucket - All orders sharing one calendar date
type DailyBucket struct {
	Date       string               `json:"dateKey"` // YYYY-MM-DD in the reference time zone
	Orders     []Order              `json:"orders"`
	OrderCount int                  `json:"orderCount"`
	TotalSales decimal.Decimal      `json:"totalSales"`
	ItemSales  map[string]ItemSales `json:"itemSales"` // Unordered; sort at presentation time
}

// Report - One generated rolling sales summary, snapshotted at generation time
type Report struct {
	Seq               uint            `gorm:"primaryKey;autoIncrement" json:"-"` // Archive insertion order
	ID                string          `gorm:"index;size:64" json:"id"`           // Not unique: the archive never dedups
	SelectedDate      string          `gorm:"size:10" json:"selectedDate"`
	RangeStart        time.Time       `json:"startDate"`
	RangeEnd          time.Time       `json:"endDate"`
	DailyBuckets      []DailyBucket   `gorm:"serializer:json" json:"dailyReports"`
	TotalSales        decimal.Decimal `gorm:"type:decimal(20,6)" json:"totalSales"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `gorm:"type:decimal(20,6)" json:"avgOrderValue"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// TableName keeps the archive under the same name the browser app used for it.
func (Report) TableName() string {
	return "saved_reports"
}
