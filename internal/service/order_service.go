package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/reports"
	"go-restaurant-pos/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks request values the services cannot interpret.
var ErrInvalidInput = errors.New("invalid input")

const (
	StatusPaid             = "paid"
	PaymentMethodConfirmed = "confirmed"
)

// CartLine is one item handed over by the cart when the payment is confirmed.
// When MenuItemID is set the catalog's name and price replace the ones given.
type CartLine struct {
	MenuItemID uint
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// OrderHistory is the order list for one day (or all days) with its summary.
type OrderHistory struct {
	Date        string          `json:"date,omitempty"`
	Orders      []models.Order  `json:"orders"`
	TotalOrders int             `json:"totalOrders"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type OrderService struct {
	orders   store.OrderStore
	menu     store.MenuCatalog
	location *time.Location
	now      func() time.Time
	newID    func() string
}

// NewOrderService builds the checkout service. menu may be nil, in which case every
// cart line must carry its own name and price.
func NewOrderService(orders store.OrderStore, menu store.MenuCatalog, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		orders:   orders,
		menu:     menu,
		location: loc,
		now:      time.Now,
		newID:    func() string { return "ORD-" + uuid.NewString() },
	}
}

// Checkout records a finalized order. The total is computed from the lines.
func (s *OrderService) Checkout(ctx context.Context, lines []CartLine, status, paymentMethod string) (models.Order, error) {
	if status == "" {
		status = StatusPaid
	}
	if paymentMethod == "" {
		paymentMethod = PaymentMethodConfirmed
	}

	order := models.Order{
		ID:            s.newID(),
		CreatedAt:     s.now().UTC(),
		Status:        status,
		PaymentMethod: paymentMethod,
	}
	for _, line := range lines {
		item, err := s.priceLine(ctx, line)
		if err != nil {
			return models.Order{}, err
		}
		order.Items = append(order.Items, item)
	}
	order.Total = order.ItemsTotal()

	if err := order.Validate(); err != nil {
		return models.Order{}, err
	}
	if err := s.orders.Append(ctx, order); err != nil {
		return models.Order{}, err
	}

	log.Info().Str("order_id", order.ID).Str("total", order.Total.StringFixed(2)).Msg("orders: checkout recorded")
	return order, nil
}

func (s *OrderService) priceLine(ctx context.Context, line CartLine) (models.OrderLineItem, error) {
	item := models.OrderLineItem{Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice}
	if line.MenuItemID == 0 {
		return item, nil
	}
	if s.menu == nil {
		return models.OrderLineItem{}, fmt.Errorf("%w: no menu configured for item %d", ErrInvalidInput, line.MenuItemID)
	}

	dish, err := s.menu.Get(ctx, line.MenuItemID)
	if errors.Is(err, store.ErrNotFound) {
		return models.OrderLineItem{}, fmt.Errorf("%w: menu item %d does not exist", ErrInvalidInput, line.MenuItemID)
	}
	if err != nil {
		return models.OrderLineItem{}, err
	}
	item.Name = dish.Name
	item.UnitPrice = dish.Price
	return item, nil
}

// History lists orders newest first, restricted to one calendar date when rawDate is set.
func (s *OrderService) History(ctx context.Context, rawDate string) (OrderHistory, error) {
	all, err := s.orders.ListAll(ctx)
	if err != nil {
		return OrderHistory{}, err
	}

	history := OrderHistory{Orders: []models.Order{}, TotalAmount: decimal.Zero}
	if rawDate != "" {
		day, err := time.ParseInLocation(reports.DateLayout, rawDate, s.location)
		if err != nil {
			return OrderHistory{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, rawDate)
		}
		history.Date = day.Format(reports.DateLayout)
	}

	for _, order := range all {
		if history.Date != "" && order.CreatedAt.In(s.location).Format(reports.DateLayout) != history.Date {
			continue
		}
		history.Orders = append(history.Orders, order)
		history.TotalAmount = history.TotalAmount.Add(order.Total)
	}
	history.TotalOrders = len(history.Orders)

	sort.SliceStable(history.Orders, func(i, j int) bool {
		return history.Orders[i].CreatedAt.After(history.Orders[j].CreatedAt)
	})
	return history, nil
}

func (s *OrderService) Find(ctx context.Context, id string) (models.Order, error) {
	return s.orders.Find(ctx, id)
}

// Import appends previously exported orders as-is, stopping at the first failure.
// It returns how many orders were stored.
func (s *OrderService) Import(ctx context.Context, orders []models.Order) (int, error) {
	for i, order := range orders {
		if err := order.Validate(); err != nil {
			return i, fmt.Errorf("order #%d: %w", i+1, err)
		}
		if err := s.orders.Append(ctx, order); err != nil {
			return i, fmt.Errorf("order #%d: %w", i+1, err)
		}
	}
	log.Info().Int("count", len(orders)).Msg("orders: import finished")
	return len(orders), nil
}
