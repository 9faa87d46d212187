// Package memory keeps the order ledger, report archive and menu in process memory.
// It is used by tests and by STORE_DRIVER=memory for demos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	orders  []models.Order
	byID    map[string]int
	reports []models.Report
	menu    []models.MenuItem
	menuSeq uint
}

func New() *Store {
	return &Store{byID: make(map[string]int)}
}

// Orders returns the store's view as a store.OrderStore.
func (s *Store) Orders() store.OrderStore { return orderStore{s} }

// Reports returns the store's view as a store.ReportArchive.
func (s *Store) Reports() store.ReportArchive { return reportArchive{s} }

// Menu returns the store's view as a store.MenuCatalog.
func (s *Store) Menu() store.MenuCatalog { return menuCatalog{s} }

type orderStore struct{ s *Store }

func (o orderStore) Append(_ context.Context, order models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if _, exists := o.s.byID[order.ID]; exists {
		return fmt.Errorf("append order %s: %w", order.ID, store.ErrDuplicate)
	}
	o.s.byID[order.ID] = len(o.s.orders)
	o.s.orders = append(o.s.orders, cloneOrder(order))
	return nil
}

func (o orderStore) ListAll(_ context.Context) ([]models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	out := make([]models.Order, 0, len(o.s.orders))
	for _, order := range o.s.orders {
		out = append(out, cloneOrder(order))
	}
	return out, nil
}

func (o orderStore) Find(_ context.Context, id string) (models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	idx, ok := o.s.byID[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return cloneOrder(o.s.orders[idx]), nil
}

type reportArchive struct{ s *Store }

func (r reportArchive) Append(_ context.Context, report models.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	report = cloneReport(report)
	report.Seq = uint(len(r.s.reports) + 1)
	r.s.reports = append(r.s.reports, report)
	return nil
}

func (r reportArchive) List(_ context.Context) ([]models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Report, 0, len(r.s.reports))
	for _, report := range r.s.reports {
		out = append(out, cloneReport(report))
	}
	return out, nil
}

func (r reportArchive) Find(_ context.Context, id string) (models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, report := range r.s.reports {
		if report.ID == id {
			return cloneReport(report), nil
		}
	}
	return models.Report{}, fmt.Errorf("report %s: %w", id, store.ErrNotFound)
}

type menuCatalog struct{ s *Store }

func (m menuCatalog) List(_ context.Context) ([]models.MenuItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return append([]models.MenuItem{}, m.s.menu...), nil
}

func (m menuCatalog) Get(_ context.Context, id uint) (models.MenuItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	if i := m.s.menuIndex(id); i >= 0 {
		return m.s.menu[i], nil
	}
	return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
}

// Create assigns the next id, one past the highest ever handed out.
func (m menuCatalog) Create(_ context.Context, item models.MenuItem) (models.MenuItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.menuSeq++
	item.ID = m.s.menuSeq
	m.s.menu = append(m.s.menu, item)
	return item, nil
}

func (m menuCatalog) Update(_ context.Context, item models.MenuItem) (models.MenuItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.menuIndex(item.ID)
	if i < 0 {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", item.ID, store.ErrNotFound)
	}
	m.s.menu[i] = item
	return item, nil
}

func (m menuCatalog) Delete(_ context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.menuIndex(id)
	if i < 0 {
		return fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
	}
	m.s.menu = append(m.s.menu[:i], m.s.menu[i+1:]...)
	return nil
}

// menuIndex must be called with mu held.
func (s *Store) menuIndex(id uint) int {
	for i, item := range s.menu {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Callers must not be able to mutate a stored order through a shared items slice.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderLineItem(nil), o.Items...)
	return o
}

// Archived reports are immutable, so every bucket, order list and item map is copied in and out.
func cloneReport(r models.Report) models.Report {
	if r.DailyBuckets == nil {
		return r
	}
	buckets := make([]models.DailyBucket, len(r.DailyBuckets))
	for i, b := range r.DailyBuckets {
		if b.Orders != nil {
			orders := make([]models.Order, len(b.Orders))
			for j, o := range b.Orders {
				orders[j] = cloneOrder(o)
			}
			b.Orders = orders
		}
		if b.ItemSales != nil {
			sales := make(map[string]models.ItemSales, len(b.ItemSales))
			for name, s := range b.ItemSales {
				sales[name] = s
			}
			b.ItemSales = sales
		}
		buckets[i] = b
	}
	r.DailyBuckets = buckets
	return r
}
