// Package store defines the durable collections behind the POS: the order ledger,
// the archive of generated reports and the menu catalog.
package store

import (
	"context"
	"errors"

	"go-restaurant-pos/internal/models"
)

// Keys of the persisted collections, as the browser app named them.
const (
	OrdersKey       = "orders"
	SavedReportsKey = "savedReports"
	MenuItemsKey    = "menuItems"
)

var (
	// ErrStorageFailure wraps any durable read or write that could not complete.
	ErrStorageFailure = errors.New("storage failure")
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate id")
)

// OrderStore is the append-only order ledger. ListAll makes no ordering promise.
type OrderStore interface {
	Append(ctx context.Context, order models.Order) error
	ListAll(ctx context.Context) ([]models.Order, error)
	Find(ctx context.Context, id string) (models.Order, error)
}

// ReportArchive is the append-only history of generated reports, listed in insertion order.
// A failed Append leaves earlier entries untouched.
type ReportArchive interface {
	Append(ctx context.Context, report models.Report) error
	List(ctx context.Context) ([]models.Report, error)
	Find(ctx context.Context, id string) (models.Report, error)
}

// MenuCatalog holds the dishes offered at checkout. Unlike the ledger it is editable.
// Update and Delete return ErrNotFound for unknown ids.
type MenuCatalog interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id uint) (models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	Update(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}
