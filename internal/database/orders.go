package database

import (
	"context"
	"errors"
	"fmt"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"gorm.io/gorm"
)

// OrderStore keeps the order ledger in the orders and order_line_items tables.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Append inserts the order header and its lines in one transaction.
func (s *OrderStore) Append(ctx context.Context, order models.Order) error {
	// Fresh line rows; positions keep the cart order
	items := make([]models.OrderLineItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = models.OrderLineItem{
			OrderID:   order.ID,
			Position:  i,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	order.Items = items

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrDuplicate
		}
		// GORM inserts the Items association along with the header
		return tx.Create(&order).Error
	})
	if errors.Is(err, store.ErrDuplicate) {
		return fmt.Errorf("append order %s: %w", order.ID, store.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("append order %s: %w: %v", order.ID, store.ErrStorageFailure, err)
	}
	return nil
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w: %v", store.ErrStorageFailure, err)
	}
	return orders, nil
}

func (s *OrderStore) Find(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order %s: %w: %v", id, store.ErrStorageFailure, err)
	}
	return order, nil
}
