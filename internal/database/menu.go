package database

import (
	"context"
	"errors"
	"fmt"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"gorm.io/gorm"
)

// MenuCatalog keeps the menu in the menu_items table.
type MenuCatalog struct {
	db *gorm.DB
}

func NewMenuCatalog(db *gorm.DB) *MenuCatalog {
	return &MenuCatalog{db: db}
}

// List returns every dish in the order it was added.
func (m *MenuCatalog) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := m.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w: %v", store.ErrStorageFailure, err)
	}
	return items, nil
}

func (m *MenuCatalog) Get(ctx context.Context, id uint) (models.MenuItem, error) {
	var item models.MenuItem
	err := m.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("find menu item %d: %w: %v", id, store.ErrStorageFailure, err)
	}
	return item, nil
}

func (m *MenuCatalog) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	item.ID = 0 // Assigned by the database
	if err := m.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.MenuItem{}, fmt.Errorf("create menu item: %w: %v", store.ErrStorageFailure, err)
	}
	return item, nil
}

// Update replaces every column of an existing row.
func (m *MenuCatalog) Update(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Find existing dish
		var existing models.MenuItem
		if err := tx.First(&existing, item.ID).Error; err != nil {
			return err
		}

		// 2. Save updates (zero values included, the form always sends the whole item)
		return tx.Save(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", item.ID, store.ErrNotFound)
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("update menu item %d: %w: %v", item.ID, store.ErrStorageFailure, err)
	}
	return item, nil
}

func (m *MenuCatalog) Delete(ctx context.Context, id uint) error {
	result := m.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete menu item %d: %w: %v", id, store.ErrStorageFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
	}
	return nil
}
