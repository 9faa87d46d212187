package service

import (
	"context"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"github.com/rs/zerolog/log"
)

// MenuService manages the dishes checkout can price from.
type MenuService struct {
	menu store.MenuCatalog
}

func NewMenuService(menu store.MenuCatalog) *MenuService {
	return &MenuService{menu: menu}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.List(ctx)
}

func (s *MenuService) Get(ctx context.Context, id uint) (models.MenuItem, error) {
	return s.menu.Get(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if err := item.Validate(); err != nil {
		return models.MenuItem{}, err
	}
	created, err := s.menu.Create(ctx, item)
	if err != nil {
		return models.MenuItem{}, err
	}
	log.Info().Uint("menu_item_id", created.ID).Str("name", created.Name).Msg("menu: item created")
	return created, nil
}

// Update replaces every field of the item with the given id.
func (s *MenuService) Update(ctx context.Context, id uint, item models.MenuItem) (models.MenuItem, error) {
	item.ID = id
	if err := item.Validate(); err != nil {
		return models.MenuItem{}, err
	}
	return s.menu.Update(ctx, item)
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Uint("menu_item_id", id).Msg("menu: item deleted")
	return nil
}
