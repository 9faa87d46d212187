// Package app wires the configured storage backend into the services.
package app

import (
	"fmt"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/database"
	"go-restaurant-pos/internal/reports"
	"go-restaurant-pos/internal/service"
	"go-restaurant-pos/internal/store"
	"go-restaurant-pos/internal/store/memory"
	"go-restaurant-pos/internal/store/redisstore"
)

type App struct {
	Config  *config.Config
	Orders  *service.OrderService
	Reports *service.ReportService
	Menu    *service.MenuService
	close   func() error
}

// New opens the backend selected by STORE_DRIVER.
func New(cfg *config.Config) (*App, error) {
	var (
		orders  store.OrderStore
		archive store.ReportArchive
		menu    store.MenuCatalog
		closeFn = func() error { return nil }
	)

	switch cfg.Store.Driver {
	case "mysql", "sqlite":
		db, err := database.Connect(cfg.Store, cfg.Database)
		if err != nil {
			return nil, err
		}
		orders = database.NewOrderStore(db)
		archive = database.NewReportArchive(db)
		menu = database.NewMenuCatalog(db)
		closeFn = func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
	case "redis":
		rs, err := redisstore.New(cfg.Redis)
		if err != nil {
			return nil, err
		}
		orders = rs.Orders()
		archive = rs.Reports()
		menu = rs.Menu()
		closeFn = rs.Close
	case "memory":
		ms := memory.New()
		orders = ms.Orders()
		archive = ms.Reports()
		menu = ms.Menu()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return NewWithStores(cfg, orders, archive, menu, closeFn), nil
}

// NewWithStores builds the services on top of already-open stores.
func NewWithStores(cfg *config.Config, orders store.OrderStore, archive store.ReportArchive, menu store.MenuCatalog, closeFn func() error) *App {
	aggregator := reports.NewAggregator(cfg.Report.Location)
	aggregator.WindowMonths = cfg.Report.WindowMonths

	if closeFn == nil {
		closeFn = func() error { return nil }
	}

	return &App{
		Config:  cfg,
		Orders:  service.NewOrderService(orders, menu, cfg.Report.Location),
		Reports: service.NewReportService(orders, archive, aggregator),
		Menu:    service.NewMenuService(menu),
		close:   closeFn,
	}
}

func (a *App) Close() error {
	return a.close()
}
