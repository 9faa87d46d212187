// Package redisstore keeps the order ledger and the report archive as redis lists of
// JSON records under the keys "orders" and "savedReports". The menu is a hash of JSON
// records under "menuItems", keyed by id.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"github.com/redis/go-redis/v9"
)

// Store wraps one redis client; Orders and Reports share it.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects and pings redis.
func New(cfg config.RedisConfig) (*Store, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, cfg.KeyPrefix), nil
}

func NewWithClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Orders() store.OrderStore { return orderList{s} }

func (s *Store) Reports() store.ReportArchive { return reportList{s} }

func (s *Store) Menu() store.MenuCatalog { return menuHash{s} }

func (s *Store) key(name string) string {
	return s.prefix + name
}

func buildRedisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.Port
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

type orderList struct{ s *Store }

// Append claims the order id in a hash first so duplicates are rejected, then pushes the record.
func (o orderList) Append(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w: %v", order.ID, store.ErrStorageFailure, err)
	}

	idx := o.s.key(store.OrdersKey + ":index")
	added, err := o.s.client.HSetNX(ctx, idx, order.ID, 1).Result()
	if err != nil {
		return fmt.Errorf("redis hsetnx failed: %w: %v", store.ErrStorageFailure, err)
	}
	if !added {
		return fmt.Errorf("append order %s: %w", order.ID, store.ErrDuplicate)
	}

	if err := o.s.client.RPush(ctx, o.s.key(store.OrdersKey), payload).Err(); err != nil {
		// Release the id so a retry can succeed
		o.s.client.HDel(ctx, idx, order.ID)
		return fmt.Errorf("redis rpush failed: %w: %v", store.ErrStorageFailure, err)
	}
	return nil
}

func (o orderList) ListAll(ctx context.Context) ([]models.Order, error) {
	return readList[models.Order](ctx, o.s, store.OrdersKey)
}

func (o orderList) Find(ctx context.Context, id string) (models.Order, error) {
	orders, err := o.ListAll(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
}

type reportList struct{ s *Store }

// Append is a single RPUSH, which redis applies atomically.
func (r reportList) Append(ctx context.Context, report models.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report %s: %w: %v", report.ID, store.ErrStorageFailure, err)
	}
	if err := r.s.client.RPush(ctx, r.s.key(store.SavedReportsKey), payload).Err(); err != nil {
		return fmt.Errorf("redis rpush failed: %w: %v", store.ErrStorageFailure, err)
	}
	return nil
}

func (r reportList) List(ctx context.Context) ([]models.Report, error) {
	return readList[models.Report](ctx, r.s, store.SavedReportsKey)
}

func (r reportList) Find(ctx context.Context, id string) (models.Report, error) {
	reports, err := r.List(ctx)
	if err != nil {
		return models.Report{}, err
	}
	for _, report := range reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.Report{}, fmt.Errorf("report %s: %w", id, store.ErrNotFound)
}

func readList[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	raw, err := s.client.LRange(ctx, s.key(name), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s failed: %w: %v", name, store.ErrStorageFailure, err)
	}

	out := make([]T, 0, len(raw))
	for i, entry := range raw {
		var v T
		if err := json.Unmarshal([]byte(entry), &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w: %v", name, i, store.ErrStorageFailure, err)
		}
		out = append(out, v)
	}
	return out, nil
}

type menuHash struct{ s *Store }

func (m menuHash) List(ctx context.Context) ([]models.MenuItem, error) {
	raw, err := m.s.client.HGetAll(ctx, m.s.key(store.MenuItemsKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w: %v", store.ErrStorageFailure, err)
	}

	items := make([]models.MenuItem, 0, len(raw))
	for field, entry := range raw {
		var item models.MenuItem
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return nil, fmt.Errorf("decode menu item %s: %w: %v", field, store.ErrStorageFailure, err)
		}
		items = append(items, item)
	}
	// Hash fields come back unordered
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m menuHash) Get(ctx context.Context, id uint) (models.MenuItem, error) {
	entry, err := m.s.client.HGet(ctx, m.s.key(store.MenuItemsKey), menuField(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("redis hget failed: %w: %v", store.ErrStorageFailure, err)
	}

	var item models.MenuItem
	if err := json.Unmarshal([]byte(entry), &item); err != nil {
		return models.MenuItem{}, fmt.Errorf("decode menu item %d: %w: %v", id, store.ErrStorageFailure, err)
	}
	return item, nil
}

// Create takes the next id from a counter, so ids are never reused after a delete.
func (m menuHash) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	id, err := m.s.client.Incr(ctx, m.s.key(store.MenuItemsKey+":seq")).Result()
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("redis incr failed: %w: %v", store.ErrStorageFailure, err)
	}
	item.ID = uint(id)
	return item, m.write(ctx, item)
}

func (m menuHash) Update(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	exists, err := m.s.client.HExists(ctx, m.s.key(store.MenuItemsKey), menuField(item.ID)).Result()
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("redis hexists failed: %w: %v", store.ErrStorageFailure, err)
	}
	if !exists {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", item.ID, store.ErrNotFound)
	}
	return item, m.write(ctx, item)
}

func (m menuHash) Delete(ctx context.Context, id uint) error {
	removed, err := m.s.client.HDel(ctx, m.s.key(store.MenuItemsKey), menuField(id)).Result()
	if err != nil {
		return fmt.Errorf("redis hdel failed: %w: %v", store.ErrStorageFailure, err)
	}
	if removed == 0 {
		return fmt.Errorf("menu item %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (m menuHash) write(ctx context.Context, item models.MenuItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode menu item %d: %w: %v", item.ID, store.ErrStorageFailure, err)
	}
	if err := m.s.client.HSet(ctx, m.s.key(store.MenuItemsKey), menuField(item.ID), payload).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w: %v", store.ErrStorageFailure, err)
	}
	return nil
}

func menuField(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
