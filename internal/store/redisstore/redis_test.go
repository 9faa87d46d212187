package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.RedisConfig{Host: "cache", Port: "6380", Password: "secret", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildRedisOptions(config.RedisConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.RedisConfig{URL: "redis://:pw@redis.internal:6379/5", Host: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, 5, opts.DB)

	_, err = buildRedisOptions(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestStore_UnreachableServerIsStorageFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	s := NewWithClient(client, "pos-test:")
	defer s.Close()

	err := s.Reports().Append(context.Background(), models.Report{ID: "r1"})
	assert.True(t, errors.Is(err, store.ErrStorageFailure), "got %v", err)

	_, err = s.Orders().ListAll(context.Background())
	assert.True(t, errors.Is(err, store.ErrStorageFailure), "got %v", err)

	_, err = s.Menu().Create(context.Background(), models.MenuItem{Name: "Tea", Price: decimal.NewFromInt(20)})
	assert.True(t, errors.Is(err, store.ErrStorageFailure), "got %v", err)
}

// Runs against a real server when REDIS_URL is set.
func TestStore_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	prefix := "pos-test:" + uuid.NewString() + ":"
	s, err := New(config.RedisConfig{URL: url, KeyPrefix: prefix})
	require.NoError(t, err)
	ctx := context.Background()
	t.Cleanup(func() {
		s.client.Del(ctx, s.key(store.OrdersKey), s.key(store.OrdersKey+":index"), s.key(store.SavedReportsKey),
			s.key(store.MenuItemsKey), s.key(store.MenuItemsKey+":seq"))
		s.Close()
	})

	order := models.Order{
		ID:        "ORD1",
		Items:     []models.OrderLineItem{{Name: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(20)}},
		Total:     decimal.NewFromInt(40),
		CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Orders().Append(ctx, order))
	assert.True(t, errors.Is(s.Orders().Append(ctx, order), store.ErrDuplicate))

	got, err := s.Orders().Find(ctx, "ORD1")
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(order.Total))

	for _, id := range []string{"r2", "r1"} {
		require.NoError(t, s.Reports().Append(ctx, models.Report{ID: id, DailyBuckets: []models.DailyBucket{}}))
	}
	reports, err := s.Reports().List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
	assert.Equal(t, "r1", reports[1].ID)

	_, err = s.Reports().Find(ctx, "r3")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	menu := s.Menu()
	tea, err := menu.Create(ctx, models.MenuItem{Name: "Tea", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	vada, err := menu.Create(ctx, models.MenuItem{Name: "Vada", Price: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Greater(t, vada.ID, tea.ID)

	tea.Price = decimal.NewFromInt(25)
	_, err = menu.Update(ctx, tea)
	require.NoError(t, err)
	require.NoError(t, menu.Delete(ctx, vada.ID))

	items, err := menu.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(25)))

	_, err = menu.Get(ctx, vada.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	_, err = menu.Update(ctx, vada)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.True(t, errors.Is(menu.Delete(ctx, vada.ID), store.ErrNotFound))
}
