package storage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/sample"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func cleanupRedisLaptop(t *testing.T, client *redis.Client, id string) {
	t.Cleanup(func() {
		client.Del(context.Background(), laptopKeyPrefix+id, ratingKeyPrefix+id, imagesKeyPrefix+id)
	})
}

func TestRedisSaveFind(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisLaptopStore(client)

	laptop := sample.NewGenerator(11).NewLaptop()
	cleanupRedisLaptop(t, client, laptop.ID)

	require.NoError(t, store.Save(ctx, laptop))

	got, err := store.Find(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, laptop.ID, got.ID)
	assert.Equal(t, laptop.CPU, got.CPU)
	assert.True(t, laptop.PriceUSD.Equal(got.PriceUSD))
	assert.Zero(t, got.Rating.Count)

	err = store.Save(ctx, laptop)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRedisFind_NotFound(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	_, err := NewRedisLaptopStore(client).Find(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisRate_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisLaptopStore(client)

	id := uuid.NewString()
	cleanupRedisLaptop(t, client, id)
	require.NoError(t, store.Save(ctx, domain.Laptop{ID: id, PriceUSD: decimal.NewFromInt(1000)}))

	var wg sync.WaitGroup
	for _, score := range []float64{4, 5, 3} {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			if _, err := store.Rate(ctx, id, score); err != nil {
				t.Errorf("rate: %v", err)
			}
		}(score)
	}
	wg.Wait()

	got, err := store.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), got.Rating.Count)
	assert.InDelta(t, 4.0, got.Rating.Average, 1e-9)

	_, err = store.Rate(ctx, uuid.NewString(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisAttachImageAndSearch(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisLaptopStore(client)

	laptop := domain.Laptop{
		ID:       uuid.NewString(),
		CPU:      domain.CPU{NumberCores: 16, MinGhz: 4.9},
		RAM:      domain.Memory{Value: 2, Unit: domain.MemoryUnitTerabyte},
		PriceUSD: decimal.NewFromInt(10),
	}
	cleanupRedisLaptop(t, client, laptop.ID)
	require.NoError(t, store.Save(ctx, laptop))
	require.NoError(t, store.AttachImage(ctx, laptop.ID, "img-1"))
	assert.ErrorIs(t, store.AttachImage(ctx, uuid.NewString(), "img-2"), domain.ErrNotFound)

	filter := domain.Filter{MinCPUCores: 16, MinCPUGhz: 4.9, MinRAM: domain.Memory{Value: 2, Unit: domain.MemoryUnitTerabyte}}
	var found []domain.Laptop
	err := store.Search(ctx, filter, func(l domain.Laptop) error {
		if l.ID == laptop.ID {
			found = append(found, l)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"img-1"}, found[0].ImageIDs)
}
