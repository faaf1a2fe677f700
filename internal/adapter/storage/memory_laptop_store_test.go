package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/sample"
)

func TestMemorySave_ConcurrentDistinctIDs(t *testing.T) {
	store := NewMemoryLaptopStore(8)
	ctx := context.Background()

	total := 200
	ids := make([]string, total)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := store.Save(ctx, domain.Laptop{ID: id}); err != nil {
				t.Errorf("save %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, total, store.Len())
	for _, id := range ids {
		_, err := store.Find(ctx, id)
		assert.NoError(t, err)
	}
}

func TestMemorySave_DuplicateLeavesOriginal(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()
	id := uuid.NewString()

	original := domain.Laptop{ID: id, Brand: "Dell", PriceUSD: decimal.NewFromInt(1500)}
	require.NoError(t, store.Save(ctx, original))

	err := store.Save(ctx, domain.Laptop{ID: id, Brand: "Apple"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := store.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestMemorySave_ConcurrentSameID(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()
	id := uuid.NewString()

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Save(ctx, domain.Laptop{ID: id})
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, domain.ErrAlreadyExists) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
}

func TestMemoryFind_ReturnsCopy(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()

	laptop := sample.NewGenerator(1).NewLaptop()
	require.NoError(t, store.Save(ctx, laptop))

	// mutate the caller's value after save
	laptop.GPUs[0].Name = "mutated"

	got, err := store.Find(ctx, laptop.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", got.GPUs[0].Name)

	got.Brand = "changed"
	got.Storages[0].Driver = domain.StorageDriverUnknown
	got.ImageIDs = append(got.ImageIDs, "img")

	again, err := store.Find(ctx, laptop.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Brand)
	assert.Equal(t, domain.StorageDriverSSD, again.Storages[0].Driver)
	assert.Empty(t, again.ImageIDs)
}

func TestMemoryFind_NotFound(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	_, err := store.Find(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemorySearch_Filter(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()

	first := domain.Laptop{
		ID:       uuid.NewString(),
		CPU:      domain.CPU{NumberCores: 4, MinGhz: 2.6, MaxGhz: 3.5},
		RAM:      domain.Memory{Value: 8, Unit: domain.MemoryUnitGigabyte},
		PriceUSD: decimal.NewFromInt(2500),
	}
	second := domain.Laptop{
		ID:       uuid.NewString(),
		CPU:      domain.CPU{NumberCores: 2, MinGhz: 3.0, MaxGhz: 3.5},
		RAM:      domain.Memory{Value: 16, Unit: domain.MemoryUnitGigabyte},
		PriceUSD: decimal.NewFromInt(1000),
	}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	filter := domain.Filter{
		MaxPriceUSD: decimal.NewFromInt(3000),
		MinCPUCores: 4,
		MinCPUGhz:   2.5,
		MinRAM:      domain.Memory{Value: 8, Unit: domain.MemoryUnitGigabyte},
	}

	var found []string
	err := store.Search(ctx, filter, func(l domain.Laptop) error {
		found = append(found, l.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID}, found)
}

func TestMemorySearch_CancelStopsIteration(t *testing.T) {
	store := NewMemoryLaptopStore(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := sample.NewGenerator(3)
	for i := 0; i < 20; i++ {
		require.NoError(t, store.Save(ctx, g.NewLaptop()))
	}

	emitted := 0
	err := store.Search(ctx, domain.Filter{}, func(domain.Laptop) error {
		emitted++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, emitted)
}

func TestMemorySearch_VisitorErrorStops(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()
	g := sample.NewGenerator(4)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, g.NewLaptop()))
	}

	boom := errors.New("send failed")
	calls := 0
	err := store.Search(ctx, domain.Filter{}, func(domain.Laptop) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestMemorySearch_ConcurrentWrites(t *testing.T) {
	store := NewMemoryLaptopStore(8)
	ctx := context.Background()

	g := sample.NewGenerator(5)
	existing := make([]string, 100)
	for i := range existing {
		laptop := g.NewLaptop()
		existing[i] = laptop.ID
		require.NoError(t, store.Save(ctx, laptop))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = store.Save(ctx, domain.Laptop{ID: uuid.NewString()})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			_, _ = store.Rate(ctx, existing[i%len(existing)], 5)
		}
	}()

	seen := make(map[string]int)
	err := store.Search(ctx, domain.Filter{}, func(l domain.Laptop) error {
		seen[l.ID]++
		return nil
	})
	wg.Wait()
	require.NoError(t, err)

	for _, id := range existing {
		assert.Equal(t, 1, seen[id], "laptop %s", id)
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "laptop %s emitted twice", id)
	}
}

func TestMemoryRate_ConcurrentSameID(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()
	id := uuid.NewString()
	require.NoError(t, store.Save(ctx, domain.Laptop{ID: id}))

	var wg sync.WaitGroup
	for _, score := range []float64{4.0, 5.0, 3.0} {
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
}

func TestMemoryRate_ManyRatersManyLaptops(t *testing.T) {
	store := NewMemoryLaptopStore(4)
	ctx := context.Background()

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = uuid.NewString()
		require.NoError(t, store.Save(ctx, domain.Laptop{ID: ids[i]}))
	}

	perLaptop := 100
	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < perLaptop; i++ {
			wg.Add(1)
			go func(id string, score float64) {
				defer wg.Done()
				_, _ = store.Rate(ctx, id, score)
			}(id, float64(i%2)*10)
		}
	}
	wg.Wait()

	for _, id := range ids {
		got, err := store.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, uint32(perLaptop), got.Rating.Count)
		assert.InDelta(t, 5.0, got.Rating.Average, 1e-9)
	}
}

func TestMemoryRate_NotFound(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	_, err := store.Rate(context.Background(), uuid.NewString(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryAttachImage(t *testing.T) {
	store := NewMemoryLaptopStore(0)
	ctx := context.Background()
	id := uuid.NewString()
	require.NoError(t, store.Save(ctx, domain.Laptop{ID: id}))

	require.NoError(t, store.AttachImage(ctx, id, "img-1"))
	require.NoError(t, store.AttachImage(ctx, id, "img-2"))

	got, err := store.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"img-1", "img-2"}, got.ImageIDs)

	assert.ErrorIs(t, store.AttachImage(ctx, uuid.NewString(), "img-3"), domain.ErrNotFound)
}
