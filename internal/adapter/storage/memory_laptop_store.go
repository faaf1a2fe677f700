package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/rl1809/pcbook/internal/core/domain"
)

const DefaultShardCount = 32

type laptopEntry struct {
	mu     sync.RWMutex
	laptop domain.Laptop
}

func (e *laptopEntry) snapshot() domain.Laptop {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.laptop.Clone()
}

type laptopShard struct {
	mu      sync.RWMutex
	entries map[string]*laptopEntry
}

// MemoryLaptopStore keeps laptops in a sharded map. The shard lock only guards
// membership; each record has its own lock, so ratings and image attachments
// on different laptops never wait on each other.
type MemoryLaptopStore struct {
	shards []*laptopShard
}

func NewMemoryLaptopStore(shardCount int) *MemoryLaptopStore {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*laptopShard, shardCount)
	for i := range shards {
		shards[i] = &laptopShard{entries: make(map[string]*laptopEntry)}
	}
	return &MemoryLaptopStore{shards: shards}
}

func (s *MemoryLaptopStore) shardFor(id string) *laptopShard {
	return s.shards[xxhash.Sum64String(id)%uint64(len(s.shards))]
}

func (s *MemoryLaptopStore) lookup(id string) (*laptopEntry, bool) {
	shard := s.shardFor(id)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	entry, ok := shard.entries[id]
	return entry, ok
}

func (s *MemoryLaptopStore) Save(ctx context.Context, laptop domain.Laptop) error {
	// the entry is fully built before it becomes reachable
	entry := &laptopEntry{laptop: laptop.Clone()}

	shard := s.shardFor(laptop.ID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.entries[laptop.ID]; ok {
		return fmt.Errorf("laptop %s: %w", laptop.ID, domain.ErrAlreadyExists)
	}
	shard.entries[laptop.ID] = entry
	return nil
}

func (s *MemoryLaptopStore) Find(ctx context.Context, id string) (domain.Laptop, error) {
	entry, ok := s.lookup(id)
	if !ok {
		return domain.Laptop{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	return entry.snapshot(), nil
}

func (s *MemoryLaptopStore) Search(ctx context.Context, filter domain.Filter, found func(domain.Laptop) error) error {
	for _, entry := range s.entries() {
		if err := ctx.Err(); err != nil {
			return err
		}

		laptop := entry.snapshot()
		if !filter.Matches(laptop) {
			continue
		}
		if err := found(laptop); err != nil {
			return err
		}
	}
	return nil
}

// entries collects the records present at call time. Records saved afterwards
// are not visited; records already collected are visited exactly once.
func (s *MemoryLaptopStore) entries() []*laptopEntry {
	var out []*laptopEntry
	for _, shard := range s.shards {
		shard.mu.RLock()
		for _, entry := range shard.entries {
			out = append(out, entry)
		}
		shard.mu.RUnlock()
	}
	return out
}

func (s *MemoryLaptopStore) Rate(ctx context.Context, id string, score float64) (domain.Rating, error) {
	entry, ok := s.lookup(id)
	if !ok {
		return domain.Rating{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.laptop.Rating = entry.laptop.Rating.Add(score)
	return entry.laptop.Rating, nil
}

func (s *MemoryLaptopStore) AttachImage(ctx context.Context, id string, imageID string) error {
	entry, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.laptop.ImageIDs = append(entry.laptop.ImageIDs, imageID)
	return nil
}

// Len returns the number of stored laptops.
func (s *MemoryLaptopStore) Len() int {
	n := 0
	for _, shard := range s.shards {
		shard.mu.RLock()
		n += len(shard.entries)
		shard.mu.RUnlock()
	}
	return n
}
