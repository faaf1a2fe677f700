package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/pcbook/internal/core/domain"
)

const (
	laptopKeyPrefix = "laptop:"
	ratingKeyPrefix = "laptop_rating:"
	imagesKeyPrefix = "laptop_images:"
	scanBatchSize   = 100
)

var rateLaptopScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end

local score = tonumber(ARGV[1])
local count = redis.call('HINCRBY', KEYS[2], 'count', 1)
local average = tonumber(redis.call('HGET', KEYS[2], 'average') or '0')
average = average + (score - average) / count
local encoded = string.format('%.17g', average)
redis.call('HSET', KEYS[2], 'average', encoded)

return {count, encoded}
`)

var attachImageScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end

return redis.call('RPUSH', KEYS[2], ARGV[1])
`)

type RedisLaptopStore struct {
	client *redis.Client
}

func NewRedisLaptopStore(client *redis.Client) *RedisLaptopStore {
	return &RedisLaptopStore{client: client}
}

func (r *RedisLaptopStore) Save(ctx context.Context, laptop domain.Laptop) error {
	data, err := encodeDocument(laptop)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, laptopKeyPrefix+laptop.ID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("save laptop %s: %w", laptop.ID, err)
	}
	if !ok {
		return fmt.Errorf("laptop %s: %w", laptop.ID, domain.ErrAlreadyExists)
	}
	return nil
}

func (r *RedisLaptopStore) Find(ctx context.Context, id string) (domain.Laptop, error) {
	var (
		docCmd    *redis.StringCmd
		ratingCmd *redis.MapStringStringCmd
		imagesCmd *redis.StringSliceCmd
	)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		docCmd = pipe.Get(ctx, laptopKeyPrefix+id)
		ratingCmd = pipe.HGetAll(ctx, ratingKeyPrefix+id)
		imagesCmd = pipe.LRange(ctx, imagesKeyPrefix+id, 0, -1)
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return domain.Laptop{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Laptop{}, fmt.Errorf("find laptop %s: %w", id, err)
	}

	laptop, err := decodeDocument([]byte(docCmd.Val()))
	if err != nil {
		return domain.Laptop{}, err
	}

	rating, err := parseRating(ratingCmd.Val())
	if err != nil {
		return domain.Laptop{}, fmt.Errorf("laptop %s: %w", id, err)
	}
	laptop.Rating = rating

	if images := imagesCmd.Val(); len(images) > 0 {
		laptop.ImageIDs = images
	}
	return laptop, nil
}

func (r *RedisLaptopStore) Search(ctx context.Context, filter domain.Filter, found func(domain.Laptop) error) error {
	// SCAN may return a key more than once
	seen := make(map[string]struct{})

	iter := r.client.Scan(ctx, 0, laptopKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := iter.Val()[len(laptopKeyPrefix):]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		laptop, err := r.Find(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if !filter.Matches(laptop) {
			continue
		}
		if err := found(laptop); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan laptops: %w", err)
	}
	return nil
}

func (r *RedisLaptopStore) Rate(ctx context.Context, id string, score float64) (domain.Rating, error) {
	keys := []string{laptopKeyPrefix + id, ratingKeyPrefix + id}

	result, err := rateLaptopScript.Run(ctx, r.client, keys, strconv.FormatFloat(score, 'g', -1, 64)).Slice()
	if errors.Is(err, redis.Nil) {
		return domain.Rating{}, fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Rating{}, fmt.Errorf("rate laptop %s: %w", id, err)
	}
	if len(result) != 2 {
		return domain.Rating{}, fmt.Errorf("rate laptop %s: unexpected script result %v", id, result)
	}

	count, ok := result[0].(int64)
	if !ok {
		return domain.Rating{}, fmt.Errorf("rate laptop %s: unexpected count %v", id, result[0])
	}
	encoded, ok := result[1].(string)
	if !ok {
		return domain.Rating{}, fmt.Errorf("rate laptop %s: unexpected average %v", id, result[1])
	}
	average, err := strconv.ParseFloat(encoded, 64)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("rate laptop %s: %w", id, err)
	}

	return domain.Rating{Count: uint32(count), Average: average}, nil
}

func (r *RedisLaptopStore) AttachImage(ctx context.Context, id string, imageID string) error {
	keys := []string{laptopKeyPrefix + id, imagesKeyPrefix + id}

	err := attachImageScript.Run(ctx, r.client, keys, imageID).Err()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("laptop %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("attach image to laptop %s: %w", id, err)
	}
	return nil
}

func parseRating(fields map[string]string) (domain.Rating, error) {
	var rating domain.Rating
	if raw, ok := fields["count"]; ok {
		count, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return domain.Rating{}, fmt.Errorf("parse rating count: %w", err)
		}
		rating.Count = uint32(count)
	}
	if raw, ok := fields["average"]; ok {
		average, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Rating{}, fmt.Errorf("parse rating average: %w", err)
		}
		rating.Average = average
	}
	return rating, nil
}
