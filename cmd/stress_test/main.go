package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/pcbook/internal/adapter/storage"
	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/core/service"
	"github.com/rl1809/pcbook/internal/port"
	"github.com/rl1809/pcbook/internal/sample"
)

const (
	redisAddr = "localhost:6379"
	mysqlDSN  = "root:root@tcp(localhost:3306)/pcbook?parseTime=true"
)

func main() {
	backend := flag.String("backend", "memory", "memory, redis or mysql")
	laptopCount := flag.Int("laptops", 5, "laptops to rate")
	totalRequests := flag.Int("requests", 1000, "ratings per laptop")
	flag.Parse()

	ctx := context.Background()

	laptops, cleanup := openStore(ctx, *backend)
	defer cleanup()

	laptopService := service.NewLaptopService(laptops, storage.NewDiskImageStore("img"), 0)

	// Seed laptops and precompute the scores each one receives
	g := sample.NewGenerator(uint64(time.Now().UnixNano()))
	ids := make([]string, *laptopCount)
	scores := make([][]float64, *laptopCount)
	expected := make([]float64, *laptopCount)
	for i := range ids {
		id, err := laptopService.CreateLaptop(ctx, g.NewLaptop())
		if err != nil {
			log.Fatalf("failed to create laptop: %v", err)
		}
		ids[i] = id

		sum := 0.0
		scores[i] = make([]float64, *totalRequests)
		for j := range scores[i] {
			scores[i][j] = g.NewScore()
			sum += scores[i][j]
		}
		expected[i] = sum / float64(*totalRequests)
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent raters
	var wg sync.WaitGroup
	start := time.Now()

	for i, id := range ids {
		for _, score := range scores[i] {
			wg.Add(1)
			go func(laptopID string, score float64) {
				defer wg.Done()

				_, err := laptopService.RateLaptop(ctx, domain.RatingEvent{LaptopID: laptopID, Score: score})
				if err == nil {
					successCount.Add(1)
				} else {
					failCount.Add(1)
				}
			}(id, score)
		}
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	fail := failCount.Load()
	total := *laptopCount * *totalRequests

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Backend:          %s\n", *backend)
	fmt.Printf("Laptops:          %d\n", *laptopCount)
	fmt.Printf("Total Ratings:    %d\n", total)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	// Assertions
	if int(success) == total {
		fmt.Printf("PASS: All %d ratings applied\n", total)
	} else {
		fmt.Printf("FAIL: Expected %d successful ratings, got %d\n", total, success)
	}

	for i, id := range ids {
		laptop, err := laptopService.FindLaptop(ctx, id)
		if err != nil {
			fmt.Printf("FAIL: %s: %v\n", id, err)
			continue
		}
		rating := laptop.Rating
		if int(rating.Count) == *totalRequests && math.Abs(rating.Average-expected[i]) < 1e-6 {
			fmt.Printf("PASS: %s count=%d average=%.4f\n", id, rating.Count, rating.Average)
		} else {
			fmt.Printf("FAIL: %s expected count=%d average=%.4f, got count=%d average=%.4f\n",
				id, *totalRequests, expected[i], rating.Count, rating.Average)
		}
	}
}

func openStore(ctx context.Context, backend string) (port.LaptopRepository, func()) {
	switch backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr, PoolSize: 100})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		return storage.NewRedisLaptopStore(rdb), func() { rdb.Close() }
	case "mysql":
		db, err := sql.Open("mysql", mysqlDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(50)
		store := storage.NewMySQLLaptopStore(db)
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("failed to migrate mysql: %v", err)
		}
		return store, func() { db.Close() }
	default:
		return storage.NewMemoryLaptopStore(storage.DefaultShardCount), func() {}
	}
}
