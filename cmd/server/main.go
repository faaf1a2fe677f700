package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/pcbook/internal/adapter/handler"
	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/adapter/storage"
	"github.com/rl1809/pcbook/internal/config"
	"github.com/rl1809/pcbook/internal/core/service"
	"github.com/rl1809/pcbook/internal/logger"
	"github.com/rl1809/pcbook/internal/metrics"
	"github.com/rl1809/pcbook/internal/port"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "pcbook",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      logger.Format(cfg.App.LogFormat),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(context.Background(), "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) (err error) {
	laptops, closeStore, err := openLaptopStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStore())
	}()

	images := storage.NewDiskImageStore(cfg.Image.Folder)
	laptopService := service.NewLaptopService(laptops, images, cfg.Image.MaxSize)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rpcMetrics := metrics.NewRPCMetrics(registry)

	// Initialize gRPC server
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(handler.UnaryServerInterceptor(log, rpcMetrics)),
		grpc.ChainStreamInterceptor(handler.StreamServerInterceptor(log, rpcMetrics)),
	)
	pb.RegisterLaptopServiceServer(grpcServer, handler.NewGRPCHandler(laptopService, log))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.GRPCAddr, err)
	}

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: handler.NewHTTPHandler(laptopService, log).Routes(registry),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(log.WithField(gctx, "addr", cfg.Server.GRPCAddr), "gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info(log.WithField(gctx, "addr", cfg.Server.HTTPAddr), "HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var shutdownErr error
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("http shutdown: %w", err))
		}
		log.Info(context.Background(), "HTTP server stopped")

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("grpc shutdown: %w", shutdownCtx.Err()))
		}
		log.Info(context.Background(), "gRPC server stopped")

		return shutdownErr
	})

	return g.Wait()
}

// openLaptopStore returns the configured backing store and a func releasing
// its connections.
func openLaptopStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (port.LaptopRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, noop, multierr.Append(fmt.Errorf("connect redis: %w", err), rdb.Close())
		}
		log.Info(ctx, "connected to redis")
		return storage.NewRedisLaptopStore(rdb), rdb.Close, nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			return nil, noop, multierr.Append(fmt.Errorf("ping mysql: %w", err), db.Close())
		}
		log.Info(ctx, "connected to mysql")

		store := storage.NewMySQLLaptopStore(db)
		if cfg.MySQL.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				return nil, noop, multierr.Append(err, db.Close())
			}
		}
		return store, db.Close, nil

	default:
		log.Info(log.WithField(ctx, "shards", cfg.Store.Shards), "using in-memory store")
		return storage.NewMemoryLaptopStore(cfg.Store.Shards), noop, nil
	}
}
