package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"housing-loan-sim/config"
	httpLayer "housing-loan-sim/http"
	"housing-loan-sim/repository"
	"housing-loan-sim/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("SIMULATOR_CONFIG"))
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	repo, closeRepo, err := newSimulationRepository(ctx, cfg)
	if err != nil {
		logger.Fatal("store init failed", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeRepo()

	subsidy := service.NewSubsidyCalculator(service.DefaultSubsidyPolicy(), logger.Named("subsidy"))
	engine := service.NewAmortizationEngine(subsidy, logger.Named("engine"))
	simulations := service.NewSimulationService(engine, repo, logger.Named("simulations"))

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	handler := httpLayer.NewSimulationHandler(simulations, logger.Named("http"))
	router := httpLayer.NewRouter(handler, rateLimiter, logger.Named("http"))

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("simulator listening", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.Store.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func newSimulationRepository(ctx context.Context, cfg *config.Config) (repository.SimulationRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		kv := repository.NewRedisKV(cfg.Redis.Addr)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := kv.Ping(pingCtx); err != nil {
			_ = kv.Close()
			return nil, nil, err
		}
		return repository.NewKVSimulationRepository(kv), func() { _ = kv.Close() }, nil

	case config.StorePostgres:
		pool, err := repository.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresSimulationRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	default:
		return repository.NewKVSimulationRepository(repository.NewMemoryKV()), func() {}, nil
	}
}
