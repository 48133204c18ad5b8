package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance_dashboard/internal/cache"
	"finance_dashboard/internal/config"
	"finance_dashboard/internal/economy"
	"finance_dashboard/internal/fetcher"
	"finance_dashboard/internal/logger"
	"finance_dashboard/internal/schema"
	"finance_dashboard/internal/server"
	"finance_dashboard/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger.Init()
	defer logger.Log.Info("Application stopped")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загрузка конфигурации
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Config validation error: %v", err)
	}

	// Инициализация хранилищ
	st, err := store.NewStore(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Log.Fatalf("DB connection error: %v", err)
	}
	defer st.Close()

	volatile := cache.NewCache(cfg.RedisAddr)
	defer volatile.Close()

	// Сборка подсистемы обзора рынка
	validator, err := schema.NewValidator()
	if err != nil {
		logger.Log.Fatalf("Schema init error: %v", err)
	}
	sources := fetcher.NewClient(cfg, validator)
	coord := economy.NewCoordinator(st, volatile, sources)

	opts := economy.Options{CIMode: os.Getenv("CI") == "true"}
	if os.Getenv("APP_ENV") != "production" {
		opts.DebugFile = cfg.DebugFile
	}
	svc := economy.NewService(volatile, st, coord, opts)

	// Фоновый прогрев кэша
	if cfg.WarmInterval > 0 {
		go economy.StartWarming(ctx, svc, time.Duration(cfg.WarmInterval)*time.Minute)
	}

	// HTTP сервер
	srv := server.NewServer(svc, map[string]server.Pinger{
		"postgres": st,
		"redis":    volatile,
	})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/economy", srv.GetEconomy)
	mux.HandleFunc("GET /health", srv.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	httpServer := &http.Server{Addr: ":8080", Handler: server.AccessLog(mux)}
	go func() {
		logger.Log.Info("Starting HTTP server on :8080")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Log.Fatalf("Forced shutdown: %v", err)
	}
}
