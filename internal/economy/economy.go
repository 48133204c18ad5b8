package economy

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"finance_dashboard/internal/backup"
	"finance_dashboard/internal/logger"
	"finance_dashboard/internal/metrics"
	"finance_dashboard/internal/models"
)

// Options задаёт режим работы точки входа.
type Options struct {
	// CIMode — признак запуска в CI: кэш, хранилище и сеть не трогаются,
	// сразу отдаётся резервный снимок.
	CIMode bool

	// DebugFile — путь отладочной выгрузки собранного агрегата.
	// Пустая строка (production) выключает выгрузку.
	DebugFile string
}

// Service — публичная точка входа обзора рынка. Контракт: вызов никогда
// не возвращает ошибку, агрегат всегда структурно полон.
type Service struct {
	cache VolatileCache
	store DurableStore
	coord *Coordinator
	opts  Options
	log   *logger.Entry
}

// NewService создаёт точку входа поверх кэша, хранилища и координатора.
func NewService(cache VolatileCache, store DurableStore, coord *Coordinator, opts Options) *Service {
	return &Service{
		cache: cache,
		store: store,
		coord: coord,
		opts:  opts,
		log:   logger.WithComponent("economy"),
	}
}

// GetEconomicIndicators возвращает обзор рынка по схеме cache-aside:
// быстрый кэш → свежий снимок в хранилище → полный цикл обновления.
func (s *Service) GetEconomicIndicators(ctx context.Context) *models.AggregateResult {
	if s.opts.CIMode {
		return backup.Snapshot()
	}

	if result, ok := s.cache.Get(ctx); ok {
		metrics.CacheHits.Inc()
		return result
	}
	metrics.CacheMisses.Inc()

	rec, err := s.store.Load(ctx)
	if err != nil {
		// Недоступное хранилище равносильно отсутствию записи.
		s.log.Errorf("Snapshot read failed: %v", err)
	} else if rec != nil && rec.Fresh(time.Now()) {
		s.cache.Set(ctx, &rec.Payload, models.CacheTTL)
		return &rec.Payload
	}

	result := s.coord.Refresh(ctx)
	s.dumpDebug(result)
	return result
}

// dumpDebug пишет свежесобранный агрегат в локальный файл. Выгрузка
// отладочная: её неудача не влияет ни на результат, ни на вызывающего.
func (s *Service) dumpDebug(result *models.AggregateResult) {
	if s.opts.DebugFile == "" {
		return
	}
	raw, err := json.MarshalIndent(result, "", "    ")
	if err == nil {
		err = os.WriteFile(s.opts.DebugFile, raw, 0o644)
	}
	if err != nil {
		s.log.Debugf("Debug dump failed: %v", err)
	}
}
