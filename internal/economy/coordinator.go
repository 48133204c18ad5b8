package economy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finance_dashboard/internal/backup"
	"finance_dashboard/internal/fetcher"
	"finance_dashboard/internal/logger"
	"finance_dashboard/internal/metrics"
	"finance_dashboard/internal/models"

	"golang.org/x/sync/errgroup"
)

// VolatileCache — быстрый кэш агрегата (get/set с TTL).
type VolatileCache interface {
	Get(ctx context.Context) (*models.AggregateResult, bool)
	Set(ctx context.Context, result *models.AggregateResult, ttl time.Duration)
}

// DurableStore — долговременное хранилище снимка со временем наблюдения.
type DurableStore interface {
	Load(ctx context.Context) (*models.FreshnessRecord, error)
	Save(ctx context.Context, rec *models.FreshnessRecord) error
}

// Sources — семь внешних источников обзора рынка.
type Sources interface {
	FetchNews(ctx context.Context) models.Outcome
	FetchMovers(ctx context.Context) models.Outcome
	FetchIndicator(ctx context.Context, code string) models.Outcome
}

// Coordinator гарантирует, что в процессе одновременно идёт не больше
// одного цикла обновления. Конкурентные вызовы Refresh выстраиваются на
// мьютексе; дождавшийся перепроверяет хранилище и, если данные уже свежие,
// не делает ни одного внешнего запроса.
type Coordinator struct {
	mu      sync.Mutex
	store   DurableStore
	cache   VolatileCache
	sources Sources
	log     *logger.Entry
}

// NewCoordinator создаёт координатор обновления с переданными шлюзами.
func NewCoordinator(store DurableStore, cache VolatileCache, sources Sources) *Coordinator {
	return &Coordinator{
		store:   store,
		cache:   cache,
		sources: sources,
		log:     logger.WithComponent("coordinator"),
	}
}

// Refresh выполняет один цикл обновления и всегда возвращает полный
// агрегат. Замок держится на весь цикл и снимается безусловно.
func (c *Coordinator) Refresh(ctx context.Context) *models.AggregateResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Двойная проверка: пока этот вызов ждал замок, другой мог закончить
	// цикл и сохранить свежий снимок. Без неё холодный наплыв запросов
	// превращается в шторм избыточных внешних вызовов.
	rec, err := c.store.Load(ctx)
	if err != nil {
		// Ошибка перепроверки приравнивается к устаревшей записи.
		c.log.Errorf("Double-check read failed: %v", err)
	} else if rec != nil && rec.Fresh(time.Now()) {
		c.log.Debug("Snapshot refreshed by another caller, skipping fetch")
		return &rec.Payload
	}

	metrics.RefreshCycles.Inc()
	c.log.Info("Starting refresh cycle")

	outcomes := c.fetchAll(ctx)
	fallback := backup.Snapshot()
	result, live := c.assemble(outcomes, fallback)

	if live == 0 {
		// Ни одного живого источника. Отдаём резервный снимок и кэшируем
		// его ненадолго, чтобы вскоре попробовать снова; в долговременное
		// хранилище резервные данные не записываются.
		metrics.BackupFallbacks.Inc()
		c.log.Error("No live data at all, serving backup snapshot")
		c.cache.Set(ctx, fallback, models.DegradedTTL)
		return fallback
	}

	record := &models.FreshnessRecord{ObservedAt: time.Now(), Payload: *result}
	if err := c.store.Save(ctx, record); err != nil {
		// Неудачная запись не роняет запрос: собранный агрегат уже в руках.
		c.log.Errorf("Persist snapshot failed: %v", err)
	}
	c.cache.Set(ctx, result, models.CacheTTL)

	c.log.WithField("live_sources", live).Info("Refresh cycle finished")
	return result
}

// fetchAll опрашивает все семь источников параллельно: задержка цикла
// ограничена самым медленным источником, а не их суммой.
func (c *Coordinator) fetchAll(ctx context.Context) []models.Outcome {
	outcomes := make([]models.Outcome, 2+len(fetcher.IndicatorCodes))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcomes[0] = c.sources.FetchNews(gctx)
		return nil
	})
	g.Go(func() error {
		outcomes[1] = c.sources.FetchMovers(gctx)
		return nil
	})
	for i, code := range fetcher.IndicatorCodes {
		i, code := i, code
		g.Go(func() error {
			outcomes[2+i] = c.sources.FetchIndicator(gctx, code)
			return nil
		})
	}

	// Ошибок здесь не бывает: каждая загрузка сворачивает свою в Outcome.
	g.Wait()
	return outcomes
}

// assemble собирает агрегат из исходов загрузок, подставляя резервные
// данные вместо каждого неудавшегося источника. Возвращает количество
// источников, отдавших живые данные.
func (c *Coordinator) assemble(outcomes []models.Outcome, fallback *models.AggregateResult) (*models.AggregateResult, int) {
	var result models.AggregateResult
	live := 0

	for _, out := range outcomes {
		if out.Err != nil {
			metrics.SourceFailures.WithLabelValues(out.Source).Inc()
			c.log.WithField("source", out.Source).Errorf("Source failed, substituting backup data: %v", out.Err)
		} else {
			live++
		}

		switch out.Source {
		case fetcher.SourceNews:
			if out.Err != nil {
				result.News = fallback.News
			} else {
				result.News = out.News
			}
		case fetcher.SourceStocks:
			if out.Err != nil {
				result.Trends.Stocks = fallback.Trends.Stocks
			} else {
				result.Trends.Stocks = out.Trend
			}
		default:
			dst := trendSlot(&result.Trends, out.Source)
			if out.Err != nil {
				*dst = *trendSlot(&fallback.Trends, out.Source)
			} else {
				*dst = out.Trend
			}
		}
	}
	return &result, live
}

// trendSlot возвращает поле Trends для кода индикатора. Неизвестный код —
// дефект конфигурации, а не состояние среды: он не маскируется.
func trendSlot(t *models.Trends, code string) *models.Trend {
	switch code {
	case fetcher.CodeRealGDP:
		return &t.GDP
	case fetcher.CodeInflation:
		return &t.Inflation
	case fetcher.CodeUnemployment:
		return &t.Unemployment
	case fetcher.CodeTreasuryYield:
		return &t.TreasuryYield
	case fetcher.CodeFederalFundsRate:
		return &t.FederalInterestRate
	default:
		panic(fmt.Sprintf("unknown indicator code: %s", code))
	}
}
