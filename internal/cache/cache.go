package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finance_dashboard/internal/logger"
	"finance_dashboard/internal/models"

	"github.com/redis/go-redis/v9"
)

// Key — единственный ключ быстрого кэша для обзора рынка.
const Key = "economy"

// Cache инкапсулирует клиент Redis и операции над кэшированным агрегатом.
// Любая ошибка кэша равносильна промаху и никогда не фатальна.
type Cache struct {
	rdb *redis.Client
	log *logger.Entry
}

// NewCache создаёт клиента Redis по адресу addr.
func NewCache(addr string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		log: logger.WithComponent("cache"),
	}
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() {
	if err := c.rdb.Close(); err != nil {
		c.log.Warnf("Close failed: %v", err)
	}
}

// Get возвращает кэшированный агрегат, если он есть и читается.
func (c *Cache) Get(ctx context.Context) (*models.AggregateResult, bool) {
	raw, err := c.rdb.Get(ctx, Key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Errorf("Get failed: %v", err)
		}
		return nil, false
	}

	var result models.AggregateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Errorf("Decode cached payload failed: %v", err)
		return nil, false
	}
	return &result, true
}

// Set записывает агрегат с заданным сроком жизни. Ошибка записи лишь
// логируется: следующий запрос просто промахнётся мимо кэша.
func (c *Cache) Set(ctx context.Context, result *models.AggregateResult, ttl time.Duration) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Errorf("Encode payload failed: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, Key, raw, ttl).Err(); err != nil {
		c.log.Errorf("Set failed: %v", err)
	}
}
