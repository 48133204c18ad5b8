package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finance_dashboard/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Снимок обзора рынка хранится одной строкой с фиксированным ключом;
// частичных обновлений нет, только чтение и безусловная перезапись.
const snapshotID = 1

// Store инкапсулирует пул соединений к PostgreSQL и операции над
// долговременным снимком обзора рынка.
type Store struct {
	Pool *pgxpool.Pool
}

// NewStore создаёт новый пул соединений по connString и возвращает Store.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Store{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (s *Store) Close() {
	s.Pool.Close()
}

// Ping проверяет доступность базы.
func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Load читает снимок вместе с моментом наблюдения.
// Отсутствие строки — не ошибка: возвращается (nil, nil).
func (s *Store) Load(ctx context.Context) (*models.FreshnessRecord, error) {
	var (
		rec models.FreshnessRecord
		raw []byte
	)
	err := s.Pool.QueryRow(ctx, `
        SELECT observed_at, payload
        FROM economy_snapshot
        WHERE id = $1
    `, snapshotID).Scan(&rec.ObservedAt, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &rec.Payload); err != nil {
		return nil, fmt.Errorf("decode stored snapshot: %v", err)
	}
	return &rec, nil
}

// Save перезаписывает снимок целиком. Существующая строка заменяется.
func (s *Store) Save(ctx context.Context, rec *models.FreshnessRecord) error {
	raw, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("encode snapshot: %v", err)
	}

	_, err = s.Pool.Exec(ctx, `
        INSERT INTO economy_snapshot (id, observed_at, payload)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET observed_at = EXCLUDED.observed_at, payload = EXCLUDED.payload
    `, snapshotID, rec.ObservedAt, raw)
	return err
}
