// Package repository содержит реализации слота хранения снимка гаража.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SnapshotKey — имя единственного слота, в котором хранится снимок парка.
// Значение унаследовано от ключа localStorage первой версии гаража.
const SnapshotKey = "minhaGaragemInteligenteB2P1A2"

// PostgresStore хранит снимок парка одной jsonb-строкой в PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore создаёт хранилище и инициализирует схему БД через миграции.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}

	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		// Ретраи полезны для Serialization Failure и Deadlock;
		// с переподключением pgxpool справляется сам.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected {
				if i < len(delays) {
					time.Sleep(delays[i])
					continue
				}
			}
		}

		if isConnectionError(err) {
			if i < len(delays) {
				time.Sleep(delays[i])
				continue
			}
		}

		break
	}
	return err
}

func isConnectionError(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Save записывает снимок парка в слот, перезаписывая предыдущий.
func (s *PostgresStore) Save(ctx context.Context, payload []byte) error {
	return s.withRetry(ctx, func() error {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO garage_snapshots (slot_key, payload, updated_at)
			 VALUES ($1, $2, now())
			 ON CONFLICT (slot_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
			SnapshotKey, payload,
		)
		if err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}
		return nil
	})
}

// Load возвращает сохранённый снимок парка или nil, если слот пуст.
func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM garage_snapshots WHERE slot_key = $1`,
		SnapshotKey,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return payload, nil
}

// Reset очищает слот хранения.
func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM garage_snapshots WHERE slot_key = $1`,
		SnapshotKey,
	); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
