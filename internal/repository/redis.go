package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "garagem:"

// RedisStore хранит снимок парка одним ключом в Redis — серверный
// аналог слота localStorage из первой версии гаража.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создаёт хранилище и проверяет соединение с Redis.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Save записывает снимок парка в слот без срока жизни.
func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+SnapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Load возвращает сохранённый снимок парка или nil, если слот пуст.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+SnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, nil
}

// Reset очищает слот хранения.
func (s *RedisStore) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, redisKeyPrefix+SnapshotKey).Err(); err != nil {
		return fmt.Errorf("del snapshot: %w", err)
	}
	return nil
}
