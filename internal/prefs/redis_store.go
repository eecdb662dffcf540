package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bookforge/pkg/domain"
)

const (
	emailKey = "bookforge:userEmail"
	booksKey = "bookforge:myBooks"
)

// RedisStore keeps preferences in Redis, for shared dev environments where
// several machines act as the same "device".
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed preference store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisStore) UserEmail() (string, error) {
	ctx, cancel := opContext()
	defer cancel()
	val, err := s.client.Get(ctx, emailKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get email: %w", err)
	}
	return val, nil
}

func (s *RedisStore) SetUserEmail(email string) error {
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, emailKey, email, 0).Err(); err != nil {
		return fmt.Errorf("set email: %w", err)
	}
	return nil
}

func (s *RedisStore) Books() ([]domain.Book, error) {
	ctx, cancel := opContext()
	defer cancel()
	val, err := s.client.Get(ctx, booksKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get books: %w", err)
	}
	var books []domain.Book
	if err := json.Unmarshal([]byte(val), &books); err != nil {
		return nil, fmt.Errorf("parse books: %w", err)
	}
	return books, nil
}

func (s *RedisStore) SaveBooks(books []domain.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, booksKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set books: %w", err)
	}
	return nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}
