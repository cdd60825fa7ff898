package cart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// StorageKey is the fixed slot name the cart is mirrored under.
const StorageKey = "gh_cart"

// Storage is the durable single-value slot a Store mirrors itself into. Load
// returns nil data when no prior value exists; Save replaces the whole value.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryStorage keeps the blob in process memory. Used in tests and as a
// throwaway slot for anonymous sessions.
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]byte, error) {
	return m.data, nil
}

func (m *MemoryStorage) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

// FileStorage keeps the blob in a single local file. Concurrent writers race
// and the last full snapshot wins; there is no merge.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	return data, nil
}

func (f *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

// RedisStorage keeps the blob under a per-user Redis key derived from
// StorageKey. A plain SET replaces the prior snapshot.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, userID uint) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    fmt.Sprintf("%s:%d", StorageKey, userID),
	}
}

func (r *RedisStorage) Load() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart from redis: %w", err)
	}
	return data, nil
}

func (r *RedisStorage) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart to redis: %w", err)
	}
	return nil
}
