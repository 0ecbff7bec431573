// Package redis stores the skill collection under a single Redis string key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/skilltrack/internal/adapters/codec"
	"github.com/example/skilltrack/internal/logger"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// SkillStore implements secondary.SkillStore on Redis GET/SET.
type SkillStore struct {
	client goredis.UniversalClient
	key    string
	log    *logger.Logger
}

// Dial connects to Redis and verifies the server answers a PING.
func Dial(ctx context.Context, opts Options, log *logger.Logger) (*SkillStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unavailable at %s: %w", opts.Addr, err)
	}

	return NewSkillStore(client, opts.Key, log), nil
}

// NewSkillStore wraps an existing client.
func NewSkillStore(client goredis.UniversalClient, key string, log *logger.Logger) *SkillStore {
	if key == "" {
		key = secondary.DefaultStorageKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SkillStore{client: client, key: key, log: log.With("store", "redis", "key", key)}
}

// Save overwrites the key with the encoded collection. No expiry is set.
func (s *SkillStore) Save(ctx context.Context, records []*secondary.SkillRecord) error {
	data, err := codec.Encode(records)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save skills: %w", err)
	}
	return nil
}

// Load reads the key. A missing or malformed value reports found=false.
func (s *SkillStore) Load(ctx context.Context) ([]*secondary.SkillRecord, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load skills: %w", err)
	}

	records, err := codec.Decode(data)
	if errors.Is(err, codec.ErrMalformed) {
		s.log.Warn("ignoring malformed stored skills", "error", err)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// Close releases the client connection.
func (s *SkillStore) Close() error {
	return s.client.Close()
}

// Ensure SkillStore implements the interface.
var _ secondary.SkillStore = (*SkillStore)(nil)
