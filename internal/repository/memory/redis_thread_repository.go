package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"db-chat-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const threadKeyPrefix = "thread:"

// RedisThreadRepository shares thread memory between API replicas.
type RedisThreadRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisThreadRepository(client *redis.Client, ttl time.Duration) *RedisThreadRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisThreadRepository{client: client, ttl: ttl}
}

func (r *RedisThreadRepository) Load(ctx context.Context, threadID string) (*store.Thread, error) {
	raw, err := r.client.Get(ctx, threadKeyPrefix+threadID).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.NewThread(threadID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", threadID, err)
	}

	thread := store.NewThread(threadID)
	if err := json.Unmarshal(raw, thread); err != nil {
		return nil, fmt.Errorf("decode thread %s: %w", threadID, err)
	}
	if thread.Schemas == nil {
		thread.Schemas = store.NewThread(threadID).Schemas
	}
	return thread, nil
}

func (r *RedisThreadRepository) Save(ctx context.Context, thread *store.Thread) error {
	thread.UpdatedAt = time.Now()
	raw, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("encode thread %s: %w", thread.ID, err)
	}
	if err := r.client.Set(ctx, threadKeyPrefix+thread.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save thread %s: %w", thread.ID, err)
	}
	return nil
}

func (r *RedisThreadRepository) Delete(ctx context.Context, threadID string) error {
	return r.client.Del(ctx, threadKeyPrefix+threadID).Err()
}
