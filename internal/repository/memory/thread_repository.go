package memory

import (
	"context"
	"time"

	"db-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ThreadRepository keeps pipeline threads in process memory.
type ThreadRepository struct {
	cache *cache.Cache
}

func NewThreadRepository(ttl time.Duration) *ThreadRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// purge expired threads every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ThreadRepository{
		cache: c,
	}
}

// Load returns a private copy of the thread, or a fresh thread when none is stored.
func (r *ThreadRepository) Load(ctx context.Context, threadID string) (*store.Thread, error) {
	if x, found := r.cache.Get(threadID); found {
		return x.(*store.Thread).Clone(), nil
	}
	return store.NewThread(threadID), nil
}

func (r *ThreadRepository) Save(ctx context.Context, thread *store.Thread) error {
	thread.UpdatedAt = time.Now()
	r.cache.Set(thread.ID, thread.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *ThreadRepository) Delete(ctx context.Context, threadID string) error {
	r.cache.Delete(threadID)
	return nil
}
