package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStreamKey is the stream RedisRepo writes to.
const DefaultStreamKey = "vmconsole:journal"

// RedisRepo appends events to a capped redis stream.
type RedisRepo struct {
	rdb    redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisRepo(rdb redis.Cmdable, stream string, maxLen int64) *RedisRepo {
	if stream == "" {
		stream = DefaultStreamKey
	}
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &RedisRepo{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (r *RedisRepo) Append(ctx context.Context, e Event) error {
	err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"id":            e.ID,
			"store":         e.Store,
			"op":            e.Op,
			"entity_id":     e.EntityID,
			"outcome":       string(e.Outcome),
			"error":         e.Error,
			"actor_user_id": e.ActorUserID,
			"created_at":    e.CreatedAt.Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd journal event: %w", err)
	}
	return nil
}
