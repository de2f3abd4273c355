package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clipshare/clipshare/internal/auth/model"
)

// RedisClipCache is a read-through cache for the public short-URL path.
// Sessions and users are never cached here: every authorization decision
// re-reads the session store so that logout revokes immediately.
type RedisClipCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClipCache(client *redis.Client, ttl time.Duration) *RedisClipCache {
	return &RedisClipCache{client: client, ttl: ttl}
}

func key(shortURL string) string {
	return "clip:short:" + shortURL
}

func (r *RedisClipCache) Get(ctx context.Context, shortURL string) (model.Clip, bool, error) {
	raw, err := r.client.Get(ctx, key(shortURL)).Bytes()
	if err == redis.Nil {
		return model.Clip{}, false, nil
	}
	if err != nil {
		return model.Clip{}, false, err
	}

	var c model.Clip
	if err := json.Unmarshal(raw, &c); err != nil {
		// a corrupt entry is a miss, not a failure
		_ = r.client.Del(ctx, key(shortURL)).Err()
		return model.Clip{}, false, nil
	}
	return c, true, nil
}

func (r *RedisClipCache) Set(ctx context.Context, c model.Clip) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(c.ShortURL), raw, r.ttl).Err()
}

func (r *RedisClipCache) Invalidate(ctx context.Context, shortURL string) error {
	return r.client.Del(ctx, key(shortURL)).Err()
}
