package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"file-drop-api/config"
	"file-drop-api/pkg/rate"
)

// slidingWindow prunes events older than the window, then admits and records
// the new one only while the remaining count is below the limit. Running it
// as a single server-side script keeps the read-prune-write sequence atomic;
// a client-side check-then-act would let concurrent requests both pass an
// exhausted window.
const slidingWindow = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local clear_before = now - window

redis.call('ZREMRANGEBYSCORE', key, 0, clear_before)
local amount = redis.call('ZCARD', key)

if amount < limit then
    redis.call('ZADD', key, now, now)
    redis.call('EXPIRE', key, window)
    return 0
else
    return 1
end
`

type Limiter struct {
	log    *zap.Logger
	rdb    *redis.Client
	script *redis.Script
}

func NewLimiter(ctx context.Context, logger *zap.Logger, cfg config.Redis, addr string) (*Limiter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected successfully")

	return &Limiter{
		log:    logger,
		rdb:    rdb,
		script: redis.NewScript(slidingWindow),
	}, nil
}

func (l *Limiter) Allow(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error) {
	now := float64(time.Now().UnixNano()) / float64(time.Second)

	for _, r := range rates {
		window := int64(r.Window.Seconds())
		key := fmt.Sprintf("rl:%s:%s:%d", clientID, endpoint, window)

		limited, err := l.script.Run(ctx, l.rdb, []string{key}, now, window, r.Limit).Int()
		if err != nil {
			return false, r, fmt.Errorf("rate limit script: %w", err)
		}
		if limited == 1 {
			return false, r, nil
		}
	}

	return true, rate.Rate{}, nil
}

func (l *Limiter) Close() error { return l.rdb.Close() }
