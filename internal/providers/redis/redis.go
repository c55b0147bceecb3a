package redis

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProvider is the optional read cache in front of the record store.
// A nil *RedisProvider is valid and behaves as an always-missing cache.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
}

func NewRedisProvider(ctx context.Context, redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	if redisURL == "" {
		logger.Info("REDIS_URL not set, response cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond

	client := redis.NewClient(opts)

	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
	}

	client.AddHook(&loggerHook{provider: provider})

	go provider.startConnectionMonitor(ctx)

	if err := client.Ping(ctx).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "error", err)
	} else {
		provider.logger.Infow("Redis connected",
			"addr", opts.Addr,
			"db", opts.DB,
			"default_ttl", ttl.String(),
		)
	}

	return provider
}

// GetJSON decodes the cached value into dst. It reports false on a miss, on
// any redis error and when the provider is nil.
func (r *RedisProvider) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if r == nil {
		return false
	}
	cached, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warnw("Redis get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		r.logger.Warnw("Redis cached value is not valid JSON", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON caches value under key. A ttl of zero uses the provider default.
func (r *RedisProvider) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warnw("Failed to encode cache value", "key", key, "error", err)
		return
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warnw("Redis set failed", "key", key, "error", err)
	}
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) {
	if r == nil || len(keys) == 0 {
		return
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnw("Redis del failed", "keys", keys, "error", err)
	}
}

// Generation reads a counter bumped by Incr; a missing key is generation 0.
// It reports false on any redis error and when the provider is nil.
func (r *RedisProvider) Generation(ctx context.Context, key string) (int64, bool) {
	if r == nil {
		return 0, false
	}
	gen, err := r.Client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		r.logger.Warnw("Redis get generation failed", "key", key, "error", err)
		return 0, false
	}
	return gen, true
}

func (r *RedisProvider) Incr(ctx context.Context, key string) {
	if r == nil {
		return
	}
	if err := r.Client.Incr(ctx, key).Err(); err != nil {
		r.logger.Warnw("Redis incr failed", "key", key, "error", err)
	}
}

// Close stops the connection monitor by way of the client shutting down.
func (r *RedisProvider) Close() error {
	if r == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *RedisProvider) startConnectionMonitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	wasConnected := r.Client.Ping(ctx).Err() == nil

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			if errors.Is(err, redis.ErrClosed) {
				return
			}
			if err != nil {
				if wasConnected {
					r.logger.Errorw("Redis disconnected", "error", err)
					wasConnected = false
				}
			} else if !wasConnected {
				r.logger.Infow("Redis reconnected", "url", r.URL)
				wasConnected = true
			}
		}
	}
}

type loggerHook struct {
	provider *RedisProvider
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.provider.logger.Errorw("Redis dial failed", "network", network, "addr", addr, "error", err)
		} else {
			h.provider.logger.Debugw("Redis dialed", "network", network, "addr", addr)
		}
		return conn, err
	}
}

func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if cmd.Name() == "ping" && err == nil {
			return err
		}
		h.log(cmd, time.Since(start), err)
		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		duration := time.Since(start)
		for _, cmd := range cmds {
			h.log(cmd, duration, err)
		}
		return err
	}
}

func (h *loggerHook) log(cmd redis.Cmder, duration time.Duration, err error) {
	fields := []interface{}{
		"command", cmd.Name(),
		"duration_ms", duration.Milliseconds(),
	}
	// A miss is the normal outcome of a cache lookup.
	if err != nil && !errors.Is(err, redis.Nil) {
		h.provider.logger.Errorw("Redis command failed", append(fields, "error", err)...)
		return
	}
	h.provider.logger.Debugw("Redis command executed", fields...)
}
