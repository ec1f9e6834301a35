package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/redis/go-redis/v9"
)

// LoginLimit is the outcome of a login throttle check.
type LoginLimit struct {
	Allowed    bool
	Remaining  int
	RetryAfter int
}

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, username string) (*LoginLimit, error)
	ResetLoginRateLimit(ctx context.Context, username string) error
}

type redisRepository struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg config.RedisConnect) (*redis.Client, error) {

	redisURL := cfg.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis")
	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

func loginKey(username string) string {
	return "login_attempts:" + username
}

// CheckLoginRateLimit records an attempt in a sliding window (a sorted set scored by
// unix time) and reports whether the attempt may go through to the backend.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, username string) (*LoginLimit, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := loginKey(username)
	now := r.now()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now.Unix() - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for login throttle", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("redis pipeline error for login throttle: %w", err)
	}

	attempts := count.Val()
	if attempts <= r.cfg.MaxAttempts {
		logger.Debug("Login throttle check passed", slog.String("username", username), slog.Int64("attempts", attempts))
		return &LoginLimit{Allowed: true, Remaining: int(r.cfg.MaxAttempts - attempts)}, nil
	}

	oldest, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
	if err != nil || len(oldest) == 0 {
		logger.Error("Failed to read oldest login attempt", slog.String("key", key), slog.Any("error", err))
		return &LoginLimit{RetryAfter: int(window)}, nil
	}

	retryAfter := max(int64(oldest[0].Score)+window-now.Unix(), 1)

	logger.Warn("Login throttled", slog.String("username", username), slog.Int64("attempts", attempts))
	return &LoginLimit{RetryAfter: int(retryAfter)}, nil
}

// ResetLoginRateLimit forgets the attempts of a user after a successful login.
func (r *redisRepository) ResetLoginRateLimit(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, loginKey(username)).Err(); err != nil {
		return fmt.Errorf("resetting login throttle: %w", err)
	}

	return nil
}
