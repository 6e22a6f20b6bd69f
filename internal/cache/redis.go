package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/config"
	domain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/appointment"
)

const keyPrefix = "availability"

func NewRedisClient(cfg *config.Config, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

// RedisAvailability stores one hash per staff/day. Each field is a slot
// length in minutes, so a single DEL drops every variant of the day.
type RedisAvailability struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisAvailability(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisAvailability {
	return &RedisAvailability{rdb: rdb, ttl: ttl, log: log}
}

func dayKey(staffID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, staffID, day.UTC().Format("2006-01-02"))
}

func staffPattern(staffID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:*", keyPrefix, staffID)
}

func slotField(slot time.Duration) string {
	return strconv.Itoa(int(slot / time.Minute))
}

func (c *RedisAvailability) Get(
	ctx context.Context,
	staffID uuid.UUID,
	day time.Time,
	slot time.Duration,
) (*domain.Availability, bool) {

	raw, err := c.rdb.HGet(ctx, dayKey(staffID, day), slotField(slot)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var v domain.Availability
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.Warn("availability cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &v, true
}

func (c *RedisAvailability) Set(
	ctx context.Context,
	staffID uuid.UUID,
	day time.Time,
	slot time.Duration,
	v *domain.Availability,
) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	key := dayKey(staffID, day)
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, slotField(slot), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("availability cache write failed", zap.Error(err))
	}
}

func (c *RedisAvailability) Invalidate(ctx context.Context, staffID uuid.UUID, days ...time.Time) {
	if len(days) == 0 {
		return
	}

	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, dayKey(staffID, d))
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("availability cache invalidation failed",
			zap.String("staff_id", staffID.String()),
			zap.Error(err),
		)
	}
}

func (c *RedisAvailability) InvalidateStaff(ctx context.Context, staffID uuid.UUID) {
	var keys []string

	iter := c.rdb.Scan(ctx, 0, staffPattern(staffID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("availability cache scan failed",
			zap.String("staff_id", staffID.String()),
			zap.Error(err),
		)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("availability cache invalidation failed",
			zap.String("staff_id", staffID.String()),
			zap.Error(err),
		)
	}
}

var _ Availability = (*RedisAvailability)(nil)
var _ Availability = Noop{}
