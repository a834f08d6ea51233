package leave

import (
	"context"
	"fmt"
	"time"

	leaveerrors "go-leave/internal/leave/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SlotGuard serializes submissions for one (employee, start, end) slot.
type SlotGuard interface {
	Acquire(ctx context.Context, fullName string, start, end time.Time) (release func(), err error)
}

type noopSlotGuard struct{}

func (noopSlotGuard) Acquire(context.Context, string, time.Time, time.Time) (func(), error) {
	return func() {}, nil
}

type RedisSlotGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSlotGuard(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSlotGuard {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}
	return &RedisSlotGuard{rdb: rdb, ttl: ttl, logger: logger.Named("leave.slot_guard")}
}

func SlotKey(fullName string, start, end time.Time) string {
	return fmt.Sprintf("leave:slot:%s:%s:%s", fullName, start.Format(dateLayout), end.Format(dateLayout))
}

func (g *RedisSlotGuard) Acquire(ctx context.Context, fullName string, start, end time.Time) (func(), error) {
	key := SlotKey(fullName, start, end)
	ok, err := g.rdb.SetNX(ctx, key, "locked", g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, leaveerrors.ErrSubmissionInProgress
	}

	return func() {
		if err := g.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			g.logger.Warn("release slot lock failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
