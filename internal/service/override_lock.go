package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefix for per-date override write locks
const overrideLockKeyPrefix = "schedule:override:lock:"

// OverrideLock serializes override writes per calendar date across service
// instances. The override upsert is a check-then-write against a store with
// separate create/update operations, so two staff editing the same date at
// once could otherwise race into duplicate overrides.
type OverrideLock struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewOverrideLock(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *OverrideLock {
	return &OverrideLock{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire takes the write lock for a date. Returns false when another writer
// holds it. The TTL bounds how long a crashed writer can wedge the date.
func (l *OverrideLock) Acquire(ctx context.Context, dateKey string) (bool, error) {
	ok, err := l.redisClient.SetNX(ctx, overrideLockKeyPrefix+dateKey, 1, l.ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire override lock for %s: %+v", dateKey, err)
		return false, err
	}
	return ok, nil
}

// Release frees the write lock for a date.
func (l *OverrideLock) Release(ctx context.Context, dateKey string) error {
	if err := l.redisClient.Del(ctx, overrideLockKeyPrefix+dateKey).Err(); err != nil {
		l.log.Warnf("Failed to release override lock for %s: %+v", dateKey, err)
		return err
	}
	return nil
}
