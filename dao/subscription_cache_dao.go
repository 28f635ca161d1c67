// dao/subscription_cache_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	sub_errors "github.com/dev-mohitbeniwal/subexpiry/errors"
	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
)

// SubscriptionCacheDAO reads and writes expiration markers kept in Redis,
// one string key per subscriber id.
type SubscriptionCacheDAO struct {
	Client    redis.UniversalClient
	Match     string
	ScanCount int64
}

func NewSubscriptionCacheDAO(client redis.UniversalClient, scanCount int64) *SubscriptionCacheDAO {
	if scanCount <= 0 {
		scanCount = 100
	}
	return &SubscriptionCacheDAO{Client: client, Match: "*", ScanCount: scanCount}
}

// ScanKeys walks the keyspace with SCAN and calls fn for each key. A non-nil
// error from fn stops the walk and is returned as-is. Keys may repeat across
// SCAN batches; callers must tolerate duplicates.
func (dao *SubscriptionCacheDAO) ScanKeys(ctx context.Context, fn func(id string) error) error {
	iter := dao.Client.Scan(ctx, 0, dao.Match, dao.ScanCount).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", sub_errors.ErrCacheOperation, err)
	}
	return nil
}

// Get returns the raw value for id. found is false when the key is gone.
func (dao *SubscriptionCacheDAO) Get(ctx context.Context, id string) (string, bool, error) {
	value, err := dao.Client.Get(ctx, id).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Key not found in cache", zap.String("fbid", id))
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", sub_errors.ErrCacheOperation, id, err)
	}
	return value, true, nil
}

// Set stores value under id without a TTL.
func (dao *SubscriptionCacheDAO) Set(ctx context.Context, id, value string) error {
	if err := dao.Client.Set(ctx, id, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", sub_errors.ErrCacheOperation, id, err)
	}
	logger.Debug("Cache value written", zap.String("fbid", id), zap.String("value", value))
	return nil
}
