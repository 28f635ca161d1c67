// service/stores.go
package service

import (
	"context"
	"time"
)

// CacheStore is the key-value store holding one expiration marker per subscriber.
type CacheStore interface {
	// ScanKeys calls fn for every key currently in the store. It may yield a key more than once.
	ScanKeys(ctx context.Context, fn func(id string) error) error
	Get(ctx context.Context, id string) (value string, found bool, err error)
	Set(ctx context.Context, id, value string) error
}

// RecordStore is the relational mirror of subscriber expirations.
type RecordStore interface {
	MarkExpired(ctx context.Context, fbid, sentinel string) (int64, error)
}

// Scheduler runs a deferred expiration for id at the given instant.
// It returns false when the task was not accepted.
type Scheduler interface {
	ScheduleAt(at time.Time, id string) bool
}
