// test/mock/stores.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheStore is a mock implementation of service.CacheStore
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) ScanKeys(ctx context.Context, fn func(id string) error) error {
	args := m.Called(ctx, fn)
	if keys, ok := args.Get(0).([]string); ok {
		for _, k := range keys {
			if err := fn(k); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *MockCacheStore) Get(ctx context.Context, id string) (string, bool, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheStore) Set(ctx context.Context, id, value string) error {
	args := m.Called(ctx, id, value)
	return args.Error(0)
}

// MockRecordStore is a mock implementation of service.RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) MarkExpired(ctx context.Context, fbid, sentinel string) (int64, error) {
	args := m.Called(ctx, fbid, sentinel)
	return args.Get(0).(int64), args.Error(1)
}

// MockScheduler is a mock implementation of service.Scheduler
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) ScheduleAt(at time.Time, id string) bool {
	args := m.Called(at, id)
	return args.Bool(0)
}
