// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/dev-mohitbeniwal/subexpiry/audit"
	"github.com/stretchr/testify/mock"
)

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) LogExpiration(ctx context.Context, log audit.ExpirationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditRepository) QueryExpirations(ctx context.Context, from, to time.Time, fbid string) ([]audit.ExpirationLog, error) {
	args := m.Called(ctx, from, to, fbid)
	return args.Get(0).([]audit.ExpirationLog), args.Error(1)
}
