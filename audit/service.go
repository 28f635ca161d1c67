// audit/service.go
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/dev-mohitbeniwal/subexpiry/util"
)

type Service interface {
	QueryExpirations(ctx context.Context, from, to time.Time, fbid string) ([]ExpirationLog, error)
	HandleExpired(ctx context.Context, event util.Event) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// QueryExpirations returns the recorded expirations in [from, to], optionally
// narrowed to one fbid.
func (s *service) QueryExpirations(ctx context.Context, from, to time.Time, fbid string) ([]ExpirationLog, error) {
	return s.repo.QueryExpirations(ctx, from, to, fbid)
}

// HandleExpired is the event bus subscriber for subscription.expired.
func (s *service) HandleExpired(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(util.ExpiredPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return s.repo.LogExpiration(ctx, ExpirationLog{
		Timestamp:     event.OccurredAt,
		FBID:          payload.FBID,
		Action:        ActionSubscriptionExpired,
		Sentinel:      payload.Sentinel,
		RecordUpdated: payload.RecordUpdated,
		RecordError:   payload.RecordError,
	})
}
